package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/clientpro/internal/config"
)

const maxHistoryLines = 500

func historyPath() string {
	return filepath.Join(config.DefaultDir(), "history")
}

// loadHistory reads the command bar history, returning an empty non-nil
// slice when there is none so the bar keeps persisting.
func loadHistory() []string {
	lines := loadHistoryFromPath(historyPath())
	if lines == nil {
		return []string{}
	}
	return lines
}

// loadHistoryFromPath reads command history from the given file.
// Returns nil if the file does not exist or cannot be read.
func loadHistoryFromPath(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

func appendHistory(line string) {
	appendHistoryToPath(historyPath(), line)
}

// appendHistoryToPath appends a single line to the given history file.
// History is best-effort: errors are ignored.
func appendHistoryToPath(path, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
