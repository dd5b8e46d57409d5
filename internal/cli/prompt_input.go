package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// confirmDestructive asks message on the command's streams unless yes is
// set. Anything but y/yes/o/oui declines, including end of input.
func confirmDestructive(cmd *cobra.Command, message string, yes bool) bool {
	if yes {
		return true
	}
	if promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), message+" [y/N] ") {
		return true
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled. Pass --yes to skip this question."))
	return false
}

func promptYesNo(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprint(out, message)
	text, err := readPromptLine(in)
	if err != nil && text == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}

// readPromptLine reads one byte at a time up to LF or CR, so Enter works in
// raw terminal mode and nothing past the line is consumed.
func readPromptLine(in io.Reader) (string, error) {
	var buf []byte
	var one [1]byte
	for {
		n, err := in.Read(one[:])
		if n > 0 {
			if one[0] == '\n' || one[0] == '\r' {
				return string(buf), nil
			}
			buf = append(buf, one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
