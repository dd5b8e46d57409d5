package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
)

// captureCobraOutput runs args through a fresh cobra tree and returns what
// the command printed, with errors rendered inline.
func captureCobraOutput(app *App, args []string) string {
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	// No stdin inside the TUI: confirmations decline unless --yes is given.
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(app, args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// suggestAlternatives lists commands close to an unrecognized name.
func suggestAlternatives(app *App, input string) string {
	root := NewRootCmd(app)
	root.SuggestionsMinimumDistance = 2
	matches := root.SuggestionsFor(input)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, name := range matches {
		short := ""
		if c, _, err := root.Find([]string{name}); err == nil {
			short = c.Short
		}
		b.WriteString(fmt.Sprintf("\n  %s  %s", formatter.StyleGreen.Render(name), formatter.Dim(short)))
	}
	return b.String()
}
