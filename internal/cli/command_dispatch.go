package cli

import (
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// tuiVerbs are command bar words handled by the TUI itself rather than
// the cobra tree.
func tuiVerbs() []string {
	return []string{"clients", "interventions", "week", "new-client", "new", "refresh", "help", "exit", "quit"}
}

// executeCommand dispatches a text command and returns a tea.Cmd.
// Navigation verbs open views; everything else runs through the cobra
// command tree and its output is shown in the content area.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "clients":
		return pushView(newClientListView(c.state))
	case "interventions":
		return pushView(newInterventionListView(c.state, nil))
	case "week":
		if len(args) == 0 {
			return pushView(newWeekView(c.state))
		}
	case "new-client":
		return pushView(newClientFormView(c.state, nil))
	case "new":
		return pushView(newInterventionFormView(c.state, nil))
	case "refresh":
		return refreshViews()
	case "help":
		if len(args) == 0 {
			return outputCmd(formatter.RenderBox("Keys", keyHelp()) + "\n\n" + captureCobraOutput(c.state.App, []string{"--help"}))
		}
	case "clear":
		return nil
	case "tui":
		return outputCmd(formatter.Dim("Already in the TUI."))
	case "backup":
		if len(args) > 0 && args[0] == "schedule" {
			return outputCmd(formatter.Warning("backup schedule runs in the foreground; start it from a terminal."))
		}
	case "exit", "quit":
		return func() tea.Msg { return quitMsg{} }
	}

	app := c.state.App
	return tea.Batch(
		loadingCmd("Running "+verb+"..."),
		func() tea.Msg {
			return cmdOutputMsg{output: captureCobraOutput(app, parts), refresh: true}
		},
	)
}
