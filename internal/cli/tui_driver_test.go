package cli

import (
	"testing"

	"github.com/alexanderramin/clientpro/internal/teatest"
	"github.com/charmbracelet/x/ansi"
)

// TestDriver wraps teatest.Driver with access to the appModel internals:
// the view stack, shared state and command bar.
type TestDriver struct {
	*teatest.Driver
	copied []string
}

// NewTestDriver builds the TUI over app without touching the user's
// history file or clipboard, sizes it and drains the dashboard load.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	td := &TestDriver{}

	state := newSharedState(app)
	state.CopyToClipboard = func(s string) error {
		td.copied = append(td.copied, s)
		return nil
	}
	td.Driver = teatest.New(t, newAppModelWithState(state, nil), teatest.WithSize(140, 40))
	td.DrainInit()
	return td
}

// Command runs input through the command bar and leaves it blurred.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ID of the top view, or -1 on an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ViewStackIDs lists the stack bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func (d *TestDriver) State() *SharedState { return d.appModel().state }

func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput is the transient output, without styling.
func (d *TestDriver) LastOutput() string {
	return ansi.Strip(d.appModel().lastOutput)
}

// Screen is the rendered frame without styling.
func (d *TestDriver) Screen() string {
	return ansi.Strip(d.View())
}

// IsQuitting covers both q and a tea.Quit seen while draining.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Copied returns what was sent to the clipboard.
func (d *TestDriver) Copied() []string { return d.copied }
