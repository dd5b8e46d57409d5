package cli

import (
	"sort"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const promptLabel = "clientpro"

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
	// persist is false in tests so history stays in memory.
	persist bool

	// subcommands maps each top-level command to its subcommand names.
	subcommands map[string][]string
}

func newCommandBar(state *SharedState, history []string) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		input:       ti,
		state:       state,
		history:     history,
		historyIdx:  len(history),
		persist:     history != nil,
		subcommands: commandTree(NewRootCmd(state.App)),
	}
}

// commandTree lists the visible subcommands of every top-level command,
// plus the TUI-only verbs under the empty key.
func commandTree(root *cobra.Command) map[string][]string {
	tree := map[string][]string{"": tuiVerbs()}
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" || c.Name() == "tui" {
			continue
		}
		tree[""] = append(tree[""], c.Name())
		var subs []string
		for _, s := range c.Commands() {
			if !s.Hidden {
				subs = append(subs, s.Name())
			}
		}
		tree[c.Name()] = subs
	}
	sort.Strings(tree[""])
	return tree
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(promptLabel+" > ") - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

func (c *commandBar) promptPrefix() string {
	return formatter.StylePurple.Render(promptLabel) + " " + formatter.Dim("❯") + " "
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
	if c.persist {
		appendHistory(line)
	}
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

// updateSuggestions completes the first word against the command names and
// the second against that command's subcommands.
func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	switch {
	case len(parts) == 0:
		c.input.SetSuggestions(nil)
	case len(parts) == 1 && !trailingSpace:
		c.input.SetSuggestions(filterSuggestions(c.subcommands[""], parts[0]))
	case len(parts) == 1 || (len(parts) == 2 && !trailingSpace):
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		subs := filterSuggestions(c.subcommands[strings.ToLower(parts[0])], prefix)
		for i, s := range subs {
			subs[i] = parts[0] + " " + s
		}
		c.input.SetSuggestions(subs)
	default:
		c.input.SetSuggestions(nil)
	}
}

func filterSuggestions(options []string, prefix string) []string {
	var out []string
	lp := strings.ToLower(prefix)
	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(o), lp) {
			out = append(out, o)
		}
	}
	return out
}
