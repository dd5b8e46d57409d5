package cli

import (
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/atotto/clipboard"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Client picked in the client list; new interventions default to it.
	ActiveClientID   string
	ActiveClientName string

	// Terminal dimensions
	Width  int
	Height int

	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(string) error
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:             app,
		CopyToClipboard: clipboard.WriteAll,
	}
}

// SetActiveClient records the client the user is working with.
func (s *SharedState) SetActiveClient(c *domain.Client) {
	s.ActiveClientID = c.ID
	s.ActiveClientName = c.Name
}

// ClearClientContext forgets the active client.
func (s *SharedState) ClearClientContext() {
	s.ActiveClientID = ""
	s.ActiveClientName = ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
