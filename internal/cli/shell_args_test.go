package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShellArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "client list --all", []string{"client", "list", "--all"}},
		{"double quotes", `client add --name "Jean Dupont"`, []string{"client", "add", "--name", "Jean Dupont"}},
		{"single quotes", `intervention add --summary 'Box "fibre"'`, []string{"intervention", "add", "--summary", `Box "fibre"`}},
		{"escaped space", `client show Jean\ Dupont`, []string{"client", "show", "Jean Dupont"}},
		{"empty quoted arg", `client update x --email ""`, []string{"client", "update", "x", "--email", ""}},
		{"extra blanks", "  status \t --recent 3 ", []string{"status", "--recent", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitShellArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitShellArgs_Unterminated(t *testing.T) {
	_, err := splitShellArgs(`client add --name "Jean`)
	assert.ErrorContains(t, err, "unterminated quoted string")

	_, err = splitShellArgs(`status \`)
	assert.ErrorContains(t, err, "unterminated escape")
}
