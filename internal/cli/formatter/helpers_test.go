package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"later today", now.Add(10 * time.Hour), "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDayLabel_MondayFirst(t *testing.T) {
	assert.Equal(t, "Lun 09/02", DayLabel(time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dim 15/02", DayLabel(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "15/01/2025", DisplayDate("2025-01-15"))
	assert.Equal(t, "15-01-2025", DisplayDate("15-01-2025"))
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "09:00-10:30", TimeRange("09:00", "10:30"))
	assert.Equal(t, "all day", TimeRange("09:00", ""))
	assert.Equal(t, "all day", TimeRange("", ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Répar…", Truncate("Réparation", 6))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestField_DimsEmptyValue(t *testing.T) {
	assert.Contains(t, ansi.Strip(Field("Email", "")), "Email:")
	assert.Contains(t, ansi.Strip(Field("Email", "")), "--")
	assert.Contains(t, ansi.Strip(Field("Email", "a@b.fr")), "a@b.fr")
}

func TestError_PrefixesMessage(t *testing.T) {
	assert.Equal(t, "Error: boom", ansi.Strip(Error(errors.New("boom"))))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := ansi.Strip(RenderTable(
		[]string{"A", "B"},
		[][]string{{"long value", "x"}, {"s", StyleRed.Render("y")}},
	))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A           B", lines[0])
	assert.Equal(t, "long value  x", lines[2])
	assert.Equal(t, "s           y", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}
