package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_WeekOfToday(t *testing.T) {
	env := setupRepos(t)
	c := env.addClient(t, "Alice")
	env.addIntervention(t, c.ID, "INT-001", "2025-01-13", testutil.WithTimes("09:15", "10:00"))
	env.addIntervention(t, c.ID, "INT-002", "2025-01-15", testutil.WithAllDay())
	env.addIntervention(t, c.ID, "INT-003", "2025-01-19", testutil.WithTimes("21:00", "22:00"))
	env.addIntervention(t, c.ID, "INT-004", "2025-01-20", testutil.WithTimes("09:00", "10:00"))

	svc := NewCalendarService(env.interventions, scheduler.DefaultHours)
	resp, err := svc.Week(context.Background(), contract.WeekRequest{Now: at(t, "2025-01-16 12:00")})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-13", formatDate(resp.Grid.Start))
	require.Len(t, resp.Grid.Cell(0, 9), 1)
	assert.Equal(t, "INT-001", resp.Grid.Cell(0, 9)[0].Numero)
	require.Len(t, resp.Grid.AllDay[2], 1)
	require.Len(t, resp.Grid.Hidden, 1)
	assert.Equal(t, "INT-003", resp.Grid.Hidden[0].Numero)
	assert.Equal(t, 3, resp.Total)
}

func TestCalendar_ReferenceResolution(t *testing.T) {
	env := setupRepos(t)
	svc := NewCalendarService(env.interventions, scheduler.HourRange{First: 20, Last: 5})
	now := at(t, "2025-01-16 12:00")

	tests := []struct {
		name string
		req  contract.WeekRequest
		want string
	}{
		{"explicit date", contract.WeekRequest{Now: now, Date: "2025-03-05"}, "2025-03-03"},
		{"month and year", contract.WeekRequest{Now: now, Month: 6, Year: 2024}, "2024-05-27"},
		{"month of current year", contract.WeekRequest{Now: now, Month: 2}, "2025-01-27"},
		{"next week", contract.WeekRequest{Now: now, Offset: 1}, "2025-01-20"},
		{"two weeks back from date", contract.WeekRequest{Now: now, Date: "2025-01-01", Offset: -2}, "2024-12-16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Week(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, formatDate(resp.Grid.Start))
			assert.Equal(t, scheduler.DefaultHours, resp.Grid.Hours, "invalid hour ranges fall back to the default")
		})
	}
}

func TestCalendar_InvalidInput(t *testing.T) {
	env := setupRepos(t)
	svc := NewCalendarService(env.interventions, scheduler.DefaultHours)

	_, err := svc.Week(context.Background(), contract.WeekRequest{Date: "2025-13-01"})
	var we *contract.WeekError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, contract.WeekErrInvalidDate, we.Code)

	_, err = svc.Week(context.Background(), contract.WeekRequest{Month: 13})
	require.ErrorAs(t, err, &we)
	assert.Equal(t, contract.WeekErrInvalidMonth, we.Code)
}
