package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReport(t *testing.T) testEnv {
	t.Helper()
	env := setupRepos(t)
	alice := env.addClient(t, "Alice")
	bob := env.addClient(t, "Bob")
	emile := env.addClient(t, "Émile")

	env.addIntervention(t, alice.ID, "INT-001", "2024-11-20", testutil.WithPayment(domain.PaymentPaid), testutil.WithDone())
	env.addIntervention(t, bob.ID, "INT-002", "2025-01-03", testutil.WithPayment(domain.PaymentPaid), testutil.WithDone())
	env.addIntervention(t, bob.ID, "INT-003", "2025-01-10")
	env.addIntervention(t, emile.ID, "INT-004", "2025-01-12", testutil.WithPayment(domain.PaymentFree))
	env.addIntervention(t, alice.ID, "INT-005", "2025-01-14")
	env.addIntervention(t, alice.ID, "INT-006", "2025-01-31")
	return env
}

func TestReport_CurrentMonth(t *testing.T) {
	env := seedReport(t)
	svc := NewReportService(env.interventions)

	req := contract.NewReportRequest(contract.PeriodMonth)
	req.Now = at(t, "2025-01-20 10:00")
	req.TopN = 2
	req.MonthsBack = 3
	req.IncludeItems = true

	resp, err := svc.Report(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", formatDate(resp.From))
	assert.Equal(t, "2025-01-20", formatDate(resp.To))
	assert.Equal(t, contract.ReportTotals{Interventions: 4, Done: 1, Unpaid: 2, Clients: 3}, resp.Totals)
	assert.Equal(t, []contract.PaymentCount{
		{Status: domain.PaymentPaid, Count: 1},
		{Status: domain.PaymentUnpaid, Count: 2},
		{Status: domain.PaymentFree, Count: 1},
	}, resp.Payments)

	require.Len(t, resp.TopClients, 2)
	assert.Equal(t, "Bob", resp.TopClients[0].Name)
	assert.Equal(t, 2, resp.TopClients[0].Count)
	assert.Equal(t, "Alice", resp.TopClients[1].Name, "ties are broken by name")

	require.Len(t, resp.Monthly, 3)
	assert.Equal(t, "2024-11-01", formatDate(resp.Monthly[0].Month))
	assert.Equal(t, 1, resp.Monthly[0].Count)
	assert.Equal(t, 0, resp.Monthly[1].Count)
	assert.Equal(t, 4, resp.Monthly[2].Count)
	assert.Len(t, resp.Interventions, 4)
}

func TestReport_YearAndCustom(t *testing.T) {
	env := seedReport(t)
	svc := NewReportService(env.interventions)
	ctx := context.Background()

	req := contract.NewReportRequest(contract.PeriodYear)
	req.Now = at(t, "2025-02-01 10:00")
	resp, err := svc.Report(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", formatDate(resp.From))
	assert.Equal(t, 5, resp.Totals.Interventions)
	assert.Nil(t, resp.Interventions)

	req = contract.NewReportRequest(contract.PeriodCustom)
	req.From, req.To = "2024-11-01", "2025-01-10"
	resp, err = svc.Report(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Totals.Interventions)
	assert.Equal(t, 2, resp.Totals.Done)
}

func TestReport_InvalidRequests(t *testing.T) {
	env := setupRepos(t)
	svc := NewReportService(env.interventions)
	ctx := context.Background()

	tests := []struct {
		name string
		req  contract.ReportRequest
		code contract.ReportErrorCode
	}{
		{"unknown period", contract.ReportRequest{Period: "week"}, contract.ReportErrInvalidPeriod},
		{"missing bounds", contract.ReportRequest{Period: contract.PeriodCustom, From: "2025-01-01"}, contract.ReportErrInvalidRange},
		{"bad date", contract.ReportRequest{Period: contract.PeriodCustom, From: "2025-01-01", To: "soon"}, contract.ReportErrInvalidRange},
		{"reversed", contract.ReportRequest{Period: contract.PeriodCustom, From: "2025-02-01", To: "2025-01-01"}, contract.ReportErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Report(ctx, tt.req)
			var re *contract.ReportError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.code, re.Code)
		})
	}
}
