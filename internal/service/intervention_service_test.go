package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterventionSvc(env testEnv) InterventionService {
	return NewInterventionService(env.interventions, testutil.NewTestUoW(env.db))
}

func TestInterventionService_CreateAssignsNumeroAndDefaults(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")

	res, err := svc.Create(ctx, &domain.Intervention{
		ClientID:  c.ID,
		Date:      "2025-01-15",
		StartTime: " 09:00",
		EndTime:   "10:00 ",
		Summary:   "Installation box",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Intervention)
	assert.Equal(t, "INT-001", res.Intervention.Numero)
	assert.Equal(t, "09:00", res.Intervention.StartTime)
	assert.Equal(t, domain.LocationOnSite, res.Intervention.Location)
	assert.Equal(t, domain.PaymentUnpaid, res.Intervention.Payment)
	assert.Equal(t, "Alice", res.Intervention.ClientName)
	assert.Empty(t, res.Warnings)

	next, err := svc.SuggestNumero(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INT-002", next)
}

func TestInterventionService_CreateReportsOverlapsWithoutBlocking(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	env.addIntervention(t, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "12:00"))
	env.addIntervention(t, c.ID, "INT-002", "2025-01-15", testutil.WithTimes("12:00", "13:00"))
	env.addIntervention(t, c.ID, "INT-003", "2025-01-15", testutil.WithAllDay())

	res, err := svc.Create(ctx, &domain.Intervention{
		ClientID: c.ID, Date: "2025-01-15", StartTime: "11:00", EndTime: "12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"INT-001 (09:00-12:00)", "INT-002 (12:00-13:00)"}, scheduler.ConflictStrings(res.Warnings))

	stored, err := env.interventions.ListByDate(ctx, "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, stored, 4, "overlaps never block the save")
}

func TestInterventionService_CreateValidation(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	gone := env.addClient(t, "Gone", testutil.WithInactive())
	env.addIntervention(t, c.ID, "INT-001", "2025-01-15")

	tests := []struct {
		name   string
		in     domain.Intervention
		field  string
		target error
	}{
		{"bad date", domain.Intervention{ClientID: c.ID, Date: "15/01/2025"}, "date", domain.ErrInvalidDateFormat},
		{"bad time", domain.Intervention{ClientID: c.ID, Date: "2025-01-15", StartTime: "9:00", EndTime: "10:00"}, "start_time", domain.ErrInvalidTimeFormat},
		{"reversed range", domain.Intervention{ClientID: c.ID, Date: "2025-01-15", StartTime: "11:00", EndTime: "10:00"}, "end_time", domain.ErrInvalidTimeRange},
		{"duplicate numero", domain.Intervention{ClientID: c.ID, Numero: "int-001", Date: "2025-01-16"}, "numero", ErrDuplicateNumero},
		{"inactive client", domain.Intervention{ClientID: gone.ID, Date: "2025-01-16"}, "client", ErrClientInactive},
		{"unknown client", domain.Intervention{ClientID: "nobody", Date: "2025-01-16"}, "client", repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			_, err := svc.Create(ctx, &in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	all, err := env.interventions.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInterventionService_UpdateExcludesItself(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	a := env.addIntervention(t, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "12:00"))
	env.addIntervention(t, c.ID, "INT-002", "2025-01-15", testutil.WithTimes("13:00", "14:00"))

	res, err := svc.Update(ctx, a.ID, InterventionPatch{EndTime: ptr("11:00")})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "11:00", res.Intervention.EndTime)

	res, err = svc.Update(ctx, a.ID, InterventionPatch{EndTime: ptr("13:30")})
	require.NoError(t, err)
	assert.Equal(t, []string{"INT-002 (13:00-14:00)"}, scheduler.ConflictStrings(res.Warnings))

	res, err = svc.Update(ctx, a.ID, InterventionPatch{StartTime: ptr(""), EndTime: ptr("")})
	require.NoError(t, err)
	assert.True(t, res.Intervention.IsAllDay())
	assert.Empty(t, res.Warnings)
}

func TestInterventionService_UpdateKeepsInactiveClientUntilChanged(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	i := env.addIntervention(t, c.ID, "INT-001", "2025-01-15")
	require.NoError(t, env.clients.SoftDelete(ctx, c.ID))

	_, err := svc.Update(ctx, i.ID, InterventionPatch{Payment: ptr(domain.PaymentPaid)})
	require.NoError(t, err, "editing a past intervention of a deactivated client is allowed")

	other := env.addClient(t, "Other", testutil.WithInactive())
	_, err = svc.Update(ctx, i.ID, InterventionPatch{ClientID: ptr(other.ID)})
	assert.ErrorIs(t, err, ErrClientInactive)
}

func TestInterventionService_UpdateNumeroCollision(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	a := env.addIntervention(t, c.ID, "INT-001", "2025-01-15")
	env.addIntervention(t, c.ID, "INT-002", "2025-01-16")

	_, err := svc.Update(ctx, a.ID, InterventionPatch{Numero: ptr("INT-002")})
	assert.ErrorIs(t, err, ErrDuplicateNumero)

	_, err = svc.Update(ctx, a.ID, InterventionPatch{Numero: ptr("INT-001"), Summary: ptr("same numero")})
	assert.NoError(t, err)
}

func TestInterventionService_ResolveListAndDone(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	a := env.addIntervention(t, c.ID, "INT-001", "2025-01-15", testutil.WithSummary("Réseau wifi"))
	env.addIntervention(t, c.ID, "INT-002", "2025-01-16", testutil.WithDone())

	got, err := svc.Resolve(ctx, "int-001")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = svc.Resolve(ctx, a.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, "INT-001", got.Numero)

	_, err = svc.Resolve(ctx, "INT-999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	todo, err := svc.List(ctx, domain.FilterTodo, "")
	require.NoError(t, err)
	require.Len(t, todo, 1)
	assert.Equal(t, "INT-001", todo[0].Numero)

	found, err := svc.List(ctx, domain.FilterAll, "wifi")
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, svc.SetDone(ctx, a.ID, true))
	todo, err = svc.List(ctx, domain.FilterTodo, "")
	require.NoError(t, err)
	assert.Empty(t, todo)

	byClient, err := svc.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.SetDone(ctx, a.ID, false), repository.ErrNotFound)
}

func TestInterventionService_CheckConflicts(t *testing.T) {
	env := setupRepos(t)
	svc := newInterventionSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice")
	a := env.addIntervention(t, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "12:00"))

	got, err := svc.CheckConflicts(ctx, scheduler.Candidate{Date: "2025-01-15", Start: "10:00", End: "11:00"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = svc.CheckConflicts(ctx, scheduler.Candidate{Date: "2025-01-15", Start: "10:00", End: "11:00", ExcludeID: a.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInterventionService_CreateRollsBackOnStorageFailure(t *testing.T) {
	env := setupRepos(t)
	c := env.addClient(t, "Alice")
	boom := errors.New("disk full")
	uow := &testutil.FailingExecUoW{DB: env.db, FailOn: 1, Err: boom}
	svc := NewInterventionService(env.interventions, uow)

	_, err := svc.Create(context.Background(), &domain.Intervention{ClientID: c.ID, Date: "2025-01-15"})
	assert.ErrorIs(t, err, boom)

	all, err := env.interventions.List(context.Background(), domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, all)
}
