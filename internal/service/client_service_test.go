package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientSvc(env testEnv, obs ...UseCaseObserver) ClientService {
	return NewClientService(env.clients, testutil.NewTestUoW(env.db), obs...)
}

func TestClientService_CreateDefaultsAndTrims(t *testing.T) {
	env := setupRepos(t)
	obs := &recordingObserver{}
	svc := newClientSvc(env, obs)
	ctx := context.Background()

	c := &domain.Client{Name: "  Jeanne Martin ", Email: " jeanne@example.fr "}
	require.NoError(t, svc.Create(ctx, c))

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Jeanne Martin", c.Name)
	assert.Equal(t, "jeanne@example.fr", c.Email)
	assert.Equal(t, domain.ClientIndividual, c.Kind)
	assert.True(t, c.Active)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jeanne Martin", got.Name)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-client", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestClientService_CreateRejectsInvalid(t *testing.T) {
	env := setupRepos(t)
	svc := newClientSvc(env)

	err := svc.Create(context.Background(), &domain.Client{Name: " ", Email: "nope"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")

	n, err := env.clients.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClientService_Resolve(t *testing.T) {
	env := setupRepos(t)
	svc := newClientSvc(env)
	ctx := context.Background()

	alice := env.addClient(t, "Alice Durand")
	env.addClient(t, "Bob Petit")

	got, err := svc.Resolve(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = svc.Resolve(ctx, alice.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = svc.Resolve(ctx, "alice durand")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = svc.Resolve(ctx, "Charlie")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	env.addClient(t, "ALICE DURAND")
	_, err = svc.Resolve(ctx, "Alice Durand")
	assert.ErrorIs(t, err, ErrAmbiguousRef)
}

func TestClientService_ListSortedAndSearch(t *testing.T) {
	env := setupRepos(t)
	svc := newClientSvc(env)
	ctx := context.Background()

	env.addClient(t, "Zoé Blanc")
	env.addClient(t, "Émile Noir", testutil.WithCity("Lyon", "69001"))
	env.addClient(t, "Bernard Roux", testutil.WithInactive())

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Émile Noir", active[0].Name)
	assert.Equal(t, "Zoé Blanc", active[1].Name)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := svc.Search(ctx, "lyon")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Émile Noir", found[0].Name)

	blank, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, blank, 2)
}

func TestClientService_UpdateAppliesPatch(t *testing.T) {
	env := setupRepos(t)
	svc := newClientSvc(env)
	ctx := context.Background()
	c := env.addClient(t, "Alice", testutil.WithPhone("0600000000"))

	updated, err := svc.Update(ctx, c.ID, ClientPatch{
		City: ptr("Nantes"),
		Kind: ptr(domain.ClientProfessional),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nantes", updated.City)
	assert.Equal(t, domain.ClientProfessional, updated.Kind)
	assert.Equal(t, "0600000000", updated.Phone, "untouched fields are kept")

	_, err = svc.Update(ctx, c.ID, ClientPatch{Name: ptr("")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	stored, err := env.clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)

	_, err = svc.Update(ctx, "missing", ClientPatch{City: ptr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientService_Delete(t *testing.T) {
	env := setupRepos(t)
	svc := newClientSvc(env)
	ctx := context.Background()

	soft := env.addClient(t, "Soft")
	require.NoError(t, svc.Delete(ctx, soft.ID, false))
	got, err := env.clients.GetByID(ctx, soft.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	busy := env.addClient(t, "Busy")
	env.addIntervention(t, busy.ID, "INT-001", "2025-01-15")
	err = svc.Delete(ctx, busy.ID, true)
	assert.ErrorIs(t, err, ErrClientInUse)

	free := env.addClient(t, "Free")
	require.NoError(t, svc.Delete(ctx, free.ID, true))
	_, err = env.clients.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
