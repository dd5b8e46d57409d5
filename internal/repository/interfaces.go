package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/clientpro/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Client, error)
	Search(ctx context.Context, term string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, activeOnly bool) (int, error)
}

// InterventionCounts aggregates the dashboard counters in one pass.
type InterventionCounts struct {
	Total  int
	Todo   int
	Unpaid int
}

type InterventionRepo interface {
	Create(ctx context.Context, i *domain.Intervention) error
	GetByID(ctx context.Context, id string) (*domain.InterventionView, error)
	GetByNumero(ctx context.Context, numero string) (*domain.InterventionView, error)
	List(ctx context.Context, filter domain.InterventionFilter) ([]*domain.InterventionView, error)
	Search(ctx context.Context, term string, filter domain.InterventionFilter) ([]*domain.InterventionView, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.InterventionView, error)
	ListByDate(ctx context.Context, date string) ([]*domain.InterventionView, error)
	ListBetween(ctx context.Context, from, to string) ([]*domain.InterventionView, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.InterventionView, error)
	Update(ctx context.Context, i *domain.Intervention) error
	Delete(ctx context.Context, id string) error
	NextNumero(ctx context.Context) (string, error)
	NumeroExists(ctx context.Context, numero, excludeID string) (bool, error)
	Counts(ctx context.Context) (InterventionCounts, error)
}
