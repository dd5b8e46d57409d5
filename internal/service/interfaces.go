package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/clientpro/internal/app"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/scheduler"
)

// ClientPatch carries the fields to change; nil leaves a field untouched.
type ClientPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	Phone2     *string
	Address    *string
	PostalCode *string
	City       *string
	Kind       *domain.ClientKind
	Notes      *string
	Active     *bool
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id string) (*domain.Client, error)
	// Resolve finds a client by full id, unique id prefix or exact name.
	Resolve(ctx context.Context, ref string) (*domain.Client, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Client, error)
	Search(ctx context.Context, term string) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	// Delete soft-deletes unless hard is set.
	Delete(ctx context.Context, id string, hard bool) error
}

// InterventionPatch carries the fields to change; nil leaves a field untouched.
// Set both StartTime and EndTime to empty strings to make an intervention
// all-day.
type InterventionPatch struct {
	Numero    *string
	ClientID  *string
	Date      *string
	StartTime *string
	EndTime   *string
	Location  *domain.Location
	Payment   *domain.PaymentStatus
	Done      *bool
	Summary   *string
	Details   *string
}

// SaveResult is a stored intervention plus the advisory overlap warnings
// found on its date.
type SaveResult struct {
	Intervention *domain.InterventionView
	Warnings     []scheduler.Conflict
}

type InterventionService interface {
	Create(ctx context.Context, in *domain.Intervention) (*SaveResult, error)
	Update(ctx context.Context, id string, patch InterventionPatch) (*SaveResult, error)
	Get(ctx context.Context, id string) (*domain.InterventionView, error)
	GetByNumero(ctx context.Context, numero string) (*domain.InterventionView, error)
	// Resolve finds an intervention by numero, full id or unique id prefix.
	Resolve(ctx context.Context, ref string) (*domain.InterventionView, error)
	List(ctx context.Context, filter domain.InterventionFilter, term string) ([]*domain.InterventionView, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.InterventionView, error)
	SetDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
	SuggestNumero(ctx context.Context) (string, error)
	CheckConflicts(ctx context.Context, c scheduler.Candidate) ([]scheduler.Conflict, error)
}

// The read-only views are the app package's use cases; the TUI and the
// cobra commands both consume them through these names.
type CalendarService interface {
	app.WeekUseCase
}

type StatusService interface {
	app.StatusUseCase
}

type ReportService interface {
	app.ReportUseCase
}

type BackupFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

type BackupInfo struct {
	DBPath        string
	SizeBytes     int64
	Size          string
	Clients       int
	Interventions int
	BackupDir     string
	Backups       []BackupFile
}

type BackupService interface {
	Info(ctx context.Context) (*BackupInfo, error)
	// Backup writes a snapshot to dest, or to a timestamped file in the
	// backup directory when dest is empty or a directory.
	Backup(ctx context.Context, dest string) (string, error)
	// Restore replaces the live data with src after saving a safety copy,
	// whose path is returned.
	Restore(ctx context.Context, src string) (string, error)
	// Prune removes the oldest timestamped backups beyond keep.
	Prune(ctx context.Context, keep int) ([]string, error)
}

type ExportService interface {
	// ExportICS writes the interventions dated from..to (inclusive,
	// YYYY-MM-DD) as an iCalendar feed.
	ExportICS(ctx context.Context, from, to string, w io.Writer) (int, error)
}
