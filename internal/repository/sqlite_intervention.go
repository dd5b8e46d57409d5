package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/domain"
)

// SQLiteInterventionRepo implements InterventionRepo using a SQLite database.
type SQLiteInterventionRepo struct {
	db db.DBTX
}

func NewSQLiteInterventionRepo(conn db.DBTX) *SQLiteInterventionRepo {
	return &SQLiteInterventionRepo{db: conn}
}

// Orphaned interventions (client hard-deleted outside the app) still list,
// with empty client fields.
const interventionSelect = `SELECT i.id, i.numero, i.client_id, i.date, i.start_time, i.end_time,
		i.location, i.payment, i.done, i.summary, i.details, i.created_at, i.updated_at,
		COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.phone, '')
	FROM interventions i
	LEFT JOIN clients c ON c.id = i.client_id`

const (
	recentFirst     = ` ORDER BY i.date DESC, i.start_time DESC, i.numero DESC`
	chronological   = ` ORDER BY i.date, i.start_time, i.numero`
	unpaidCondition = `i.payment = 'À payer'`
)

func (r *SQLiteInterventionRepo) Create(ctx context.Context, i *domain.Intervention) error {
	query := `INSERT INTO interventions (id, numero, client_id, date, start_time, end_time,
			location, payment, done, summary, details, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID, i.Numero, i.ClientID, i.Date, i.StartTime, i.EndTime,
		string(i.Location), string(i.Payment), boolToInt(i.Done),
		i.Summary, i.Details,
		formatTimestamp(i.CreatedAt), formatTimestamp(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting intervention: %w", err)
	}
	return nil
}

func (r *SQLiteInterventionRepo) GetByID(ctx context.Context, id string) (*domain.InterventionView, error) {
	return r.get(ctx, interventionSelect+` WHERE i.id = ?`, id)
}

func (r *SQLiteInterventionRepo) GetByNumero(ctx context.Context, numero string) (*domain.InterventionView, error) {
	return r.get(ctx, interventionSelect+` WHERE UPPER(i.numero) = UPPER(?)`, numero)
}

// List returns the interventions matching filter, most recent first.
func (r *SQLiteInterventionRepo) List(ctx context.Context, filter domain.InterventionFilter) ([]*domain.InterventionView, error) {
	query := interventionSelect
	if cond := filterCondition(filter); cond != "" {
		query += ` WHERE ` + cond
	}
	return r.query(ctx, "listing interventions", query+recentFirst)
}

// Search matches numero, summary, details or client name.
func (r *SQLiteInterventionRepo) Search(ctx context.Context, term string, filter domain.InterventionFilter) ([]*domain.InterventionView, error) {
	query := interventionSelect + ` WHERE (
			i.numero LIKE ? ESCAPE '\' OR
			i.summary LIKE ? ESCAPE '\' OR
			i.details LIKE ? ESCAPE '\' OR
			c.name LIKE ? ESCAPE '\'
		)`
	if cond := filterCondition(filter); cond != "" {
		query += ` AND ` + cond
	}
	p := likePattern(term)
	return r.query(ctx, "searching interventions", query+recentFirst, p, p, p, p)
}

func (r *SQLiteInterventionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.InterventionView, error) {
	return r.query(ctx, "listing recent interventions", interventionSelect+recentFirst+` LIMIT ?`, limit)
}

// ListByDate matches the stored date string exactly.
func (r *SQLiteInterventionRepo) ListByDate(ctx context.Context, date string) ([]*domain.InterventionView, error) {
	return r.query(ctx, "listing interventions by date", interventionSelect+` WHERE i.date = ?`+chronological, date)
}

// ListBetween returns interventions dated from..to inclusive. Dates compare
// as YYYY-MM-DD strings.
func (r *SQLiteInterventionRepo) ListBetween(ctx context.Context, from, to string) ([]*domain.InterventionView, error) {
	return r.query(ctx, "listing interventions between dates",
		interventionSelect+` WHERE i.date >= ? AND i.date <= ?`+chronological, from, to)
}

func (r *SQLiteInterventionRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.InterventionView, error) {
	return r.query(ctx, "listing client interventions", interventionSelect+` WHERE i.client_id = ?`+recentFirst, clientID)
}

func (r *SQLiteInterventionRepo) Update(ctx context.Context, i *domain.Intervention) error {
	query := `UPDATE interventions SET numero = ?, client_id = ?, date = ?, start_time = ?, end_time = ?,
			location = ?, payment = ?, done = ?, summary = ?, details = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		i.Numero, i.ClientID, i.Date, i.StartTime, i.EndTime,
		string(i.Location), string(i.Payment), boolToInt(i.Done),
		i.Summary, i.Details, formatTimestamp(i.UpdatedAt),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating intervention: %w", err)
	}
	return requireAffected(res, "intervention", i.ID)
}

func (r *SQLiteInterventionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interventions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting intervention: %w", err)
	}
	return requireAffected(res, "intervention", id)
}

// NextNumero scans every stored numero for the highest INT-NNN suffix.
func (r *SQLiteInterventionRepo) NextNumero(ctx context.Context) (string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT numero FROM interventions WHERE numero LIKE 'INT-%'`)
	if err != nil {
		return "", fmt.Errorf("listing numeros: %w", err)
	}
	defer rows.Close()

	var numeros []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return "", fmt.Errorf("scanning numero: %w", err)
		}
		numeros = append(numeros, n)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating numeros: %w", err)
	}
	return domain.NextNumero(numeros), nil
}

// NumeroExists reports whether another intervention than excludeID already
// uses numero. Pass an empty excludeID when creating.
func (r *SQLiteInterventionRepo) NumeroExists(ctx context.Context, numero, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interventions WHERE UPPER(numero) = UPPER(?) AND id != ?`,
		numero, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking numero: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteInterventionRepo) Counts(ctx context.Context) (InterventionCounts, error) {
	var c InterventionCounts
	err := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN i.done = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN `+unpaidCondition+` THEN 1 ELSE 0 END), 0)
		FROM interventions i`).Scan(&c.Total, &c.Todo, &c.Unpaid)
	if err != nil {
		return InterventionCounts{}, fmt.Errorf("counting interventions: %w", err)
	}
	return c, nil
}

func filterCondition(f domain.InterventionFilter) string {
	switch f {
	case domain.FilterDone:
		return `i.done = 1`
	case domain.FilterTodo:
		return `i.done = 0`
	case domain.FilterUnpaid:
		return unpaidCondition
	default:
		return ""
	}
}

func (r *SQLiteInterventionRepo) get(ctx context.Context, query string, key string) (*domain.InterventionView, error) {
	v, err := scanIntervention(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("intervention %s: %w", key, ErrNotFound)
	}
	return v, err
}

func (r *SQLiteInterventionRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.InterventionView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*domain.InterventionView
	for rows.Next() {
		v, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interventions: %w", err)
	}
	return out, nil
}

func scanIntervention(s rowScanner) (*domain.InterventionView, error) {
	var v domain.InterventionView
	var location, payment, createdAt, updatedAt string
	var done int

	err := s.Scan(
		&v.ID, &v.Numero, &v.ClientID, &v.Date, &v.StartTime, &v.EndTime,
		&location, &payment, &done, &v.Summary, &v.Details,
		&createdAt, &updatedAt,
		&v.ClientName, &v.ClientEmail, &v.ClientPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning intervention: %w", err)
	}

	v.Location = domain.Location(location)
	v.Payment = domain.PaymentStatus(payment)
	v.Done = intToBool(done)
	if v.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if v.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &v, nil
}
