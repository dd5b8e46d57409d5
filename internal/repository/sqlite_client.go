package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, email, phone, phone2, address, postal_code, city, kind, notes, active, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Phone2,
		c.Address, c.PostalCode, c.City,
		string(c.Kind), c.Notes, boolToInt(c.Active),
		formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteClientRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE active = 1 ORDER BY name COLLATE NOCASE`
	if includeInactive {
		query = `SELECT ` + clientColumns + ` FROM clients ORDER BY name COLLATE NOCASE`
	}
	return r.query(ctx, "listing clients", query)
}

// Search matches active clients on name, email, phone or city.
func (r *SQLiteClientRepo) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE active = 1 AND (
			name LIKE ? ESCAPE '\' OR
			email LIKE ? ESCAPE '\' OR
			phone LIKE ? ESCAPE '\' OR
			city LIKE ? ESCAPE '\'
		)
		ORDER BY name COLLATE NOCASE`
	p := likePattern(term)
	return r.query(ctx, "searching clients", query, p, p, p, p)
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = ?, email = ?, phone = ?, phone2 = ?, address = ?,
		postal_code = ?, city = ?, kind = ?, notes = ?, active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Phone2, c.Address,
		c.PostalCode, c.City, string(c.Kind), c.Notes, boolToInt(c.Active),
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return requireAffected(res, "client", c.ID)
}

// SoftDelete marks the client inactive. Its interventions keep referencing it.
func (r *SQLiteClientRepo) SoftDelete(ctx context.Context, id string) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, `UPDATE clients SET active = 0, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("deactivating client: %w", err)
	}
	return requireAffected(res, "client", id)
}

// Delete removes the row. The foreign key refuses it while interventions
// still reference the client.
func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return requireAffected(res, "client", id)
}

func (r *SQLiteClientRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM clients`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return n, nil
}

func (r *SQLiteClientRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func scanClient(s rowScanner) (*domain.Client, error) {
	var c domain.Client
	var kind, createdAt, updatedAt string
	var active int

	err := s.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Phone2,
		&c.Address, &c.PostalCode, &c.City,
		&kind, &c.Notes, &active,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	c.Kind = domain.ClientKind(kind)
	c.Active = intToBool(active)
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
