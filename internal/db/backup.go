package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotADatabase is returned when a restore source lacks the expected tables.
var ErrNotADatabase = errors.New("file is not a clientpro database")

// restoreTables are copied parents first so foreign keys resolve.
var restoreTables = []string{"clients", "interventions"}

// VacuumInto writes a compacted, consistent copy of the live database to dest.
// dest must not exist yet.
func VacuumInto(ctx context.Context, db *sql.DB, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("backup target %s already exists", dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return nil
}

// RestoreFrom replaces the contents of the live database with the rows of the
// database file at src. Columns missing from an older source keep their
// defaults. The copy runs in a single transaction on one connection.
func RestoreFrom(ctx context.Context, db *sql.DB, src string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("restore source: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `ATTACH DATABASE ? AS src`, src); err != nil {
		return fmt.Errorf("attaching %s: %w", src, err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `DETACH DATABASE src`)
	}()

	var n int
	err = conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM src.sqlite_master WHERE type = 'table' AND name IN ('clients', 'interventions')`).Scan(&n)
	if err != nil {
		if strings.Contains(err.Error(), "not a database") {
			return fmt.Errorf("%s: %w", src, ErrNotADatabase)
		}
		return fmt.Errorf("inspecting %s: %w", src, err)
	}
	if n != len(restoreTables) {
		return fmt.Errorf("%s: %w", src, ErrNotADatabase)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting restore transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for i := len(restoreTables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM main."+restoreTables[i]); err != nil {
			return fmt.Errorf("clearing %s: %w", restoreTables[i], err)
		}
	}
	for _, table := range restoreTables {
		cols, err := sharedColumns(ctx, tx, table)
		if err != nil {
			return err
		}
		list := strings.Join(cols, ", ")
		q := fmt.Sprintf(`INSERT INTO main.%s (%s) SELECT %s FROM src.%s`, table, list, list, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("copying %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE main.clients SET updated_at = created_at WHERE updated_at = ''`); err != nil {
		return fmt.Errorf("backfilling clients.updated_at: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE main.interventions SET updated_at = created_at WHERE updated_at = ''`); err != nil {
		return fmt.Errorf("backfilling interventions.updated_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}
	committed = true
	return nil
}

// sharedColumns lists the columns of table present in both main and src.
func sharedColumns(ctx context.Context, tx DBTX, table string) ([]string, error) {
	mainCols, err := tableColumns(ctx, tx, "main", table)
	if err != nil {
		return nil, err
	}
	srcCols, err := tableColumns(ctx, tx, "src", table)
	if err != nil {
		return nil, err
	}
	inSrc := make(map[string]bool, len(srcCols))
	for _, c := range srcCols {
		inSrc[c] = true
	}
	var shared []string
	for _, c := range mainCols {
		if inSrc[c] {
			shared = append(shared, c)
		}
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("%s has no columns in common: %w", table, ErrNotADatabase)
	}
	return shared, nil
}

func tableColumns(ctx context.Context, tx DBTX, schema, table string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`PRAGMA %s.table_info(%s)`, schema, table))
	if err != nil {
		return nil, fmt.Errorf("reading %s.%s columns: %w", schema, table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
