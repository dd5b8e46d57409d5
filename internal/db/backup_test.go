package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	d, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func countRows(t *testing.T, d *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestVacuumInto_RoundTripsThroughRestore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	live := openFileDB(t, filepath.Join(dir, "live.db"))

	_, err := live.Exec(`INSERT INTO clients (id, name, created_at, updated_at) VALUES ('c1', 'Dupont', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = live.Exec(`INSERT INTO interventions (id, numero, client_id, date, start_time, end_time, created_at, updated_at)
		VALUES ('i1', 'INT-001', 'c1', '2026-02-09', '09:00', '12:00', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	backup := filepath.Join(dir, "backups", "snap.db")
	require.NoError(t, VacuumInto(ctx, live, backup))
	_, err = os.Stat(backup)
	require.NoError(t, err)

	_, err = live.Exec(`DELETE FROM interventions`)
	require.NoError(t, err)
	_, err = live.Exec(`INSERT INTO clients (id, name, created_at, updated_at) VALUES ('c2', 'Martin', '2026-01-02T00:00:00Z', '2026-01-02T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, RestoreFrom(ctx, live, backup))
	assert.Equal(t, 1, countRows(t, live, "clients"))
	assert.Equal(t, 1, countRows(t, live, "interventions"))

	var start string
	require.NoError(t, live.QueryRow(`SELECT start_time FROM interventions WHERE numero = 'INT-001'`).Scan(&start))
	assert.Equal(t, "09:00", start)
}

func TestVacuumInto_RefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	live := openFileDB(t, filepath.Join(dir, "live.db"))
	target := filepath.Join(dir, "exists.db")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	err := VacuumInto(context.Background(), live, target)
	assert.Error(t, err)
}

func TestRestoreFrom_RejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	live := openFileDB(t, filepath.Join(dir, "live.db"))

	other := openFileDB(t, filepath.Join(dir, "other.db"))
	_, err := other.Exec(`CREATE TABLE notes (id TEXT)`)
	require.NoError(t, err)
	_, err = other.Exec(`DROP TABLE interventions`)
	require.NoError(t, err)

	err = RestoreFrom(context.Background(), live, filepath.Join(dir, "other.db"))
	assert.ErrorIs(t, err, ErrNotADatabase)
}

func TestRestoreFrom_MissingSource(t *testing.T) {
	live := openFileDB(t, filepath.Join(t.TempDir(), "live.db"))
	err := RestoreFrom(context.Background(), live, filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}
