package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		phone2      TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		kind        TEXT NOT NULL DEFAULT 'Particulier'
		            CHECK(kind IN ('Particulier','Professionnel')),
		notes       TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS interventions (
		id          TEXT PRIMARY KEY,
		numero      TEXT NOT NULL,
		client_id   TEXT NOT NULL REFERENCES clients(id),
		date        TEXT NOT NULL,
		start_time  TEXT NOT NULL DEFAULT '',
		end_time    TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT 'Domicile'
		            CHECK(location IN ('Domicile','À distance')),
		payment     TEXT NOT NULL DEFAULT 'À payer'
		            CHECK(payment IN ('Payé','À payer','Gratuit')),
		done        INTEGER NOT NULL DEFAULT 0,
		summary     TEXT NOT NULL DEFAULT '',
		details     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_interventions_numero ON interventions(numero)`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_date ON interventions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_client ON interventions(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_active_name ON clients(active, name)`,
}
