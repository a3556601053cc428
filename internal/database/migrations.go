package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createNotificationsArchiveTable,
		createResalesArchiveTable,
		createPayoutsArchiveTable,
		createNotificationsSubjectIndex,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createNotificationsArchiveTable = `
CREATE TABLE IF NOT EXISTS notifications_archive (
    id BIGSERIAL PRIMARY KEY,
    subject VARCHAR(100) NOT NULL,
    payload JSONB NOT NULL,
    received_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createResalesArchiveTable = `
CREATE TABLE IF NOT EXISTS resales_archive (
    id BIGSERIAL PRIMARY KEY,
    ticket_id BIGINT NOT NULL,
    seller VARCHAR(255) NOT NULL,
    buyer VARCHAR(255) NOT NULL,
    price BIGINT NOT NULL,
    occurred_at TIMESTAMP NOT NULL
);`

const createPayoutsArchiveTable = `
CREATE TABLE IF NOT EXISTS payouts_archive (
    id BIGSERIAL PRIMARY KEY,
    recipient VARCHAR(255) NOT NULL,
    amount BIGINT NOT NULL,
    memo TEXT,
    occurred_at TIMESTAMP NOT NULL
);`

const createNotificationsSubjectIndex = `
CREATE INDEX IF NOT EXISTS idx_notifications_archive_subject
ON notifications_archive (subject, received_at);`
