package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema when missing and applies incremental
// updates. Safe to run on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			display_name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'teacher',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(255) NOT NULL DEFAULT '',
			date_string VARCHAR(10) NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			kind VARCHAR(10) NOT NULL CHECK (kind IN ('arrival', 'leaving')),
			ip_address VARCHAR(64) NOT NULL DEFAULT '',
			method VARCHAR(32) NOT NULL DEFAULT '',
			qr_code_used VARCHAR(12) NOT NULL DEFAULT '',
			network_verified BOOLEAN NOT NULL DEFAULT false,
			is_late BOOLEAN NOT NULL DEFAULT false
		)`,
		// One arrival and one leaving per user per date, enforced by storage
		// rather than check-then-act.
		`CREATE UNIQUE INDEX IF NOT EXISTS attendance_events_slot_idx
			ON attendance_events (user_id, date_string, kind)`,
		`CREATE INDEX IF NOT EXISTS attendance_events_date_idx
			ON attendance_events (date_string)`,
		`CREATE TABLE IF NOT EXISTS daily_codes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(12) NOT NULL,
			date_string VARCHAR(10) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE INDEX IF NOT EXISTS daily_codes_created_idx
			ON daily_codes (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS teacher_profiles (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(32) NOT NULL DEFAULT '',
			gender VARCHAR(16) NOT NULL DEFAULT '',
			marital_status VARCHAR(32) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			profile_picture TEXT NOT NULL DEFAULT '',
			employee_id VARCHAR(64) NOT NULL DEFAULT '',
			designation VARCHAR(128) NOT NULL DEFAULT '',
			date_of_joining VARCHAR(10) NOT NULL DEFAULT '',
			current_classes VARCHAR(255) NOT NULL DEFAULT '',
			custom_arrival_time VARCHAR(5) NOT NULL DEFAULT '',
			custom_leaving_time VARCHAR(5) NOT NULL DEFAULT '',
			education_background TEXT NOT NULL DEFAULT '',
			years_of_experience VARCHAR(32) NOT NULL DEFAULT '',
			certificates TEXT NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS teacher_profiles_employee_idx
			ON teacher_profiles (employee_id) WHERE employee_id <> ''`,
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(64) PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
