package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			firebase_uid TEXT UNIQUE,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			energy_score INTEGER DEFAULT 0,
			password_hash TEXT DEFAULT '',
			totp_secret TEXT DEFAULT '',
			totp_enabled BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS appliances (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			specs TEXT DEFAULT '',
			power_rating INTEGER NOT NULL,
			star_rating INTEGER DEFAULT 1,
			age INTEGER DEFAULT 0,
			usage_hours_per_day REAL DEFAULT 0,
			usage_start_time TEXT DEFAULT '',
			usage_end_time TEXT DEFAULT '',
			icon TEXT DEFAULT 'fas fa-plug',
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bills (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			energy_supplier TEXT DEFAULT '',
			monthly_bill REAL DEFAULT 0,
			current_month TEXT DEFAULT '',
			units_consumed REAL DEFAULT 0,
			bill_total REAL DEFAULT 0,
			bill_breakdown TEXT DEFAULT '',
			tariff_rate REAL DEFAULT 0,
			connection_type TEXT DEFAULT '',
			user_address TEXT DEFAULT '',
			area_tariff TEXT DEFAULT '',
			due_date TEXT DEFAULT '',
			is_paid BOOLEAN DEFAULT FALSE,
			customer_id TEXT DEFAULT '',
			meter_number TEXT DEFAULT '',
			sanctioned_load TEXT DEFAULT '',
			confidence REAL DEFAULT 0,
			extracted_data TEXT DEFAULT '',
			image_urls TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ai_tips (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			savings_amount REAL DEFAULT 0,
			difficulty TEXT DEFAULT 'Easy',
			is_bookmarked BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS usage_records (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			appliance_id INTEGER DEFAULT 0,
			date TEXT NOT NULL,
			units_consumed REAL NOT NULL,
			cost REAL NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_appliances_user_id ON appliances(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_user_id ON bills(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_tips_user_id ON ai_tips(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_records_user_id ON usage_records(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_records_date ON usage_records(date)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
