package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'work_status') THEN
			CREATE TYPE work_status AS ENUM ('in_progress', 'done', 'cancelled');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username ON users (username);`,
	`CREATE TABLE IF NOT EXISTS user_permissions (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		codename VARCHAR(100) NOT NULL,
		PRIMARY KEY (user_id, codename)
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		phone_number VARCHAR(16) NOT NULL DEFAULT '',
		email VARCHAR(128) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		status work_status NOT NULL DEFAULT 'in_progress',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deadline TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_user_id ON contracts (user_id);`,
	`CREATE TABLE IF NOT EXISTS subcontracts (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE RESTRICT,
		subcontract_number INTEGER NOT NULL,
		status work_status NOT NULL DEFAULT 'in_progress',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_subcontract_per_contract ON subcontracts (contract_id, subcontract_number);`,
	`CREATE INDEX IF NOT EXISTS idx_subcontracts_user_id ON subcontracts (user_id);`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		text VARCHAR(200) NOT NULL,
		subcontract_id BIGINT NOT NULL REFERENCES subcontracts(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS positions (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS security_questions (
		id BIGSERIAL PRIMARY KEY,
		question_text VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		position_id BIGINT REFERENCES positions(id) ON DELETE SET NULL,
		phone_number VARCHAR(15) NOT NULL DEFAULT '',
		security_question_id BIGINT REFERENCES security_questions(id) ON DELETE SET NULL,
		security_answer VARCHAR(255) NOT NULL DEFAULT ''
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_user_profiles_user_id ON user_profiles (user_id);`,
	`CREATE TABLE IF NOT EXISTS bank_accounts (
		id BIGSERIAL PRIMARY KEY,
		user_profile_id BIGINT NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
		account_prefix VARCHAR(6) NOT NULL DEFAULT '',
		account_number VARCHAR(20) NOT NULL DEFAULT '',
		bank_code VARCHAR(4) NOT NULL DEFAULT '',
		bank_name VARCHAR(50) NOT NULL DEFAULT '',
		iban VARCHAR(34) NOT NULL DEFAULT '',
		swift_bic VARCHAR(11) NOT NULL DEFAULT ''
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bank_accounts_profile ON bank_accounts (user_profile_id);`,
	`CREATE TABLE IF NOT EXISTS emergency_contacts (
		id BIGSERIAL PRIMARY KEY,
		user_profile_id BIGINT NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
		name VARCHAR(128) NOT NULL,
		address VARCHAR(128) NOT NULL,
		descriptive_number VARCHAR(10) NOT NULL,
		postal_code VARCHAR(10) NOT NULL,
		city VARCHAR(128) NOT NULL,
		phone_number VARCHAR(15) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_emergency_contacts_profile ON emergency_contacts (user_profile_id);`,
	`CREATE TABLE IF NOT EXISTS employee_information (
		id BIGSERIAL PRIMARY KEY,
		user_profile_id BIGINT NOT NULL REFERENCES user_profiles(id) ON DELETE CASCADE,
		permanent_address VARCHAR(128) NOT NULL,
		permanent_descriptive_number VARCHAR(10) NOT NULL,
		permanent_postal_code VARCHAR(5) NOT NULL,
		city VARCHAR(128) NOT NULL,
		phone_number VARCHAR(15) NOT NULL,
		employment_start DATE,
		birth_day DATE,
		contract_type VARCHAR(128) NOT NULL DEFAULT ''
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_employee_information_profile ON employee_information (user_profile_id);`,
	`CREATE TABLE IF NOT EXISTS calendar_groups (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(150) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_calendar_groups_name ON calendar_groups (name);`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		group_id BIGINT NOT NULL REFERENCES calendar_groups(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events (start_time);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
