// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default operator if none exists. The operator will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any operators exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM operators").Scan(&count); err != nil {
		return fmt.Errorf("seed check operators: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert the default operator. 2FA is not enabled — they must set it
	// up on first login.
	_, err = db.Exec(`
		INSERT INTO operators (email, password_hash, display_name, totp_enabled)
		VALUES ($1, $2, $3, $4)
	`, "admin@broadcasthub.local", string(hash), "Admin", false)
	if err != nil {
		return fmt.Errorf("seed insert operator: %w", err)
	}

	slog.Info("database seeded with default operator",
		"email", "admin@broadcasthub.local",
		"password", "admin",
	)

	return nil
}
