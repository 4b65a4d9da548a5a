// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all BroadcastHub
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"broadcasthub/internal/models"
)

// BroadcastStore handles all broadcast-group database operations.
type BroadcastStore struct {
	db *sql.DB
}

// NewBroadcastStore creates a new BroadcastStore with the given database connection.
func NewBroadcastStore(db *sql.DB) *BroadcastStore {
	return &BroadcastStore{db: db}
}

// List returns all broadcast groups, newest first.
func (s *BroadcastStore) List(ctx context.Context) ([]models.BroadcastGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, template, photo_url, period_type, created_at
		FROM broadcast_groups
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list broadcast groups: %w", err)
	}
	defer rows.Close()

	var groups []models.BroadcastGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan broadcast group: %w", err)
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// FindByID retrieves a broadcast group by id. Returns nil if not found.
func (s *BroadcastStore) FindByID(ctx context.Context, id int64) (*models.BroadcastGroup, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, template, photo_url, period_type, created_at
		FROM broadcast_groups WHERE id = $1
	`, id)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find broadcast group: %w", err)
	}
	return g, nil
}

// Create inserts a new broadcast group and returns it with its assigned
// id and creation timestamp.
func (s *BroadcastStore) Create(ctx context.Context, g *models.BroadcastGroup) (*models.BroadcastGroup, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO broadcast_groups (name, description, template, photo_url, period_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, template, photo_url, period_type, created_at
	`, g.Name, g.Description, g.Template, g.PhotoURL, nullPeriod(g.PeriodType))

	created, err := scanGroup(row)
	if err != nil {
		return nil, fmt.Errorf("create broadcast group: %w", err)
	}
	return created, nil
}

// Update modifies an existing broadcast group.
func (s *BroadcastStore) Update(ctx context.Context, g *models.BroadcastGroup) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE broadcast_groups SET
			name = $1, description = $2, template = $3, photo_url = $4, period_type = $5
		WHERE id = $6
	`, g.Name, g.Description, g.Template, g.PhotoURL, nullPeriod(g.PeriodType), g.ID)
	if err != nil {
		return fmt.Errorf("update broadcast group: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("update broadcast group: id %d not found", g.ID)
	}
	return nil
}

// Delete removes a broadcast group by id.
func (s *BroadcastStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM broadcast_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete broadcast group: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("delete broadcast group: id %d not found", id)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.BroadcastGroup, error) {
	g := &models.BroadcastGroup{}
	var period sql.NullString
	if err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Template,
		&g.PhotoURL, &period, &g.CreatedAt,
	); err != nil {
		return nil, err
	}
	if period.Valid {
		g.PeriodType = models.PeriodType(period.String)
	}
	return g, nil
}

// nullPeriod maps the empty period type to SQL NULL so the partial unique
// index only constrains real period values.
func nullPeriod(p models.PeriodType) any {
	if p == "" {
		return nil
	}
	return string(p)
}
