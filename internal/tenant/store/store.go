// Package store implements the tenant Repository on Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tidybooks/tidybooks/internal/tenant"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, t.Name).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("creating tenant: %w", err)
	}

	return nil
}

func (s *Store) GetTenant(ctx context.Context, id int64) (*tenant.Tenant, error) {
	query := `SELECT id, name, created_at FROM tenants WHERE id = $1`

	var t tenant.Tenant
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, tenant.ErrNotFound
		}

		return nil, fmt.Errorf("getting tenant: %w", err)
	}

	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT id, name, created_at FROM tenants ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant

	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}

		tenants = append(tenants, &t)
	}

	return tenants, rows.Err()
}
