// Package store implements the customer Repository on Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tidybooks/tidybooks/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectCustomerColumns = `
	id, tenant_id, name, first_name, last_name, is_business, email, phone, address, created_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	if err := s.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.FirstName, &c.LastName,
		&c.IsBusiness, &c.Email, &c.Phone, &c.Address, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context, tenantID int64) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE tenant_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, tenantID, id int64) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE id = $1 AND tenant_id = $2`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (tenant_id, name, first_name, last_name, is_business, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.TenantID, c.Name, c.FirstName, c.LastName, c.IsBusiness, c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, first_name = $2, last_name = $3, is_business = $4, email = $5, phone = $6, address = $7
		WHERE id = $8 AND tenant_id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.FirstName, c.LastName, c.IsBusiness, c.Email, c.Phone, c.Address, c.ID, c.TenantID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, tenantID, id int64) error {
	query := `DELETE FROM customers WHERE id = $1 AND tenant_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return customer.ErrInUse
		}

		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}
