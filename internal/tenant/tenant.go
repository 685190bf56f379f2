package tenant

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("tenant not found")

// Tenant is an organization. Every ledger entity hangs off one tenant id;
// tenants are never hard-deleted.
type Tenant struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	CreateTenant(ctx context.Context, t *Tenant) error
	GetTenant(ctx context.Context, id int64) (*Tenant, error)
	ListTenants(ctx context.Context) ([]*Tenant, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Tenant, error) {
	t := &Tenant{Name: name}
	if err := s.repo.CreateTenant(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Tenant, error) {
	return s.repo.GetTenant(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Tenant, error) {
	return s.repo.ListTenants(ctx)
}
