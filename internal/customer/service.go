package customer

import (
	"context"
	"strings"

	"github.com/tidybooks/tidybooks/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	ListCustomers(ctx context.Context, tenantID int64) ([]*Customer, error)
	GetCustomer(ctx context.Context, tenantID, id int64) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, tenantID, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name       string
	FirstName  string
	LastName   string
	IsBusiness bool
	Email      string
	Phone      string
	Address    string
}

func (s *Service) List(ctx context.Context, rc auth.RequestContext) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, rc.TenantID)
}

func (s *Service) Create(ctx context.Context, rc auth.RequestContext, params Params) (*Customer, error) {
	c := &Customer{
		TenantID:   rc.TenantID,
		Name:       displayName(params),
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		IsBusiness: params.IsBusiness,
		Email:      params.Email,
		Phone:      params.Phone,
		Address:    params.Address,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, rc auth.RequestContext, id int64, params Params) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, rc.TenantID, id)
	if err != nil {
		return nil, err
	}

	c.Name = displayName(params)
	c.FirstName = params.FirstName
	c.LastName = params.LastName
	c.IsBusiness = params.IsBusiness
	c.Email = params.Email
	c.Phone = params.Phone
	c.Address = params.Address

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, rc auth.RequestContext, id int64) error {
	if _, err := s.repo.GetCustomer(ctx, rc.TenantID, id); err != nil {
		return err
	}

	return s.repo.DeleteCustomer(ctx, rc.TenantID, id)
}

// displayName resolves what to show for the customer: an explicit name
// wins, then the person or business fallback.
func displayName(params Params) string {
	if params.Name != "" {
		return params.Name
	}

	if params.IsBusiness {
		return "Unknown Business"
	}

	name := strings.TrimSpace(params.FirstName + " " + params.LastName)
	if name == "" {
		return "Unknown Customer"
	}

	return name
}
