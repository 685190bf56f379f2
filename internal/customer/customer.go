package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("customer not found")

	// ErrInUse is returned when deleting a customer still referenced by
	// transactions.
	ErrInUse = errors.New("customer is referenced by transactions")
)

// Customer is a payer/payee a tenant does business with. It sits outside
// the ledger invariants; transactions reference it optionally.
type Customer struct {
	ID         int64
	TenantID   int64
	Name       string
	FirstName  string
	LastName   string
	IsBusiness bool
	Email      string
	Phone      string
	Address    string
	CreatedAt  time.Time
}
