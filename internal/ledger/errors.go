package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyDeleted      = errors.New("transaction already deleted")
	ErrNotDeleted          = errors.New("transaction is not deleted")

	// ErrAccountInUse is returned when deleting an account that still has
	// transaction lines referencing it.
	ErrAccountInUse = errors.New("account has transactions and cannot be deleted")
)

// ValidationError describes malformed input. It always surfaces before
// anything is written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err indicates a missing tenant-scoped entity.
// "Exists but belongs to another tenant" is deliberately indistinguishable
// from "does not exist".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrTransactionNotFound)
}

// IsConflict reports whether err is a lifecycle state violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyDeleted) || errors.Is(err, ErrNotDeleted) || errors.Is(err, ErrAccountInUse)
}
