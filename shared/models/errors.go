package models

import "errors"

// Domain and collaborator errors. Callers match them with errors.Is.
var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero with at most 4 decimal places")
	ErrInsufficientFunds  = errors.New("insufficient funds to make a withdrawal")
	ErrPayInLimitExceeded = errors.New("account pay in limit reached")
	ErrSameAccount        = errors.New("cannot transfer to the same account")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPersistence        = errors.New("persistence failure")
)

// IsDomainViolation reports whether err is one of the rule violations raised by
// Account before anything is persisted.
func IsDomainViolation(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrPayInLimitExceeded)
}
