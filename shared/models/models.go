package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Account is the write model loaned to a use case for one execution.
// It is loaded and saved by a repository; the core never creates or deletes one.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	User      User            `json:"user"`
	Balance   decimal.Decimal `json:"balance"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
	PaidIn    decimal.Decimal `json:"paidIn"`
	UpdatedAt time.Time       `json:"updatedTimestamp"`
}
