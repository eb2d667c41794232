package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountView is the read-optimised projection of an account.
// LowFunds and PayInHeadroom are denormalised from the write model when the view is built.
type AccountView struct {
	ID            uuid.UUID       `json:"id"`
	OwnerName     string          `json:"ownerName"`
	OwnerEmail    string          `json:"ownerEmail"`
	Balance       decimal.Decimal `json:"balance"`
	Withdrawn     decimal.Decimal `json:"withdrawn"`
	PaidIn        decimal.Decimal `json:"paidIn"`
	PayInHeadroom decimal.Decimal `json:"payInHeadroom"`
	LowFunds      bool            `json:"lowFunds"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// NewAccountView builds the read projection of a.
func NewAccountView(a *Account) *AccountView {
	return &AccountView{
		ID:            a.ID,
		OwnerName:     a.User.Name,
		OwnerEmail:    a.User.Email,
		Balance:       a.Balance,
		Withdrawn:     a.Withdrawn,
		PaidIn:        a.PaidIn,
		PayInHeadroom: a.PayInHeadroom(),
		LowFunds:      a.HasLowFunds(),
		UpdatedAt:     a.UpdatedAt,
	}
}
