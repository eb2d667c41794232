package cqrs

import "github.com/shopspring/decimal"

// WithdrawMoneyCommand debits Amount from a single account.
type WithdrawMoneyCommand struct {
	AccountID string          `validate:"required,uuid"`
	Amount    decimal.Decimal `validate:"-"`
}

// TransferMoneyCommand moves Amount from one account to another.
type TransferMoneyCommand struct {
	FromAccountID string          `validate:"required,uuid"`
	ToAccountID   string          `validate:"required,uuid,nefield=FromAccountID"`
	Amount        decimal.Decimal `validate:"-"`
}
