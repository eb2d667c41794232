package models

import "github.com/shopspring/decimal"

var (
	// PayInLimit is the most an account may ever receive through pay-ins.
	PayInLimit = decimal.NewFromInt(4000)
	// LowFundThreshold is the balance below which the owner is told funds are low.
	LowFundThreshold = decimal.NewFromInt(500)
	// PayInNotificationThreshold is the remaining pay-in headroom below which
	// the owner is told the limit is close.
	PayInNotificationThreshold = decimal.NewFromInt(500)
)

// AmountScale is the number of decimal places money is stored with.
const AmountScale = 4

// validAmount rejects non-positive amounts and amounts finer than AmountScale,
// which the store would otherwise round away.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(AmountScale))
}

// HasLowFunds reports whether the balance is under LowFundThreshold.
func (a *Account) HasLowFunds() bool {
	return a.Balance.LessThan(LowFundThreshold)
}

// PayInHeadroom is what can still be paid in before PayInLimit is hit.
func (a *Account) PayInHeadroom() decimal.Decimal {
	return PayInLimit.Sub(a.PaidIn)
}

// HasReachedPayInLimit is true once the headroom drops under
// PayInNotificationThreshold, including when it is already zero.
func (a *Account) HasReachedPayInLimit() bool {
	return a.PayInHeadroom().LessThan(PayInNotificationThreshold)
}

// Withdraw debits amount from the balance. The account is left untouched
// when an error is returned.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.Withdrawn = a.Withdrawn.Add(amount)
	return nil
}

// PayIn credits amount to the balance. The account is left untouched
// when an error is returned.
func (a *Account) PayIn(amount decimal.Decimal) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if a.PaidIn.Add(amount).GreaterThan(PayInLimit) {
		return ErrPayInLimitExceeded
	}
	a.Balance = a.Balance.Add(amount)
	a.PaidIn = a.PaidIn.Add(amount)
	return nil
}
