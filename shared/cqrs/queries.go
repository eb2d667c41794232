package cqrs

// GetAccountQuery fetches the read view of a single account.
// Fresh bypasses the cached projection.
type GetAccountQuery struct {
	AccountID string `validate:"required,uuid"`
	Fresh     bool
}
