package command

import (
	"context"

	"github.com/eaglebank/moneybox/shared/models"
	"github.com/google/uuid"
)

// AccountRepository loads and saves accounts for the use cases.
//
// GetAccountByID returns models.ErrAccountNotFound for an unknown id. Update
// re-saves the full state of one account and may be repeated with the same
// snapshot. UpdateAccounts saves every account or none of them, in argument
// order. Write failures wrap models.ErrPersistence.
//
// Nothing is locked between GetAccountByID and the save, so concurrent
// executions against the same account can overwrite each other.
type AccountRepository interface {
	GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	UpdateAccounts(ctx context.Context, accounts ...*models.Account) error
}

// NotificationService tells account owners about threshold crossings.
type NotificationService interface {
	NotifyFundsLow(ctx context.Context, email string) error
	NotifyApproachingPayInLimit(ctx context.Context, email string) error
}
