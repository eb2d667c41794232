package command

import (
	"context"

	"github.com/eaglebank/moneybox/shared/cqrs"
	"github.com/eaglebank/moneybox/shared/utils"
	"github.com/eaglebank/moneybox/shared/validation"
	"go.uber.org/zap"
)

// WithdrawMoney debits a single account, saves it and warns the owner when
// the balance ends up low.
type WithdrawMoney struct {
	accounts      AccountRepository
	notifications NotificationService
	logger        *zap.Logger
}

func NewWithdrawMoney(accounts AccountRepository, notifications NotificationService, logger *zap.Logger) *WithdrawMoney {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WithdrawMoney{
		accounts:      accounts,
		notifications: notifications,
		logger:        logger.Named("withdraw_money"),
	}
}

// Execute fails without saving or notifying anything if the withdrawal is
// rejected. The low-funds check runs against the persisted balance.
func (uc *WithdrawMoney) Execute(ctx context.Context, cmd cqrs.WithdrawMoneyCommand) error {
	cmd.AccountID = utils.NormalizeAccountID(cmd.AccountID)
	if err := validation.Struct(cmd); err != nil {
		return err
	}
	accountID, err := utils.ParseAccountID(cmd.AccountID)
	if err != nil {
		return err
	}

	account, err := uc.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := account.Withdraw(cmd.Amount); err != nil {
		uc.logger.Debug("withdrawal rejected", zap.Stringer("account_id", accountID), zap.Error(err))
		return err
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return err
	}

	uc.logger.Info("withdrawal completed",
		zap.Stringer("account_id", accountID),
		zap.Stringer("amount", cmd.Amount),
		zap.Stringer("balance", account.Balance),
	)

	if account.HasLowFunds() {
		return uc.notifications.NotifyFundsLow(ctx, account.User.Email)
	}
	return nil
}
