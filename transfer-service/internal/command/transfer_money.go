package command

import (
	"context"
	"errors"

	"github.com/eaglebank/moneybox/shared/cqrs"
	"github.com/eaglebank/moneybox/shared/models"
	"github.com/eaglebank/moneybox/shared/utils"
	"github.com/eaglebank/moneybox/shared/validation"
	"go.uber.org/zap"
)

// TransferMoney moves money between two accounts.
//
// Both accounts are mutated in memory first and only then saved together with
// AccountRepository.UpdateAccounts, so a rejected pay-in never leaves a
// persisted debit behind. Notifications go out after the save and reflect the
// stored balances.
type TransferMoney struct {
	accounts      AccountRepository
	notifications NotificationService
	logger        *zap.Logger
}

func NewTransferMoney(accounts AccountRepository, notifications NotificationService, logger *zap.Logger) *TransferMoney {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferMoney{
		accounts:      accounts,
		notifications: notifications,
		logger:        logger.Named("transfer_money"),
	}
}

func (uc *TransferMoney) Execute(ctx context.Context, cmd cqrs.TransferMoneyCommand) error {
	cmd.FromAccountID = utils.NormalizeAccountID(cmd.FromAccountID)
	cmd.ToAccountID = utils.NormalizeAccountID(cmd.ToAccountID)
	if cmd.FromAccountID != "" && cmd.FromAccountID == cmd.ToAccountID {
		return models.ErrSameAccount
	}
	if err := validation.Struct(cmd); err != nil {
		return err
	}
	fromID, err := utils.ParseAccountID(cmd.FromAccountID)
	if err != nil {
		return err
	}
	toID, err := utils.ParseAccountID(cmd.ToAccountID)
	if err != nil {
		return err
	}

	from, err := uc.accounts.GetAccountByID(ctx, fromID)
	if err != nil {
		return err
	}
	to, err := uc.accounts.GetAccountByID(ctx, toID)
	if err != nil {
		return err
	}

	if err := from.Withdraw(cmd.Amount); err != nil {
		uc.logger.Debug("transfer rejected at withdrawal", zap.Stringer("from_account_id", fromID), zap.Error(err))
		return err
	}
	// from is dirty from here on and must not reach the repository on failure.
	if err := to.PayIn(cmd.Amount); err != nil {
		uc.logger.Debug("transfer rejected at pay in", zap.Stringer("to_account_id", toID), zap.Error(err))
		return err
	}

	if err := uc.accounts.UpdateAccounts(ctx, from, to); err != nil {
		return err
	}

	uc.logger.Info("transfer completed",
		zap.Stringer("from_account_id", fromID),
		zap.Stringer("to_account_id", toID),
		zap.Stringer("amount", cmd.Amount),
	)

	var errs []error
	if from.HasLowFunds() {
		if err := uc.notifications.NotifyFundsLow(ctx, from.User.Email); err != nil {
			errs = append(errs, err)
		}
	}
	if to.HasReachedPayInLimit() {
		if err := uc.notifications.NotifyApproachingPayInLimit(ctx, to.User.Email); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
