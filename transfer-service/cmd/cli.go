package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/eaglebank/moneybox/shared/cqrs"
	"github.com/eaglebank/moneybox/shared/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

const usage = `usage: transfer-service <command> [flags]

commands:
  withdraw --account <id> --amount <decimal>
  transfer --from <id> --to <id> --amount <decimal>
  show     --account <id> [--fresh]
  migrate`

type withdrawer interface {
	Execute(ctx context.Context, cmd cqrs.WithdrawMoneyCommand) error
}

type transferer interface {
	Execute(ctx context.Context, cmd cqrs.TransferMoneyCommand) error
}

type accountReader interface {
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
}

type cli struct {
	withdraw withdrawer
	transfer transferer
	accounts accountReader
	out      io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command\n%s", errUsage, usage)
	}

	switch name, rest := args[0], args[1:]; name {
	case "withdraw":
		return c.runWithdraw(ctx, rest)
	case "transfer":
		return c.runTransfer(ctx, rest)
	case "show":
		return c.runShow(ctx, rest)
	case "migrate":
		// Handled before the stores are wired.
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q\n%s", errUsage, name, usage)
	}
}

func (c *cli) runWithdraw(ctx context.Context, args []string) error {
	fs := newFlagSet("withdraw")
	account := fs.String("account", "", "account id")
	amount := fs.String("amount", "", "amount to withdraw")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}
	if err := c.withdraw.Execute(ctx, cqrs.WithdrawMoneyCommand{AccountID: *account, Amount: value}); err != nil {
		return err
	}
	return c.show(ctx, *account)
}

func (c *cli) runTransfer(ctx context.Context, args []string) error {
	fs := newFlagSet("transfer")
	from := fs.String("from", "", "source account id")
	to := fs.String("to", "", "destination account id")
	amount := fs.String("amount", "", "amount to transfer")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}
	cmd := cqrs.TransferMoneyCommand{FromAccountID: *from, ToAccountID: *to, Amount: value}
	if err := c.transfer.Execute(ctx, cmd); err != nil {
		return err
	}
	if err := c.show(ctx, *from); err != nil {
		return err
	}
	return c.show(ctx, *to)
}

func (c *cli) runShow(ctx context.Context, args []string) error {
	fs := newFlagSet("show")
	account := fs.String("account", "", "account id")
	fresh := fs.Bool("fresh", false, "bypass the cached view")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	view, err := c.accounts.GetAccount(ctx, cqrs.GetAccountQuery{AccountID: *account, Fresh: *fresh})
	if err != nil {
		return err
	}
	return c.print(view)
}

// show prints the account state right after a write, so the cached view is skipped.
func (c *cli) show(ctx context.Context, accountID string) error {
	view, err := c.accounts.GetAccount(ctx, cqrs.GetAccountQuery{AccountID: accountID, Fresh: true})
	if err != nil {
		return err
	}
	return c.print(view)
}

func (c *cli) print(view *models.AccountView) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: --amount is required", errUsage)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", errUsage, raw)
	}
	return value, nil
}
