package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/moneybox/shared/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const selectAccountQuery = `
	SELECT a.id, a.balance, a.withdrawn, a.paid_in, a.updated_at, u.id, u.name, u.email
	FROM accounts a
	JOIN users u ON u.id = a.user_id
	WHERE a.id = $1
`

const updateAccountQuery = `
	UPDATE accounts
	SET balance = $2, withdrawn = $3, paid_in = $4, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
`

// ViewRefresher keeps the read model in step with the write store.
type ViewRefresher interface {
	CacheAccountView(ctx context.Context, view *models.AccountView)
}

// AccountWriteRepository loads and saves accounts against PostgreSQL, the
// source of truth. When a ViewRefresher is set it is called after every
// successful write.
type AccountWriteRepository struct {
	db     *sql.DB
	views  ViewRefresher
	logger *zap.Logger
}

func NewAccountWriteRepository(db *sql.DB, views ViewRefresher, logger *zap.Logger) *AccountWriteRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountWriteRepository{db: db, views: views, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.Balance, &a.Withdrawn, &a.PaidIn, &a.UpdatedAt,
		&a.User.ID, &a.User.Name, &a.User.Email,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByID fetches the full write model including the owner.
func (r *AccountWriteRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, selectAccountQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Update saves balance, withdrawn and paid_in of a single account.
func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) error {
	if err := updateAccount(ctx, r.db, account); err != nil {
		return err
	}
	r.refreshViews(ctx, account)
	return nil
}

// UpdateAccounts saves all accounts in one transaction, in argument order.
// The rows are locked first so a missing account aborts before any write.
func (r *AccountWriteRepository) UpdateAccounts(ctx context.Context, accounts ...*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", models.ErrPersistence, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.Warn("rollback failed", zap.Error(err))
		}
	}()

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID.String())
	}
	if err := lockAccounts(ctx, tx, ids); err != nil {
		return err
	}

	for _, a := range accounts {
		if err := updateAccount(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit accounts update: %w", models.ErrPersistence, err)
	}

	r.refreshViews(ctx, accounts...)
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func lockAccounts(ctx context.Context, q queryer, ids []string) error {
	rows, err := q.QueryContext(ctx,
		`SELECT id FROM accounts WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to lock accounts: %w", models.ErrPersistence, err)
	}
	defer rows.Close()

	found := make(map[string]bool, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("%w: failed to scan locked account: %w", models.ErrPersistence, err)
		}
		found[id.String()] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: failed to lock accounts: %w", models.ErrPersistence, err)
	}

	for _, id := range ids {
		if !found[id] {
			return fmt.Errorf("%w: %s", models.ErrAccountNotFound, id)
		}
	}
	return nil
}

func updateAccount(ctx context.Context, q queryer, account *models.Account) error {
	err := q.QueryRowContext(ctx, updateAccountQuery,
		account.ID, account.Balance, account.Withdrawn, account.PaidIn,
	).Scan(&account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", models.ErrAccountNotFound, account.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to update account %s: %w", models.ErrPersistence, account.ID, err)
	}
	return nil
}

func (r *AccountWriteRepository) refreshViews(ctx context.Context, accounts ...*models.Account) {
	if r.views == nil {
		return
	}
	for _, a := range accounts {
		r.views.CacheAccountView(ctx, models.NewAccountView(a))
	}
}
