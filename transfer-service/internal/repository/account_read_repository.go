package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/moneybox/shared/models"
	sharedredis "github.com/eaglebank/moneybox/shared/redis"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository handles all read operations for accounts.
// It treats Redis as the primary read store (the CQRS read model) and falls
// back to PostgreSQL transparently, warming the cache on every cold read.
type AccountReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client, ttl time.Duration, logger *zap.Logger) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.AccountView](redisClient, ttl, logger),
	}
}

// GetByAccountID returns an AccountView, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByAccountID(ctx context.Context, id uuid.UUID) (*models.AccountView, error) {
	if view, ok := r.cache.Get(ctx, accountViewKeyPrefix+id.String()); ok {
		return view, nil
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, selectAccountQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	view := models.NewAccountView(account)
	r.CacheAccountView(ctx, view)
	return view, nil
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called by the write repository after every save to keep the read model current.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, accountViewKeyPrefix+view.ID.String(), view)
}

// InvalidateAccountView removes the Redis read model entry for an account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, accountViewKeyPrefix+id.String())
}
