package query

import (
	"context"

	"github.com/eaglebank/moneybox/shared/cqrs"
	"github.com/eaglebank/moneybox/shared/models"
	"github.com/eaglebank/moneybox/shared/utils"
	"github.com/eaglebank/moneybox/shared/validation"
	"github.com/google/uuid"
)

// AccountViewReader is satisfied by *repository.AccountReadRepository.
type AccountViewReader interface {
	GetByAccountID(ctx context.Context, id uuid.UUID) (*models.AccountView, error)
	InvalidateAccountView(ctx context.Context, id uuid.UUID)
}

type AccountQueryService struct {
	readRepo AccountViewReader
}

func NewAccountQueryService(readRepo AccountViewReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// GetAccount fetches a single account view. With q.Fresh set the cached
// projection is dropped first so the view is rebuilt from the write store.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	q.AccountID = utils.NormalizeAccountID(q.AccountID)
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	id, err := utils.ParseAccountID(q.AccountID)
	if err != nil {
		return nil, err
	}
	if q.Fresh {
		s.readRepo.InvalidateAccountView(ctx, id)
	}
	return s.readRepo.GetByAccountID(ctx, id)
}
