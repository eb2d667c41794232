package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/eaglebank/moneybox/shared/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---- mock implementations ----

// callLog records collaborator calls across both mocks so tests can assert ordering.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type mockAccountRepository struct {
	log            *callLog
	accounts       map[uuid.UUID]*models.Account
	updateFn       func(*models.Account) error
	updateAllFn    func(...*models.Account) error
	updated        []models.Account
	updateCalls    int
	updateAllCalls int
}

func newMockAccountRepository(log *callLog, accounts ...*models.Account) *mockAccountRepository {
	m := &mockAccountRepository{log: log, accounts: map[uuid.UUID]*models.Account{}}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	m.log.add("get %s", id)
	a, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return a, nil
}

func (m *mockAccountRepository) Update(ctx context.Context, account *models.Account) error {
	m.updateCalls++
	m.log.add("update %s", account.ID)
	if m.updateFn != nil {
		return m.updateFn(account)
	}
	m.updated = append(m.updated, *account)
	return nil
}

func (m *mockAccountRepository) UpdateAccounts(ctx context.Context, accounts ...*models.Account) error {
	m.updateAllCalls++
	for _, a := range accounts {
		m.log.add("update %s", a.ID)
	}
	if m.updateAllFn != nil {
		return m.updateAllFn(accounts...)
	}
	for _, a := range accounts {
		m.updated = append(m.updated, *a)
	}
	return nil
}

type mockNotificationService struct {
	log              *callLog
	fundsLowFn       func(string) error
	payInLimitFn     func(string) error
	fundsLow         []string
	approachingLimit []string
}

func (m *mockNotificationService) NotifyFundsLow(ctx context.Context, email string) error {
	m.log.add("notify funds low %s", email)
	m.fundsLow = append(m.fundsLow, email)
	if m.fundsLowFn != nil {
		return m.fundsLowFn(email)
	}
	return nil
}

func (m *mockNotificationService) NotifyApproachingPayInLimit(ctx context.Context, email string) error {
	m.log.add("notify pay in limit %s", email)
	m.approachingLimit = append(m.approachingLimit, email)
	if m.payInLimitFn != nil {
		return m.payInLimitFn(email)
	}
	return nil
}

// ---- test data ----

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func anAccount(email string, balance, withdrawn, paidIn int64) *models.Account {
	return &models.Account{
		ID:        uuid.New(),
		User:      models.User{ID: uuid.New(), Name: email, Email: email},
		Balance:   dec(balance),
		Withdrawn: dec(withdrawn),
		PaidIn:    dec(paidIn),
	}
}

func assertDecimal(t *testing.T, field string, want int64, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s %d got %s", field, want, got)
	}
}

func assertCalls(t *testing.T, want []string, got *callLog) {
	t.Helper()
	if len(want) != len(got.calls) {
		t.Fatalf("expected calls %v got %v", want, got.calls)
	}
	for i := range want {
		if want[i] != got.calls[i] {
			t.Fatalf("call %d: expected %q got %q (all: %v)", i, want[i], got.calls[i], got.calls)
		}
	}
}

var errBoom = errors.New("boom")
