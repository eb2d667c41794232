package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eaglebank/moneybox/shared/cqrs"
	"github.com/eaglebank/moneybox/shared/models"
	"github.com/eaglebank/moneybox/shared/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transfer(t *testing.T, repo *mockAccountRepository, notifier *mockNotificationService, from, to string, amount int64) error {
	t.Helper()
	return NewTransferMoney(repo, notifier, nil).Execute(context.Background(), cqrs.TransferMoneyCommand{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        dec(amount),
	})
}

func TestTransferMoney_UpdatesBothAccounts(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 1000, 0, 0)
	to := anAccount("to@test.com", 500, 0, 0)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	require.NoError(t, transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 100))

	assertDecimal(t, "from balance", 900, from.Balance)
	assertDecimal(t, "from withdrawn", 100, from.Withdrawn)
	assertDecimal(t, "to balance", 600, to.Balance)
	assertDecimal(t, "to paidIn", 100, to.PaidIn)
	assert.Equal(t, 1, repo.updateAllCalls)
	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, notifier.fundsLow)
	assert.Empty(t, notifier.approachingLimit)
}

// Source drops to 400 and is warned; destination paidIn of 200 is far from the limit.
func TestTransferMoney_LowFundsOnSource(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 600, 0, 0)
	to := anAccount("to@test.com", 500, 0, 0)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	require.NoError(t, transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200))

	assertDecimal(t, "from balance", 400, from.Balance)
	assertDecimal(t, "to balance", 700, to.Balance)
	assertDecimal(t, "to paidIn", 200, to.PaidIn)
	assertCalls(t, []string{
		"get " + from.ID.String(),
		"get " + to.ID.String(),
		"update " + from.ID.String(),
		"update " + to.ID.String(),
		"notify funds low from@test.com",
	}, calls)
	assert.Equal(t, []string{"from@test.com"}, notifier.fundsLow)
	assert.Empty(t, notifier.approachingLimit)
}

func TestTransferMoney_ApproachingPayInLimitOnDestination(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 1000, 0, 0)
	to := anAccount("to@test.com", 0, 0, 3400)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	require.NoError(t, transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200))

	assert.Empty(t, notifier.fundsLow)
	assert.Equal(t, []string{"to@test.com"}, notifier.approachingLimit)
}

func TestTransferMoney_BothNotificationsSourceFirst(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 600, 0, 0)
	to := anAccount("to@test.com", 0, 0, 3800)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	require.NoError(t, transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200))

	assert.Equal(t, []string{
		"notify funds low from@test.com",
		"notify pay in limit to@test.com",
	}, calls.calls[len(calls.calls)-2:])
}

func TestTransferMoney_InsufficientFunds(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 50, 0, 0)
	to := anAccount("to@test.com", 500, 0, 0)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	err := transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 100)
	require.ErrorIs(t, err, models.ErrInsufficientFunds)

	assertDecimal(t, "from balance", 50, from.Balance)
	assertDecimal(t, "to balance", 500, to.Balance)
	assertDecimal(t, "to paidIn", 0, to.PaidIn)
	assert.Zero(t, repo.updateAllCalls)
	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, notifier.fundsLow)
}

func TestTransferMoney_ExceedingPayInLimit(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 1000, 0, 0)
	to := anAccount("to@test.com", 500, 0, 3900)
	repo := newMockAccountRepository(calls, from, to)
	notifier := &mockNotificationService{log: calls}

	err := transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200)
	require.ErrorIs(t, err, models.ErrPayInLimitExceeded)

	assert.Zero(t, repo.updateAllCalls)
	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, repo.updated)
	assert.Empty(t, notifier.fundsLow)
	assert.Empty(t, notifier.approachingLimit)
	assertCalls(t, []string{
		"get " + from.ID.String(),
		"get " + to.ID.String(),
	}, calls)
}

func TestTransferMoney_AccountNotFound(t *testing.T) {
	present := anAccount("present@test.com", 1000, 0, 0)
	missing := uuid.New()

	tests := []struct {
		name     string
		from, to string
		wantGets int
	}{
		{name: "source missing", from: missing.String(), to: present.ID.String(), wantGets: 1},
		{name: "destination missing", from: present.ID.String(), to: missing.String(), wantGets: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			repo := newMockAccountRepository(calls, present)
			notifier := &mockNotificationService{log: calls}

			err := transfer(t, repo, notifier, tt.from, tt.to, 10)
			require.ErrorIs(t, err, models.ErrAccountNotFound)
			assert.Len(t, calls.calls, tt.wantGets)
			assert.Zero(t, repo.updateAllCalls)
		})
	}
}

func TestTransferMoney_PersistenceFailureSkipsNotifications(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 600, 0, 0)
	to := anAccount("to@test.com", 0, 0, 3800)
	repo := newMockAccountRepository(calls, from, to)
	persistErr := errors.Join(models.ErrPersistence, errBoom)
	repo.updateAllFn = func(...*models.Account) error { return persistErr }
	notifier := &mockNotificationService{log: calls}

	err := transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200)
	require.ErrorIs(t, err, models.ErrPersistence)
	assert.Empty(t, notifier.fundsLow)
	assert.Empty(t, notifier.approachingLimit)
}

func TestTransferMoney_NotificationFailuresDoNotStopEachOther(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 600, 0, 0)
	to := anAccount("to@test.com", 0, 0, 3800)
	repo := newMockAccountRepository(calls, from, to)
	errLimit := errors.New("sms gateway down")
	notifier := &mockNotificationService{
		log:          calls,
		fundsLowFn:   func(string) error { return errBoom },
		payInLimitFn: func(string) error { return errLimit },
	}

	err := transfer(t, repo, notifier, from.ID.String(), to.ID.String(), 200)
	require.ErrorIs(t, err, errBoom)
	require.ErrorIs(t, err, errLimit)
	assert.Equal(t, 1, repo.updateAllCalls, "transfer stays saved")
	assert.Len(t, notifier.approachingLimit, 1)
}

func TestTransferMoney_RejectsBadCommands(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name     string
		from, to string
		amount   int64
		wantErr  error
	}{
		{name: "same account", from: id, to: id, amount: 10, wantErr: models.ErrSameAccount},
		{name: "same account in upper case", from: id, to: " " + strings.ToUpper(id), amount: 10, wantErr: models.ErrSameAccount},
		{name: "missing destination", from: id, to: "", amount: 10, wantErr: validation.ErrInvalidCommand},
		{name: "malformed source", from: "acc-1", to: id, amount: 10, wantErr: validation.ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			repo := newMockAccountRepository(calls)

			err := transfer(t, repo, &mockNotificationService{log: calls}, tt.from, tt.to, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, calls.calls)
		})
	}
}

func TestTransferMoney_NonPositiveAmountAbortsBeforePersisting(t *testing.T) {
	calls := &callLog{}
	from := anAccount("from@test.com", 1000, 0, 0)
	to := anAccount("to@test.com", 500, 0, 0)
	repo := newMockAccountRepository(calls, from, to)

	err := transfer(t, repo, &mockNotificationService{log: calls}, from.ID.String(), to.ID.String(), -50)
	require.ErrorIs(t, err, models.ErrInvalidAmount)
	assertDecimal(t, "from balance", 1000, from.Balance)
	assertDecimal(t, "to balance", 500, to.Balance)
	assert.Zero(t, repo.updateAllCalls)
}
