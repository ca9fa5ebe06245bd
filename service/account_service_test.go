// service/account_service_test.go
package service

import (
	"context"
	"go-ledger-api/model"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOwnerRepository is a mock for IOwnerRepository.
type MockOwnerRepository struct{ mock.Mock }

func (m *MockOwnerRepository) SaveOwner(ctx context.Context, owner *model.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) GetOwner(ctx context.Context, id string) (*model.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Owner), args.Error(1)
}

func TestAccountService_CreateOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockOwnerRepo := new(MockOwnerRepository)
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(mockOwnerRepo, mockAccountRepo, new(MockTransactionRepository))

		mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(acc *model.Account) bool {
			return acc.Balance.Equal(dec("300")) && len(acc.IBAN) == 26
		})).Return(nil).Once()
		mockOwnerRepo.On("SaveOwner", mock.Anything, mock.MatchedBy(func(o *model.Owner) bool {
			return o.Name == "John Doe" && len(o.BankAccounts) == 1
		})).Return(nil).Once()

		owner, account, err := accountService.CreateOwner(ctx, "John Doe", dec("300"))

		assert.NoError(t, err)
		assert.Len(t, owner.ID, 26)
		assert.Equal(t, []string{account.IBAN}, owner.BankAccounts)
		assert.True(t, account.Balance.Equal(dec("300")))
		mockOwnerRepo.AssertExpectations(t)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("non-positive amount persists nothing", func(t *testing.T) {
		mockOwnerRepo := new(MockOwnerRepository)
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(mockOwnerRepo, mockAccountRepo, new(MockTransactionRepository))

		for _, amount := range []string{"0", "-5"} {
			_, _, err := accountService.CreateOwner(ctx, "John Doe", dec(amount))
			assert.Equal(t, ErrInvalidAmount, err)
		}
		mockOwnerRepo.AssertNotCalled(t, "SaveOwner")
		mockAccountRepo.AssertNotCalled(t, "SaveAccount")
	})
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to existing owner", func(t *testing.T) {
		mockOwnerRepo := new(MockOwnerRepository)
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(mockOwnerRepo, mockAccountRepo, new(MockTransactionRepository))

		owner := &model.Owner{ID: "OWNER1", Name: "Jane", BankAccounts: []string{"EXISTING"}}
		mockOwnerRepo.On("GetOwner", mock.Anything, "OWNER1").Return(owner, nil).Once()
		mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil).Once()
		mockOwnerRepo.On("SaveOwner", mock.Anything, owner).Return(nil).Once()

		account, err := accountService.CreateAccount(ctx, "OWNER1", dec("42.50"))

		assert.NoError(t, err)
		assert.Equal(t, []string{"EXISTING", account.IBAN}, owner.BankAccounts)
		mockOwnerRepo.AssertExpectations(t)
	})

	t.Run("owner not found", func(t *testing.T) {
		mockOwnerRepo := new(MockOwnerRepository)
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(mockOwnerRepo, mockAccountRepo, new(MockTransactionRepository))

		mockOwnerRepo.On("GetOwner", mock.Anything, "MISSING").Return(nil, redis.Nil).Once()

		_, err := accountService.CreateAccount(ctx, "MISSING", dec("10"))

		assert.Equal(t, ErrOwnerNotFound, err)
		mockAccountRepo.AssertNotCalled(t, "SaveAccount")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		mockOwnerRepo := new(MockOwnerRepository)
		accountService := NewAccountService(mockOwnerRepo, new(MockAccountRepository), new(MockTransactionRepository))

		mockOwnerRepo.On("GetOwner", mock.Anything, "OWNER1").Return(&model.Owner{ID: "OWNER1"}, nil).Once()

		_, err := accountService.CreateAccount(ctx, "OWNER1", dec("0"))

		assert.Equal(t, ErrInvalidAmount, err)
	})
}

func TestAccountService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(new(MockOwnerRepository), mockAccountRepo, new(MockTransactionRepository))

		mockAccountRepo.On("GetAccount", mock.Anything, "IBAN1").
			Return(&model.Account{IBAN: "IBAN1", Balance: dec("423.65")}, nil).Once()

		balance, err := accountService.GetBalance(ctx, "IBAN1")

		assert.NoError(t, err)
		assert.True(t, balance.Equal(dec("423.65")))
	})

	t.Run("account not found", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(new(MockOwnerRepository), mockAccountRepo, new(MockTransactionRepository))

		mockAccountRepo.On("GetAccount", mock.Anything, "MISSING").Return(nil, redis.Nil).Once()

		_, err := accountService.GetBalance(ctx, "MISSING")

		assert.Equal(t, ErrAccountNotFound, err)
	})
}

func TestAccountService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history yields empty slice", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		accountService := NewAccountService(new(MockOwnerRepository), mockAccountRepo, new(MockTransactionRepository))

		mockAccountRepo.On("GetAccount", mock.Anything, "FRESH").
			Return(&model.Account{IBAN: "FRESH", Balance: dec("10")}, nil).Once()

		views, err := accountService.ListTransactions(ctx, "FRESH")

		assert.NoError(t, err)
		assert.NotNil(t, views, "must serialize as [] rather than null")
		assert.Empty(t, views)
	})

	t.Run("resolves history in order", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		accountService := NewAccountService(new(MockOwnerRepository), mockAccountRepo, mockTxnRepo)

		ts := time.Date(2025, 2, 26, 18, 23, 46, 0, time.UTC)
		outward := model.NewOutwardTransaction("T1", "DEST", dec("76.35"), ts)
		inward := model.NewInwardTransaction("T2", "ORIG", dec("26.09"), ts.Add(time.Minute))

		mockAccountRepo.On("GetAccount", mock.Anything, "IBAN1").
			Return(&model.Account{IBAN: "IBAN1", TransferHistory: []string{"T1", "T2"}}, nil).Once()
		mockTxnRepo.On("GetTransaction", mock.Anything, "T1").Return(outward, nil).Once()
		mockTxnRepo.On("GetTransaction", mock.Anything, "T2").Return(inward, nil).Once()

		views, err := accountService.ListTransactions(ctx, "IBAN1")

		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, model.TransactionTypeTransfer, views[0].TransactionType)
		assert.Equal(t, "DEST", *views[0].Destination)
		assert.Nil(t, views[0].Origin)
		assert.Equal(t, model.TransactionTypeReceive, views[1].TransactionType)
		assert.Equal(t, "ORIG", *views[1].Origin)
		assert.Nil(t, views[1].Destination)
		assert.True(t, views[0].Timestamp.Before(views[1].Timestamp))
	})
}
