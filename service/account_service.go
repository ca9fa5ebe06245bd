package service

import (
	"context"
	"fmt"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AccountService covers provisioning (owners and accounts) and the read
// side (balance, transaction history). It never mutates a balance after
// creation; that is the transfer service's job.
type AccountService struct {
	ownerRepo       repository.IOwnerRepository
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
}

func NewAccountService(ownerRepo repository.IOwnerRepository, accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository) *AccountService {
	return &AccountService{
		ownerRepo:       ownerRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateOwner provisions a new owner together with their first account. The
// amount is validated before anything is persisted, so a bad request leaves
// no half-created owner behind.
func (s *AccountService) CreateOwner(ctx context.Context, name string, initialBalance decimal.Decimal) (*model.Owner, *model.Account, error) {
	if initialBalance.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}

	owner := &model.Owner{
		ID:        common.NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	logger.Log.WithFields(logrus.Fields{
		"owner_id": owner.ID,
		"name":     name,
	}).Info("Creating owner")

	account, err := s.createAccountFor(ctx, owner, initialBalance)
	if err != nil {
		return nil, nil, err
	}
	return owner, account, nil
}

// CreateAccount provisions an additional account for an existing owner.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID string, initialBalance decimal.Decimal) (*model.Account, error) {
	owner, err := s.ownerRepo.GetOwner(ctx, ownerID)
	if err != nil {
		if err == redis.Nil {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("could not load owner: %w", err)
	}

	if initialBalance.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return s.createAccountFor(ctx, owner, initialBalance)
}

// createAccountFor persists a fresh account, then the owner referencing it.
func (s *AccountService) createAccountFor(ctx context.Context, owner *model.Owner, initialBalance decimal.Decimal) (*model.Account, error) {
	account := &model.Account{
		IBAN:            common.NewID(),
		Balance:         initialBalance,
		TransferHistory: []string{},
		CreatedAt:       time.Now().UTC(),
	}
	owner.BankAccounts = append(owner.BankAccounts, account.IBAN)

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("could not save account: %w", err)
	}
	if err := s.ownerRepo.SaveOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("could not save owner: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"owner_id": owner.ID,
		"iban":     account.IBAN,
		"balance":  account.Balance.String(),
	}).Info("Account created")
	return account, nil
}

// GetBalance returns the committed balance of an account.
func (s *AccountService) GetBalance(ctx context.Context, iban string) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetAccount(ctx, iban)
	if err != nil {
		if err == redis.Nil {
			return decimal.Decimal{}, ErrAccountNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("could not load account: %w", err)
	}
	return account.Balance, nil
}

// ListTransactions resolves an account's history ids into wire views, in
// the order the transfers committed. A fresh account yields an empty slice,
// not an error.
func (s *AccountService) ListTransactions(ctx context.Context, iban string) ([]model.TransactionView, error) {
	account, err := s.accountRepo.GetAccount(ctx, iban)
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not load account: %w", err)
	}

	views := make([]model.TransactionView, 0, len(account.TransferHistory))
	for _, id := range account.TransferHistory {
		transaction, err := s.transactionRepo.GetTransaction(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("could not load transaction %s: %w", id, err)
		}
		views = append(views, transaction.View())
	}
	return views, nil
}
