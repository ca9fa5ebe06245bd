package service

import (
	"context"
	"errors"
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

var (
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrSameAccountTransfer = errors.New("cannot transfer money to the same account")
	ErrAccountNotFound     = errors.New("account not found")
	ErrOwnerNotFound       = errors.New("owner not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// PartialCommitError reports a transfer that persisted the origin account
// but, after bounded retries, could not persist the destination. The ledger
// legs exist and the origin was debited; TransactionRef is the marker an
// out-of-band reconciliation process needs to repair the destination.
type PartialCommitError struct {
	TransactionRef string
	FailedIBAN     string
	Err            error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial commit: account %s not persisted, reconcile with transaction %s: %v",
		e.FailedIBAN, e.TransactionRef, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// TransferResult is what a committed transfer reports back: the outward
// leg's id as the transfer reference, and the origin's balance after debit.
type TransferResult struct {
	ReferenceID   string
	OriginBalance decimal.Decimal
}

// TransferService is the sole mutator of balances and the sole producer of
// transaction records. A transfer runs entirely under exclusive locks on the
// two accounts and persists nothing until both ledger legs are recorded.
type TransferService struct {
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	locker          *accountLocker
	lockWait        time.Duration
	saveRetries     int
}

func NewTransferService(accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository, lockWait time.Duration, saveRetries int) *TransferService {
	if lockWait <= 0 {
		lockWait = 5 * time.Second
	}
	if saveRetries < 1 {
		saveRetries = 3
	}
	return &TransferService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		locker:          newAccountLocker(),
		lockWait:        lockWait,
		saveRetries:     saveRetries,
	}
}

// Transfer moves amount from origin to destination, appending a correlated
// OUTWARD/RECEIVE pair to the transaction log and both account histories.
//
// Validation order: amount, self-transfer, origin exists, destination
// exists, sufficient balance. The first failure wins and nothing is written.
func (s *TransferService) Transfer(ctx context.Context, originIBAN, destinationIBAN string, amount decimal.Decimal) (*TransferResult, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"origin":      originIBAN,
		"destination": destinationIBAN,
		"amount":      amount.String(),
	})
	log.Info("Starting transfer")

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if originIBAN == destinationIBAN {
		return nil, ErrSameAccountTransfer
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	release, err := s.locker.acquire(lockCtx, originIBAN, destinationIBAN)
	if err != nil {
		log.WithError(err).Warn("Could not acquire account locks")
		return nil, err
	}
	defer release()

	origin, err := s.accountRepo.GetAccount(ctx, originIBAN)
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not load origin account: %w", err)
	}
	destination, err := s.accountRepo.GetAccount(ctx, destinationIBAN)
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not load destination account: %w", err)
	}

	if origin.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	// Debit and credit in memory only. Nothing reaches the store until both
	// ledger legs are recorded, so a failure up to that point has no side
	// effect to roll back.
	origin.Balance = origin.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)
	if origin.Balance.IsNegative() {
		return nil, ErrInsufficientBalance
	}

	now := time.Now().UTC()
	outward := model.NewOutwardTransaction(common.NewID(), destinationIBAN, amount, now)
	inward := model.NewInwardTransaction(common.NewID(), originIBAN, amount, now)

	if err := s.transactionRepo.AppendTransaction(ctx, outward); err != nil {
		return nil, fmt.Errorf("could not record outward leg: %w", err)
	}
	if err := s.transactionRepo.AppendTransaction(ctx, inward); err != nil {
		return nil, fmt.Errorf("could not record inward leg: %w", err)
	}

	origin.TransferHistory = append(origin.TransferHistory, outward.ID)
	destination.TransferHistory = append(destination.TransferHistory, inward.ID)

	if err := s.saveWithRetry(ctx, origin); err != nil {
		// The origin was never persisted, so balances are still consistent
		// and the two appended legs are unreferenced by any history. The
		// caller may retry the whole transfer.
		return nil, fmt.Errorf("could not persist origin account: %w", err)
	}
	if err := s.saveWithRetry(ctx, destination); err != nil {
		pce := &PartialCommitError{
			TransactionRef: outward.ID,
			FailedIBAN:     destinationIBAN,
			Err:            err,
		}
		log.WithError(err).WithField("transaction_reference", outward.ID).
			Error("Transfer partially committed, reconciliation required")
		return nil, pce
	}

	log.WithField("transaction_reference", outward.ID).Info("Transfer committed")
	return &TransferResult{ReferenceID: outward.ID, OriginBalance: origin.Balance}, nil
}

func (s *TransferService) saveWithRetry(ctx context.Context, account *model.Account) error {
	var err error
	for attempt := 1; attempt <= s.saveRetries; attempt++ {
		if err = s.accountRepo.SaveAccount(ctx, account); err == nil {
			return nil
		}
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"iban":    account.IBAN,
			"attempt": attempt,
		}).Warn("Account save failed")
		if attempt < s.saveRetries {
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
		}
	}
	return err
}
