package repository

import (
	"context"
	"encoding/json"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateTransaction is returned when an append would overwrite an
// existing record. The log is append-only; this should never happen with
// ULID ids and indicates a programming error.
var ErrDuplicateTransaction = errors.New("transaction id already recorded")

// ITransactionRepository defines the contract for the append-only
// transaction log. There is no update or delete.
type ITransactionRepository interface {
	AppendTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository on top of Redis
// JSON documents keyed by transaction id.
type TransactionRepository struct {
	Client *redis.Client
}

func NewTransactionRepository(client *redis.Client) *TransactionRepository {
	return &TransactionRepository{Client: client}
}

func transactionKey(id string) string {
	return "transaction:" + id
}

// AppendTransaction writes an immutable transaction record. SETNX enforces
// append-only semantics at the store level.
func (r *TransactionRepository) AppendTransaction(ctx context.Context, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"transaction_id":   transaction.ID,
		"transaction_type": transaction.Type,
		"amount":           transaction.Amount.String(),
	})
	log.Info("Appending transaction record")

	data, err := json.Marshal(transaction)
	if err != nil {
		log.WithError(err).Error("Failed to marshal transaction record")
		return err
	}

	ok, err := r.Client.SetNX(ctx, transactionKey(transaction.ID), data, 0).Result()
	if err != nil {
		log.WithError(err).Error("Failed to append transaction record")
		return err
	}
	if !ok {
		log.Error("Refusing to overwrite existing transaction record")
		return ErrDuplicateTransaction
	}
	return nil
}

// GetTransaction fetches one record by id. Returns redis.Nil when absent.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	log := logger.Log.WithField("transaction_id", id)

	data, err := r.Client.Get(ctx, transactionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			log.Info("Transaction not found")
		} else {
			log.WithError(err).Error("Failed to fetch transaction record")
		}
		return nil, err
	}

	var transaction model.Transaction
	if err := json.Unmarshal(data, &transaction); err != nil {
		log.WithError(err).Error("Failed to unmarshal transaction record")
		return nil, err
	}
	return &transaction, nil
}
