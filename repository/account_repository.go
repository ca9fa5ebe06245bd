package repository

import (
	"context"
	"encoding/json"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account document operations.
// The transfer engine is the only caller that mutates balances or histories.
type IAccountRepository interface {
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, iban string) (*model.Account, error)
}

// AccountRepository implements IAccountRepository on top of Redis JSON
// documents keyed by IBAN.
type AccountRepository struct {
	Client *redis.Client
}

func NewAccountRepository(client *redis.Client) *AccountRepository {
	return &AccountRepository{Client: client}
}

func accountKey(iban string) string {
	return "account:" + iban
}

// SaveAccount persists balance and history in a single SET, so the document
// is replaced whole or not at all.
func (r *AccountRepository) SaveAccount(ctx context.Context, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"iban":    account.IBAN,
		"balance": account.Balance.String(),
	})
	log.Info("Saving account document")

	data, err := json.Marshal(account)
	if err != nil {
		log.WithError(err).Error("Failed to marshal account document")
		return err
	}
	if err := r.Client.Set(ctx, accountKey(account.IBAN), data, 0).Err(); err != nil {
		log.WithError(err).Error("Failed to save account document")
		return err
	}
	return nil
}

// GetAccount fetches an account by IBAN. Returns redis.Nil when absent.
func (r *AccountRepository) GetAccount(ctx context.Context, iban string) (*model.Account, error) {
	log := logger.Log.WithField("iban", iban)

	data, err := r.Client.Get(ctx, accountKey(iban)).Bytes()
	if err != nil {
		if err == redis.Nil {
			log.Info("Account not found")
		} else {
			log.WithError(err).Error("Failed to fetch account document")
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		log.WithError(err).Error("Failed to unmarshal account document")
		return nil, err
	}
	return &account, nil
}
