package repository

import (
	"context"
	"encoding/json"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/redis/go-redis/v9"
)

// IOwnerRepository defines the contract for owner document operations.
type IOwnerRepository interface {
	SaveOwner(ctx context.Context, owner *model.Owner) error
	GetOwner(ctx context.Context, id string) (*model.Owner, error)
}

// OwnerRepository implements IOwnerRepository on top of Redis JSON documents.
type OwnerRepository struct {
	Client *redis.Client
}

func NewOwnerRepository(client *redis.Client) *OwnerRepository {
	return &OwnerRepository{Client: client}
}

func ownerKey(id string) string {
	return "owner:" + id
}

// SaveOwner writes the full owner document under its key. A save replaces
// the previous document in one command, so readers never see a partial owner.
func (r *OwnerRepository) SaveOwner(ctx context.Context, owner *model.Owner) error {
	log := logger.Log.WithField("owner_id", owner.ID)
	log.Info("Saving owner document")

	data, err := json.Marshal(owner)
	if err != nil {
		log.WithError(err).Error("Failed to marshal owner document")
		return err
	}
	if err := r.Client.Set(ctx, ownerKey(owner.ID), data, 0).Err(); err != nil {
		log.WithError(err).Error("Failed to save owner document")
		return err
	}
	return nil
}

// GetOwner fetches an owner by id. Returns redis.Nil when the owner does not
// exist; services map that to their not-found error.
func (r *OwnerRepository) GetOwner(ctx context.Context, id string) (*model.Owner, error) {
	log := logger.Log.WithField("owner_id", id)

	data, err := r.Client.Get(ctx, ownerKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			log.Info("Owner not found")
		} else {
			log.WithError(err).Error("Failed to fetch owner document")
		}
		return nil, err
	}

	var owner model.Owner
	if err := json.Unmarshal(data, &owner); err != nil {
		log.WithError(err).Error("Failed to unmarshal owner document")
		return nil, err
	}
	return &owner, nil
}
