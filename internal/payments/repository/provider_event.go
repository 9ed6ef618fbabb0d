package repository

import (
	"context"
	"fmt"
	"time"

	paymentserrors "vetconnect/internal/payments/errors"
	"vetconnect/pkg/config"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProviderEventRepository records processed webhook deliveries. The provider
// event ID is the document _id, so a replayed delivery fails with a duplicate
// key error.
type ProviderEventRepository interface {
	Insert(ctx context.Context, event *model.ProviderEvent) error
}

type mongoProviderEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewProviderEventRepository(cfg *config.Config) ProviderEventRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoProviderEventRepository{
		cfg:        cfg,
		collection: db.Collection("Provider_events"),
	}
}

func (r *mongoProviderEventRepository) Insert(ctx context.Context, event *model.ProviderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	event.ReceivedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return paymentserrors.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to record provider event: %w", err)
	}

	return nil
}
