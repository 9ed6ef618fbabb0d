package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	petserrors "vetconnect/internal/pets/errors"
	"vetconnect/pkg/config"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Pets"
)

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id string) (*model.Pet, error)
	FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Pet, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, id string, pet *model.Pet) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type mongoPetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPetRepository(cfg *config.Config) PetRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoPetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	pet.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, pet)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pet.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", petserrors.ErrInvalidID, id)
	}

	var pet model.Pet
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, petserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}

	return &pet, nil
}

func (r *mongoPetRepository) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID, "active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pets by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []*model.Pet
	if err = cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}

	return pets, nil
}

func (r *mongoPetRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"owner_id": ownerID, "active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count pets by owner: %w", err)
	}
	return count, nil
}

func (r *mongoPetRepository) Update(ctx context.Context, id string, pet *model.Pet) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", petserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":             pet.Name,
			"breed":            pet.Breed,
			"weight_kg":        pet.WeightKG,
			"color":            pet.Color,
			"microchip_number": pet.MicrochipNumber,
			"allergies":        pet.Allergies,
			"medical_notes":    pet.MedicalNotes,
			"active":           pet.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, petserrors.ErrNotFound
	}

	return result, nil
}

// Delete deactivates the pet instead of removing the document so past
// appointments keep a valid reference.
func (r *mongoPetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", petserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate pet: %w", err)
	}

	if result.MatchedCount == 0 {
		return petserrors.ErrNotFound
	}

	return nil
}
