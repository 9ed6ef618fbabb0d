package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	vetserrors "vetconnect/internal/vets/errors"
	"vetconnect/pkg/config"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Vets"
)

type VetRepository interface {
	Create(ctx context.Context, vet *model.Vet) error
	FindByID(ctx context.Context, id string) (*model.Vet, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vet, error)
	Update(ctx context.Context, id string, vet *model.Vet) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, error)
	CountBySearch(ctx context.Context, city, specialization string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type mongoVetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoVetRepository(cfg *config.Config) VetRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoVetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoVetRepository) Create(ctx context.Context, vet *model.Vet) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	vet.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, vet)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return vetserrors.ErrDuplicateLicense
		}
		return fmt.Errorf("failed to create vet: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		vet.ID = oid.Hex()
	}
	return nil
}

func (r *mongoVetRepository) FindByID(ctx context.Context, id string) (*model.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vetserrors.ErrInvalidID, id)
	}

	var vet model.Vet
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, vetserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vet: %w", err)
	}

	return &vet, nil
}

func (r *mongoVetRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find vets: %w", err)
	}
	defer cursor.Close(ctx)

	var vets []*model.Vet
	if err = cursor.All(ctx, &vets); err != nil {
		return nil, fmt.Errorf("failed to decode vets: %w", err)
	}

	return vets, nil
}

func (r *mongoVetRepository) Update(ctx context.Context, id string, vet *model.Vet) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vetserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"full_name":        vet.FullName,
			"email":            vet.Email,
			"phone":            vet.Phone,
			"city":             vet.City,
			"specializations":  vet.Specializations,
			"license_number":   vet.LicenseNumber,
			"fee_cents":        vet.FeeCents,
			"years_experience": vet.YearsExperience,
			"bio":              vet.Bio,
			"time_zone":        vet.TimeZone,
			"active":           vet.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update vet: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, vetserrors.ErrNotFound
	}

	return result, nil
}

// Delete deactivates the vet instead of removing the document so past
// appointments keep a valid reference.
func (r *mongoVetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", vetserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate vet: %w", err)
	}

	if result.MatchedCount == 0 {
		return vetserrors.ErrNotFound
	}

	return nil
}

func (r *mongoVetRepository) Search(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := buildSearchFilter(city, specialization)

	opts := options.Find().
		SetSort(bson.D{{Key: "years_experience", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search vets: %w", err)
	}
	defer cursor.Close(ctx)

	var vets []*model.Vet
	if err = cursor.All(ctx, &vets); err != nil {
		return nil, fmt.Errorf("failed to decode vets: %w", err)
	}

	return vets, nil
}

func (r *mongoVetRepository) CountBySearch(ctx context.Context, city, specialization string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildSearchFilter(city, specialization))
	if err != nil {
		return 0, fmt.Errorf("failed to count vets by search: %w", err)
	}
	return count, nil
}

func buildSearchFilter(city, specialization string) bson.M {
	filter := bson.M{"active": true}
	if city != "" {
		filter["city"] = city
	}
	if specialization != "" {
		filter["specializations"] = specialization
	}
	return filter
}

func (r *mongoVetRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count vets: %w", err)
	}

	return count, nil
}
