package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	apptserrors "vetconnect/internal/appointments/errors"
	"vetconnect/pkg/config"
	mongotx "vetconnect/pkg/db/mongo"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Appointments"
)

// SearchQuery narrows appointment lookups. Zero-valued fields are ignored.
type SearchQuery struct {
	VetID     string
	ClientID  string
	Status    string
	StartTime *time.Time
	EndTime   *time.Time
}

type mongoAppointmentRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error)
	FindActiveByVetAndWindow(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error)
	Search(ctx context.Context, query *SearchQuery, limit int, offset int64) ([]*model.Appointment, error)
	CountBySearch(ctx context.Context, query *SearchQuery) (int64, error)
	FindUpcoming(ctx context.Context, vetID string, now time.Time, limit int, offset int64) ([]*model.Appointment, error)
	CountUpcoming(ctx context.Context, vetID string, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, vetID string) (map[string]int64, error)
	MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoAppointmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	appt.CreatedAt = now
	appt.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appt.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apptserrors.ErrInvalidID, id)
	}

	var appt model.Appointment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apptserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return &appt, nil
}

func (r *mongoAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	return count, nil
}

func (r *mongoAppointmentRepository) Update(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apptserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"start_time":          appt.StartTime,
			"end_time":            appt.EndTime,
			"status":              appt.Status,
			"reason":              appt.Reason,
			"symptoms":            appt.Symptoms,
			"meeting_link":        appt.MeetingLink,
			"meeting_id":          appt.MeetingID,
			"meeting_password":    appt.MeetingPassword,
			"notes":               appt.Notes,
			"prescription":        appt.Prescription,
			"follow_up_required":  appt.FollowUpRequired,
			"follow_up_date":      appt.FollowUpDate,
			"cancelled_by":        appt.CancelledBy,
			"cancellation_reason": appt.CancellationReason,
			"cancellation_note":   appt.CancellationNote,
			"cancelled_at":        appt.CancelledAt,
			"updated_at":          time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, apptserrors.ErrNotFound
	}

	return result, nil
}

// FindActiveByVetAndWindow returns pending or confirmed appointments for the
// veterinarian whose half-open windows intersect [startTime, endTime).
func (r *mongoAppointmentRepository) FindActiveByVetAndWindow(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"vet_id":     vetID,
		"status":     bson.M{"$in": []string{config.Pending, config.Confirmed}},
		"start_time": bson.M{"$lt": endTime},
		"end_time":   bson.M{"$gt": startTime},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) Search(ctx context.Context, query *SearchQuery, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, r.buildSearchFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) CountBySearch(ctx context.Context, query *SearchQuery) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, r.buildSearchFilter(query))
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments by search: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepository) buildSearchFilter(query *SearchQuery) bson.M {
	filter := bson.M{}

	if query.VetID != "" {
		filter["vet_id"] = query.VetID
	}
	if query.ClientID != "" {
		filter["client_id"] = query.ClientID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}

	if query.StartTime != nil || query.EndTime != nil {
		timeFilters := bson.M{}
		if query.StartTime != nil && query.EndTime != nil {
			timeFilters = bson.M{
				"start_time": bson.M{"$lt": *query.EndTime},
				"end_time":   bson.M{"$gt": *query.StartTime},
			}
		} else if query.StartTime != nil {
			timeFilters = bson.M{
				"end_time": bson.M{"$gt": *query.StartTime},
			}
		} else if query.EndTime != nil {
			timeFilters = bson.M{
				"start_time": bson.M{"$lt": *query.EndTime},
			}
		}

		filter["$and"] = []bson.M{timeFilters}
	}

	return filter
}

func (r *mongoAppointmentRepository) FindUpcoming(ctx context.Context, vetID string, now time.Time, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, r.buildUpcomingFilter(vetID, now), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) CountUpcoming(ctx context.Context, vetID string, now time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, r.buildUpcomingFilter(vetID, now))
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming appointments: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepository) buildUpcomingFilter(vetID string, now time.Time) bson.M {
	return bson.M{
		"vet_id":     vetID,
		"status":     bson.M{"$in": []string{config.Pending, config.Confirmed}},
		"start_time": bson.M{"$gt": now},
	}
}

func (r *mongoAppointmentRepository) CountByStatus(ctx context.Context, vetID string) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"vet_id": vetID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointment stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode appointment stats: %w", err)
	}

	stats := make(map[string]int64, len(results))
	for _, result := range results {
		stats[result.Status] = result.Count
	}

	return stats, nil
}

// MarkNoShows flips pending and confirmed appointments whose window started
// before the cutoff to no_show. Returns the number of updated documents.
func (r *mongoAppointmentRepository) MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"status":     bson.M{"$in": []string{config.Pending, config.Confirmed}},
		"start_time": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     config.NoShow,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark no-show appointments: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *mongoAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
