package service

import (
	"context"
	"testing"
	"time"

	vetserrors "vetconnect/internal/vets/errors"
	"vetconnect/internal/vets/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const testVetID = "64f1a2b3c4d5e6f7a8b9c0d2"

type mockVetRepository struct {
	createFunc        func(ctx context.Context, vet *model.Vet) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Vet, error)
	findAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Vet, error)
	updateFunc        func(ctx context.Context, id string, vet *model.Vet) (*mongo.UpdateResult, error)
	searchFunc        func(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, error)
	countBySearchFunc func(ctx context.Context, city, specialization string) (int64, error)
	countFunc         func(ctx context.Context) (int64, error)
}

func (m *mockVetRepository) Create(ctx context.Context, vet *model.Vet) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, vet)
	}
	return nil
}

func (m *mockVetRepository) FindByID(ctx context.Context, id string) (*model.Vet, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, vetserrors.ErrNotFound
}

func (m *mockVetRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vet, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Vet{}, nil
}

func (m *mockVetRepository) Update(ctx context.Context, id string, vet *model.Vet) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, vet)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockVetRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockVetRepository) Search(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, city, specialization, limit, offset)
	}
	return []*model.Vet{}, nil
}

func (m *mockVetRepository) CountBySearch(ctx context.Context, city, specialization string) (int64, error) {
	if m.countBySearchFunc != nil {
		return m.countBySearchFunc(ctx, city, specialization)
	}
	return 0, nil
}

func (m *mockVetRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func newTestService(repo *mockVetRepository) VetService {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "vets-test",
	})
	return &vetService{
		repo:      repo,
		validator: validator.NewVetValidator(log),
		cfg:       &config.Config{Log: log},
	}
}

func validVet() *model.Vet {
	return &model.Vet{
		FullName:        "  Dana   Levi ",
		Email:           "Dana.Levi@Example.COM",
		Phone:           "+1 212 555 0143",
		City:            "new york",
		Specializations: []string{"Surgery", "surgery", "Dermatology"},
		LicenseNumber:   "VET-12345",
		FeeCents:        8000,
	}
}

func TestCreate_SanitizesBeforePersisting(t *testing.T) {
	var created *model.Vet
	repo := &mockVetRepository{
		createFunc: func(_ context.Context, vet *model.Vet) error {
			created = vet
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), validVet()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.FullName != "Dana Levi" {
		t.Errorf("expected collapsed name, got %q", created.FullName)
	}
	if created.Email != "dana.levi@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}
	if created.Phone != "+12125550143" {
		t.Errorf("expected E.164 phone, got %q", created.Phone)
	}
	if len(created.Specializations) != 2 {
		t.Errorf("expected deduplicated specializations, got %v", created.Specializations)
	}
	if !created.Active {
		t.Error("expected new vet to be active")
	}
}

func TestCreate_DuplicateLicense(t *testing.T) {
	repo := &mockVetRepository{
		createFunc: func(_ context.Context, _ *model.Vet) error {
			return vetserrors.ErrDuplicateLicense
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validVet())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate license, got %v", err)
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc := newTestService(&mockVetRepository{})

	vet := validVet()
	vet.Email = "not-an-email"
	err := svc.Create(context.Background(), vet)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetAll_ParallelCountAndFind(t *testing.T) {
	repo := &mockVetRepository{
		countFunc: func(_ context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(_ context.Context, _ int, _ int64) ([]*model.Vet, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Vet{{ID: testVetID}}, nil
		},
	}
	svc := newTestService(repo)

	for i := 0; i < 20; i++ {
		vets, count, err := svc.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(vets) != 1 {
			t.Errorf("iteration %d: expected 1 vet, got %d", i, len(vets))
		}
	}
}

func TestSearch_NormalizesFilters(t *testing.T) {
	var capturedCity, capturedSpec string
	repo := &mockVetRepository{
		searchFunc: func(_ context.Context, city, specialization string, _ int, _ int64) ([]*model.Vet, error) {
			capturedCity = city
			capturedSpec = specialization
			return []*model.Vet{}, nil
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Search(context.Background(), "  New   York ", "  SURGERY ", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedCity != "newyork" {
		t.Errorf("expected normalized city, got %q", capturedCity)
	}
	if capturedSpec != "surgery" {
		t.Errorf("expected normalized specialization, got %q", capturedSpec)
	}
}

func TestUpdate_DeactivateVet(t *testing.T) {
	existing := validVet()
	existing.ID = testVetID
	existing.FullName = "Dana Levi"
	existing.Email = "dana.levi@example.com"
	existing.Phone = "+12125550143"
	existing.City = "new york"
	existing.Specializations = []string{"surgery"}
	existing.Active = true

	var updated *model.Vet
	repo := &mockVetRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Vet, error) {
			return existing, nil
		},
		updateFunc: func(_ context.Context, _ string, vet *model.Vet) (*mongo.UpdateResult, error) {
			updated = vet
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	inactive := false
	err := svc.Update(context.Background(), testVetID, &model.VetUpdate{Active: &inactive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Active {
		t.Error("expected vet to be deactivated")
	}
	if updated.FullName != "Dana Levi" {
		t.Errorf("expected untouched name, got %q", updated.FullName)
	}
}
