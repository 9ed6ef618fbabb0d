package service

import (
	"context"
	"errors"
	"sync"

	vetserrors "vetconnect/internal/vets/errors"
	"vetconnect/internal/vets/repository"
	"vetconnect/internal/vets/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
	"vetconnect/pkg/sanitizer"
)

type VetService interface {
	Create(ctx context.Context, vet *model.Vet) error
	GetByID(ctx context.Context, id string) (*model.Vet, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Vet, int64, error)
	Update(ctx context.Context, id string, updates *model.VetUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, int64, error)
}

type vetService struct {
	repo      repository.VetRepository
	validator *validator.VetValidator
	cfg       *config.Config
}

func NewVetService(repo repository.VetRepository, validator *validator.VetValidator, cfg *config.Config) VetService {
	return &vetService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *vetService) Create(ctx context.Context, vet *model.Vet) error {
	s.sanitize(vet)
	vet.Active = true

	if err := s.validate(vet); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, vet); err != nil {
		if errors.Is(err, vetserrors.ErrDuplicateLicense) {
			return apperrors.Conflict("A vet with this license number is already registered")
		}
		s.cfg.Log.Error("Failed to create vet", "error", err)
		return apperrors.Internal("Failed to create vet", err)
	}

	s.cfg.Log.Info("Vet created successfully", "id", vet.ID, "city", vet.City)
	return nil
}

func (s *vetService) GetByID(ctx context.Context, id string) (*model.Vet, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	vet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, vetserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Vet", id)
		}
		if errors.Is(err, vetserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid vet ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve vet", err)
	}

	return vet, nil
}

func (s *vetService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Vet, int64, error) {
	var count int64
	var vets []*model.Vet
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count vets", "error", errCount)
			errCount = apperrors.Internal("Failed to count vets", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		vets, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list vets", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve vets", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return vets, count, nil
}

func (s *vetService) Update(ctx context.Context, id string, updates *model.VetUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Vet ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, vetserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Vet", id)
		}
		if errors.Is(err, vetserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid vet ID format")
		}
		return apperrors.Internal("Failed to check vet existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Vet update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update vet", "id", id, "error", err)
		return apperrors.Internal("Failed to update vet", err)
	}

	s.cfg.Log.Info("Vet updated successfully", "id", id)
	return nil
}

func (s *vetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Vet ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, vetserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Vet", id)
		}
		if errors.Is(err, vetserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid vet ID format")
		}
		return apperrors.Internal("Failed to deactivate vet", err)
	}

	s.cfg.Log.Info("Vet deactivated successfully", "id", id)
	return nil
}

func (s *vetService) Search(ctx context.Context, city, specialization string, limit int, offset int64) ([]*model.Vet, int64, error) {
	city = sanitizer.NormalizeCity(city)
	specialization = sanitizer.NormalizeSpecialization(specialization)

	var count int64
	var vets []*model.Vet
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountBySearch(ctx, city, specialization)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count vets by search", "city", city, "error", errCount)
			errCount = apperrors.Internal("Failed to count vets", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		vets, errFind = s.repo.Search(ctx, city, specialization, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search vets", "city", city, "error", errFind)
			errFind = apperrors.Internal("Failed to search vets", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return vets, count, nil
}

func (s *vetService) sanitize(v *model.Vet) {
	v.FullName = sanitizer.NormalizeName(v.FullName)
	v.Email = sanitizer.NormalizeEmail(v.Email)
	v.Phone = sanitizer.NormalizePhone(v.Phone)
	v.City = sanitizer.NormalizeCity(v.City)
	v.Specializations = sanitizer.NormalizeSpecializations(v.Specializations)
}

func (s *vetService) mergeUpdates(existing *model.Vet, updates *model.VetUpdate) *model.Vet {
	merged := *existing

	if updates.FullName != "" {
		merged.FullName = updates.FullName
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Specializations != nil {
		merged.Specializations = updates.Specializations
	}
	if updates.LicenseNumber != "" {
		merged.LicenseNumber = updates.LicenseNumber
	}
	if updates.FeeCents != nil {
		merged.FeeCents = *updates.FeeCents
	}
	if updates.YearsExperience != nil {
		merged.YearsExperience = *updates.YearsExperience
	}
	if updates.Bio != nil {
		merged.Bio = *updates.Bio
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	return &merged
}

func (s *vetService) validate(vet *model.Vet) error {
	if err := s.validator.Validate(vet); err != nil {
		s.cfg.Log.Warn("Vet validation failed", "error", err)
		return apperrors.Validation("Vet validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
