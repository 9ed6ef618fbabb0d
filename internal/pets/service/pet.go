package service

import (
	"context"
	"errors"
	"sync"

	petserrors "vetconnect/internal/pets/errors"
	"vetconnect/internal/pets/repository"
	"vetconnect/internal/pets/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
	"vetconnect/pkg/sanitizer"
)

type PetService interface {
	Create(ctx context.Context, pet *model.Pet) error
	GetByID(ctx context.Context, id string) (*model.Pet, error)
	GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Pet, int64, error)
	Update(ctx context.Context, id string, updates *model.PetUpdate) error
	Delete(ctx context.Context, id string) error
}

type petService struct {
	repo      repository.PetRepository
	validator *validator.PetValidator
	cfg       *config.Config
}

func NewPetService(repo repository.PetRepository, validator *validator.PetValidator, cfg *config.Config) PetService {
	return &petService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *petService) Create(ctx context.Context, pet *model.Pet) error {
	s.sanitize(pet)
	pet.Active = true

	if err := s.validate(pet); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, pet); err != nil {
		s.cfg.Log.Error("Failed to create pet", "error", err)
		return apperrors.Internal("Failed to create pet", err)
	}

	s.cfg.Log.Info("Pet created successfully", "id", pet.ID, "owner_id", pet.OwnerID, "species", pet.Species)
	return nil
}

func (s *petService) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pet ID cannot be empty")
	}

	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pet ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve pet", err)
	}

	return pet, nil
}

func (s *petService) GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Pet, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	var count int64
	var pets []*model.Pet
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByOwner(ctx, ownerID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count pets by owner", "owner_id", ownerID, "error", errCount)
			errCount = apperrors.Internal("Failed to count pets", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		pets, errFind = s.repo.FindByOwner(ctx, ownerID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list pets by owner", "owner_id", ownerID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve pets", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return pets, count, nil
}

func (s *petService) Update(ctx context.Context, id string, updates *model.PetUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Pet ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pet ID format")
		}
		return apperrors.Internal("Failed to check pet existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Pet update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update pet", "id", id, "error", err)
		return apperrors.Internal("Failed to update pet", err)
	}

	s.cfg.Log.Info("Pet updated successfully", "id", id)
	return nil
}

func (s *petService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pet ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, petserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, petserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pet ID format")
		}
		return apperrors.Internal("Failed to deactivate pet", err)
	}

	s.cfg.Log.Info("Pet deactivated successfully", "id", id)
	return nil
}

func (s *petService) sanitize(p *model.Pet) {
	p.Name = sanitizer.NormalizeName(p.Name)
	p.Breed = sanitizer.TrimAndNormalize(p.Breed)
	p.Color = sanitizer.TrimAndNormalize(p.Color)
	p.Allergies = sanitizer.TrimAndNormalize(p.Allergies)
	p.MedicalNotes = sanitizer.TrimAndNormalize(p.MedicalNotes)
}

func (s *petService) mergeUpdates(existing *model.Pet, updates *model.PetUpdate) *model.Pet {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Breed != "" {
		merged.Breed = updates.Breed
	}
	if updates.WeightKG != nil {
		merged.WeightKG = *updates.WeightKG
	}
	if updates.Color != "" {
		merged.Color = updates.Color
	}
	if updates.MicrochipNumber != "" {
		merged.MicrochipNumber = updates.MicrochipNumber
	}
	if updates.Allergies != nil {
		merged.Allergies = *updates.Allergies
	}
	if updates.MedicalNotes != nil {
		merged.MedicalNotes = *updates.MedicalNotes
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	return &merged
}

func (s *petService) validate(pet *model.Pet) error {
	if err := s.validator.Validate(pet); err != nil {
		s.cfg.Log.Warn("Pet validation failed", "error", err)
		return apperrors.Validation("Pet validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
