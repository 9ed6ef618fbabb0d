package service

import (
	"context"
	"net/http"

	"vetconnect/pkg/client"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
)

// ScheduleGateway resolves a veterinarian's published schedule from the
// availability service.
type ScheduleGateway interface {
	GetByVet(ctx context.Context, vetID string) (*model.Schedule, error)
}

// PetGateway resolves pets from the pet registry service.
type PetGateway interface {
	GetByID(ctx context.Context, petID string) (*model.Pet, error)
}

type scheduleClientGateway struct {
	client *client.ScheduleClient
}

func NewScheduleGateway(c *client.ScheduleClient) ScheduleGateway {
	return &scheduleClientGateway{client: c}
}

func (g *scheduleClientGateway) GetByVet(ctx context.Context, vetID string) (*model.Schedule, error) {
	resp, err := g.client.GetByVet(ctx, vetID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Availability service is unreachable", http.StatusServiceUnavailable)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		sc, err := g.client.DecodeSchedule(resp)
		if err != nil {
			return nil, apperrors.Internal("Failed to decode schedule response", err)
		}
		return sc, nil
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Schedule for veterinarian", vetID)
	default:
		return nil, apperrors.Internal("Availability service returned an error", nil).
			WithDetails(map[string]any{"status": resp.StatusCode, "message": client.GetErrorMessage(resp)})
	}
}

type petClientGateway struct {
	client *client.PetClient
}

func NewPetGateway(c *client.PetClient) PetGateway {
	return &petClientGateway{client: c}
}

func (g *petClientGateway) GetByID(ctx context.Context, petID string) (*model.Pet, error) {
	resp, err := g.client.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Pet service is unreachable", http.StatusServiceUnavailable)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		pet, err := g.client.DecodePet(resp)
		if err != nil {
			return nil, apperrors.Internal("Failed to decode pet response", err)
		}
		return pet, nil
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Pet", petID)
	default:
		return nil, apperrors.Internal("Pet service returned an error", nil).
			WithDetails(map[string]any{"status": resp.StatusCode, "message": client.GetErrorMessage(resp)})
	}
}
