package service

import (
	"context"
	"net/http"

	"vetconnect/pkg/client"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
)

// AppointmentGateway resolves appointments from the booking service.
type AppointmentGateway interface {
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
}

// VetGateway resolves veterinarians, for their consultation fee.
type VetGateway interface {
	GetByID(ctx context.Context, id string) (*model.Vet, error)
}

type appointmentClientGateway struct {
	client *client.AppointmentClient
}

func NewAppointmentGateway(c *client.AppointmentClient) AppointmentGateway {
	return &appointmentClientGateway{client: c}
}

func (g *appointmentClientGateway) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	resp, err := g.client.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Appointments service is unreachable", http.StatusServiceUnavailable)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		appt, err := g.client.DecodeAppointment(resp)
		if err != nil {
			return nil, apperrors.Internal("Failed to decode appointment response", err)
		}
		return appt, nil
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Appointment", id)
	default:
		return nil, apperrors.Internal("Appointments service returned an error", nil).
			WithDetails(map[string]any{"status": resp.StatusCode, "message": client.GetErrorMessage(resp)})
	}
}

type vetClientGateway struct {
	client *client.VetClient
}

func NewVetGateway(c *client.VetClient) VetGateway {
	return &vetClientGateway{client: c}
}

func (g *vetClientGateway) GetByID(ctx context.Context, id string) (*model.Vet, error) {
	resp, err := g.client.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Vets service is unreachable", http.StatusServiceUnavailable)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		vet, err := g.client.DecodeVet(resp)
		if err != nil {
			return nil, apperrors.Internal("Failed to decode vet response", err)
		}
		return vet, nil
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Vet", id)
	default:
		return nil, apperrors.Internal("Vets service returned an error", nil).
			WithDetails(map[string]any{"status": resp.StatusCode, "message": client.GetErrorMessage(resp)})
	}
}
