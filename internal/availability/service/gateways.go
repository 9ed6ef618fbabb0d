package service

import (
	"context"
	"net/http"
	"time"

	"vetconnect/pkg/client"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
)

// AppointmentGateway resolves a veterinarian's booked appointments from the
// appointments service.
type AppointmentGateway interface {
	SearchByVetAndRange(ctx context.Context, vetID string, from, to time.Time, limit int) ([]*model.Appointment, error)
}

type appointmentClientGateway struct {
	client *client.AppointmentClient
}

func NewAppointmentGateway(c *client.AppointmentClient) AppointmentGateway {
	return &appointmentClientGateway{client: c}
}

func (g *appointmentClientGateway) SearchByVetAndRange(ctx context.Context, vetID string, from, to time.Time, limit int) ([]*model.Appointment, error) {
	resp, err := g.client.Search(ctx, vetID, "", "", from.Format(time.RFC3339), to.Format(time.RFC3339), limit, 0)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Appointments service is unreachable", http.StatusServiceUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal("Appointments service returned an error", nil).
			WithDetails(map[string]any{"status": resp.StatusCode, "message": client.GetErrorMessage(resp)})
	}

	appts, _, err := g.client.DecodeAppointments(resp)
	if err != nil {
		return nil, apperrors.Internal("Failed to decode appointments response", err)
	}

	return appts, nil
}
