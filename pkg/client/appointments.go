package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"vetconnect/pkg/model"
)

type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(baseURL string) *AppointmentClient {
	return &AppointmentClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AppointmentClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/appointments", body)
}

func (c *AppointmentClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *AppointmentClient) Search(ctx context.Context, vetID, clientID, status, startTime, endTime string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if vetID != "" {
		q.Set("vet_id", vetID)
	}
	if clientID != "" {
		q.Set("client_id", clientID)
	}
	if status != "" {
		q.Set("status", status)
	}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/appointments/search?" + q.Encode()
	return c.httpClient.GET(ctx, path)
}

func (c *AppointmentClient) Confirm(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id) + "/confirm"
	return c.httpClient.POST(ctx, path, nil)
}

func (c *AppointmentClient) Cancel(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id) + "/cancel"
	return c.httpClient.POST(ctx, path, body)
}

func (c *AppointmentClient) Reschedule(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id) + "/reschedule"
	return c.httpClient.POST(ctx, path, body)
}

func (c *AppointmentClient) DecodeAppointment(resp *Response) (*model.Appointment, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode appointment wrapper: %w", err)
	}

	var appt model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appt); err != nil {
		return nil, fmt.Errorf("could not decode appointment json: %w", err)
	}

	return &appt, nil
}

func (c *AppointmentClient) DecodeAppointments(resp *Response) ([]*model.Appointment, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated appointments: %w", err)
	}

	var appts []*model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appts); err != nil {
		return nil, nil, fmt.Errorf("could not decode appointment list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return appts, metadata, nil
}
