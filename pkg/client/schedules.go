package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"vetconnect/pkg/model"
)

// Metadata carries the pagination envelope returned by list endpoints.
type Metadata struct {
	TotalCount int64
	Limit      int
	Offset     int64
}

type ScheduleClient struct {
	httpClient *HttpClient
}

func NewScheduleClient(baseURL string) *ScheduleClient {
	return &ScheduleClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ScheduleClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/schedules", body)
}

func (c *ScheduleClient) GetByVet(ctx context.Context, vetID string) (*Response, error) {
	path := "/api/v1/schedules/vet/" + url.PathEscape(vetID)
	return c.httpClient.GET(ctx, path)
}

func (c *ScheduleClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/schedules/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *ScheduleClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/schedules/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *ScheduleClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/schedules/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *ScheduleClient) FreeSlots(ctx context.Context, vetID, day string) (*Response, error) {
	q := url.Values{}
	q.Set("day", day)
	path := "/api/v1/schedules/vet/" + url.PathEscape(vetID) + "/slots?" + q.Encode()
	return c.httpClient.GET(ctx, path)
}

func (c *ScheduleClient) DecodeSchedule(resp *Response) (*model.Schedule, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode schedule wrapper: %w", err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(wrapper.Data, &schedule); err != nil {
		return nil, fmt.Errorf("could not decode schedule json: %w", err)
	}

	return &schedule, nil
}

func (c *ScheduleClient) DecodeSlots(resp *Response) ([]*model.Slot, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode slots wrapper: %w", err)
	}

	var slots []*model.Slot
	if err := json.Unmarshal(wrapper.Data, &slots); err != nil {
		return nil, fmt.Errorf("could not decode slot list: %w", err)
	}

	return slots, nil
}
