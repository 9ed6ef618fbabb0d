package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"vetconnect/pkg/model"
)

type VetClient struct {
	httpClient *HttpClient
}

func NewVetClient(baseURL string) *VetClient {
	return &VetClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *VetClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/vets", body)
}

func (c *VetClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/vets?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *VetClient) Search(ctx context.Context, city, specialization string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	if specialization != "" {
		q.Set("specialization", specialization)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/vets/search?" + q.Encode()
	return c.httpClient.GET(ctx, path)
}

func (c *VetClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/vets/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *VetClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/vets/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *VetClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/vets/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *VetClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

func (c *VetClient) DecodeVet(resp *Response) (*model.Vet, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode vet wrapper: %w", err)
	}

	var vet model.Vet
	if err := json.Unmarshal(wrapper.Data, &vet); err != nil {
		return nil, fmt.Errorf("could not decode vet json: %w", err)
	}

	return &vet, nil
}

func (c *VetClient) DecodeVets(resp *Response) ([]*model.Vet, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated vets: %w", err)
	}

	var vets []*model.Vet
	if err := json.Unmarshal(wrapper.Data, &vets); err != nil {
		return nil, nil, fmt.Errorf("could not decode vet list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return vets, metadata, nil
}
