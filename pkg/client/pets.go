package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"vetconnect/pkg/model"
)

type PetClient struct {
	httpClient *HttpClient
}

func NewPetClient(baseURL string) *PetClient {
	return &PetClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *PetClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/pets", body)
}

func (c *PetClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/pets/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *PetClient) GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/pets/owner/%s?limit=%d&offset=%d", url.PathEscape(ownerID), limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *PetClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/pets/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *PetClient) Delete(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/pets/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(ctx, path)
}

func (c *PetClient) DecodePet(resp *Response) (*model.Pet, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode pet wrapper: %w", err)
	}

	var pet model.Pet
	if err := json.Unmarshal(wrapper.Data, &pet); err != nil {
		return nil, fmt.Errorf("could not decode pet json: %w", err)
	}

	return &pet, nil
}

func (c *PetClient) DecodePets(resp *Response) ([]*model.Pet, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated pets: %w", err)
	}

	var pets []*model.Pet
	if err := json.Unmarshal(wrapper.Data, &pets); err != nil {
		return nil, nil, fmt.Errorf("could not decode pet list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return pets, metadata, nil
}
