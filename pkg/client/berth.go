package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"portcall/pkg/model"
)

// ErrBerthExists is returned by CreateBerth when the name is already taken.
var ErrBerthExists = errors.New("berth already exists")

// BerthClient talks to the berths service over HTTP.
type BerthClient struct {
	http *HttpClient
}

func NewBerthClient(baseURL string) *BerthClient {
	return &BerthClient{http: NewHttpClient(baseURL)}
}

// WithClientID sets the header the service rate limits by.
func (c *BerthClient) WithClientID(id string) *BerthClient {
	c.http.Headers["X-Client-ID"] = id
	return c
}

func (c *BerthClient) WaitForHealthy(ctx context.Context) error {
	return c.http.WaitForHealthy(ctx, 30*time.Second)
}

func (c *BerthClient) CreateBerth(ctx context.Context, berth *model.Berth) error {
	resp, err := c.http.POST(ctx, "/api/v1/berths", berth)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusConflict:
		return ErrBerthExists
	default:
		return fmt.Errorf("create berth %s: status %d: %s", berth.Name, resp.StatusCode, GetErrorMessage(resp))
	}
}

func (c *BerthClient) GetBerth(ctx context.Context, name string) (*model.Berth, error) {
	resp, err := c.http.GET(ctx, "/api/v1/berths/name/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get berth %s: status %d: %s", name, resp.StatusCode, GetErrorMessage(resp))
	}

	var body struct {
		Data *model.Berth `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("decode berth: %w", err)
	}
	return body.Data, nil
}

// Resolve returns the outcome for every response that carries one, including
// failures reported with a non-2xx status.
func (c *BerthClient) Resolve(ctx context.Context, req *model.VesselVisitRequest) (*model.ReservationOutcome, error) {
	resp, err := c.http.POST(ctx, "/api/v1/berths/resolve", req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge,
		http.StatusTooManyRequests, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("resolve %s: status %d: %s", req.VesselNumber, resp.StatusCode, GetErrorMessage(resp))
	}

	var outcome model.ReservationOutcome
	if err := resp.DecodeJSON(&outcome); err != nil {
		return nil, fmt.Errorf("decode outcome: status %d: %w", resp.StatusCode, err)
	}
	return &outcome, nil
}
