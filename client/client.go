// Package client provides a Go SDK for the topio registry HTTP API.
package client

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to a single topio registry instance. It is safe for
// concurrent use.
type Client struct {
	http *resty.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New constructs a Client for the registry at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterUser registers a user and returns it. Repeating a registration
// with the same name and namespace returns the existing user.
func (c *Client) RegisterUser(ctx context.Context, name, namespace string) (*User, error) {
	var out User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name, "user_namespace": namespace}).
		SetResult(&out).
		Post("/users/register")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// GetUser fetches a user by numeric id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/users/" + strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// RegisterAssetType registers an asset type. Repeating a registration with
// an equal description returns the existing type; a different description
// for the same id is rejected by the server.
func (c *Client) RegisterAssetType(ctx context.Context, id string, description *string) (*AssetType, error) {
	var out AssetType
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(AssetType{ID: id, Description: description}).
		SetResult(&out).
		Post("/asset_types/register")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// GetAssetType fetches an asset type by id.
func (c *Client) GetAssetType(ctx context.Context, id string) (*AssetType, error) {
	var out AssetType
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/asset_types/" + id)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// ListAssetTypes returns all asset types in registration order.
func (c *Client) ListAssetTypes(ctx context.Context) ([]AssetType, error) {
	out := []AssetType{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/asset_types/")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return out, nil
}

// RegisterAsset registers an asset and returns it with the assigned id and
// derived topio id.
func (c *Client) RegisterAsset(ctx context.Context, reg AssetRegistration) (*Asset, error) {
	var out Asset
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reg).
		SetResult(&out).
		Post("/assets/register")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// TopioID resolves the registry-wide topio id of the asset the owner
// registered under the given local id and type.
func (c *Client) TopioID(ctx context.Context, ownerID int64, assetType, localID string) (string, error) {
	var out string
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("owner_id", strconv.FormatInt(ownerID, 10)).
		SetQueryParam("asset_type", assetType).
		SetQueryParam("local_id", localID).
		SetResult(&out).
		Get("/assets/topio_id")
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", apiError(resp)
	}
	return out, nil
}

// LocalID resolves a topio id back to the local id the asset was
// registered with.
func (c *Client) LocalID(ctx context.Context, topioID string) (string, error) {
	var out string
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("topio_id", topioID).
		SetResult(&out).
		Get("/assets/custom_id")
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", apiError(resp)
	}
	return out, nil
}

// ListAssets returns registered assets, optionally filtered to one owner.
func (c *Client) ListAssets(ctx context.Context, ownerID *int64) ([]Asset, error) {
	out := []Asset{}
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if ownerID != nil {
		req.SetQueryParam("owner_id", strconv.FormatInt(*ownerID, 10))
	}
	resp, err := req.Get("/assets/")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return out, nil
}

// Healthy reports whether the registry's health endpoint answers 200.
func (c *Client) Healthy(ctx context.Context) bool {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	return err == nil && resp.StatusCode() == http.StatusOK
}
