package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
	"github.com/topio-market/topio-registry/internal/store"
)

// AssetService orchestrates asset registration and identifier resolution.
type AssetService struct {
	store   store.Store
	timeout time.Duration
}

func NewAssetService(s store.Store, timeout time.Duration) *AssetService {
	return &AssetService{store: s, timeout: timeout}
}

// Register records an asset and returns it with the assigned id and topio
// id. The owner and asset type must already be registered; dangling
// references are rejected before the insert so callers get a stable error
// regardless of driver.
func (s *AssetService) Register(ctx context.Context, a *model.Asset) (*model.Asset, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.store.Users().GetByID(ctx, a.OwnerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner %d is not registered", model.ErrInvalidReference, a.OwnerID)
		}
		return nil, err
	}
	if _, err := s.store.AssetTypes().Get(ctx, a.AssetType); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: asset type %q is not registered", model.ErrInvalidReference, a.AssetType)
		}
		return nil, err
	}
	return s.store.Assets().Create(ctx, a)
}

// ResolveTopioID returns the topio id of the asset registered under the
// given owner, asset type and local id. Exactly one asset must match.
func (s *AssetService) ResolveTopioID(ctx context.Context, ownerID int64, assetType, localID string) (string, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if localID == "" {
		return "", fmt.Errorf("%w: local_id is required", model.ErrValidation)
	}
	matches, err := s.store.Assets().FindByLocalID(ctx, ownerID, assetType, localID)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("%w: no unique asset for local id %q", model.ErrNotFound, localID)
	}
	return matches[0].TopioID, nil
}

// ResolveLocalID returns the local id recorded for a topio id. Assets
// registered without a local id do not resolve.
func (s *AssetService) ResolveLocalID(ctx context.Context, topioID string) (string, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	id, err := pid.Parse(topioID)
	if err != nil {
		return "", err
	}
	return s.store.Assets().LocalIDByPID(ctx, id)
}

// List returns assets, optionally restricted to one owner.
func (s *AssetService) List(ctx context.Context, ownerID *int64) ([]*model.Asset, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if ownerID != nil {
		return s.store.Assets().ListByOwner(ctx, *ownerID)
	}
	return s.store.Assets().List(ctx)
}
