package services

import (
	"context"
	"errors"
	"time"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/store"
)

// AssetTypeService orchestrates asset type registration and lookup.
type AssetTypeService struct {
	store   store.Store
	timeout time.Duration
}

func NewAssetTypeService(s store.Store, timeout time.Duration) *AssetTypeService {
	return &AssetTypeService{store: s, timeout: timeout}
}

// Register creates an asset type or returns the existing one when id and
// description both match. The same id with a different description is a
// conflict; re-registration never rewrites a description.
func (s *AssetTypeService) Register(ctx context.Context, id string, description *string) (*model.AssetType, bool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if existing, err := s.store.AssetTypes().Get(ctx, id); err == nil {
		if sameDescription(existing.Description, description) {
			return existing, false, nil
		}
		return nil, false, model.ErrConflict
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	at, err := s.store.AssetTypes().Create(ctx, &model.AssetType{ID: id, Description: description})
	if err == nil {
		return at, true, nil
	}
	if errors.Is(err, model.ErrConflict) {
		if existing, lookupErr := s.store.AssetTypes().Get(ctx, id); lookupErr == nil && sameDescription(existing.Description, description) {
			return existing, false, nil
		}
		return nil, false, err
	}
	return nil, false, err
}

func (s *AssetTypeService) Get(ctx context.Context, id string) (*model.AssetType, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.store.AssetTypes().Get(ctx, id)
}

// List returns every asset type in creation order.
func (s *AssetTypeService) List(ctx context.Context) ([]*model.AssetType, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.store.AssetTypes().List(ctx)
}

func sameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
