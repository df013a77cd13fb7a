package store

import (
	"context"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
)

// Store exposes persistence operations required by the registry services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite)
// and translate driver-level failures into the model sentinels: ErrNotFound
// for empty lookups, ErrConflict for unique-constraint violations and
// ErrInvalidReference for foreign-key violations. The insert outcome is
// authoritative for uniqueness; callers never rely on pre-checks alone.
type Store interface {
	Users() Users
	AssetTypes() AssetTypes
	Assets() Assets

	// Ping reports storage connectivity; used by health probes.
	Ping(ctx context.Context) error
	Close() error
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByNameAndNamespace(ctx context.Context, name, namespace string) (*model.User, error)
}

type AssetTypes interface {
	Create(ctx context.Context, at *model.AssetType) (*model.AssetType, error)
	Get(ctx context.Context, id string) (*model.AssetType, error)
	// List returns all asset types in creation order.
	List(ctx context.Context) ([]*model.AssetType, error)
}

type Assets interface {
	// Create inserts the asset and returns it with the assigned id and the
	// derived topio id filled in.
	Create(ctx context.Context, a *model.Asset) (*model.Asset, error)
	// FindByLocalID returns every asset matching the (owner, type, local id)
	// triple, topio ids included. Resolution semantics (exactly-one) are the
	// caller's concern.
	FindByLocalID(ctx context.Context, ownerID int64, assetType, localID string) ([]*model.Asset, error)
	// LocalIDByPID resolves a parsed topio id to the stored local id.
	// Assets without a local id do not resolve.
	LocalIDByPID(ctx context.Context, id pid.ID) (string, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Asset, error)
	List(ctx context.Context) ([]*model.Asset, error)
}
