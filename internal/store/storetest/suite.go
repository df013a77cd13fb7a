package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
	"github.com/topio-market/topio-registry/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation,
// including the error classification contract. Implementations should
// provide a clean, isolated store from makeStore; identifiers are salted
// so runs against a shared database stay independent.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	salt := uuid.New().String()[:8]
	name := "User " + salt
	namespace := "ns-" + salt
	typeID := "type-" + salt

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	// Users
	u, err := s.Users().Create(ctx, &model.User{Name: name, Namespace: namespace})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID <= 0 {
		t.Fatalf("CreateUser: id not assigned: %+v", u)
	}
	if got, err := s.Users().GetByID(ctx, u.ID); err != nil || got.Name != name || got.Namespace != namespace {
		t.Fatalf("GetUserByID: got=%+v err=%v", got, err)
	}
	if got, err := s.Users().GetByNameAndNamespace(ctx, name, namespace); err != nil || got.ID != u.ID {
		t.Fatalf("GetByNameAndNamespace: got=%+v err=%v", got, err)
	}
	if _, err := s.Users().GetByID(ctx, u.ID+1_000_000); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUserByID missing: want ErrNotFound, got %v", err)
	}
	if _, err := s.Users().GetByNameAndNamespace(ctx, name, "other-"+salt); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByNameAndNamespace missing: want ErrNotFound, got %v", err)
	}

	// Uniqueness classification: same name, same namespace, both rejected.
	if _, err := s.Users().Create(ctx, &model.User{Name: name, Namespace: "ns2-" + salt}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate name: want ErrConflict, got %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{Name: "Other " + salt, Namespace: namespace}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate namespace: want ErrConflict, got %v", err)
	}

	// Asset types
	desc := "assets registered under " + salt
	at, err := s.AssetTypes().Create(ctx, &model.AssetType{ID: typeID, Description: &desc})
	if err != nil {
		t.Fatalf("CreateAssetType: %v", err)
	}
	if at.ID != typeID {
		t.Fatalf("CreateAssetType: unexpected id %q", at.ID)
	}
	if got, err := s.AssetTypes().Get(ctx, typeID); err != nil || got.Description == nil || *got.Description != desc {
		t.Fatalf("GetAssetType: got=%+v err=%v", got, err)
	}
	if _, err := s.AssetTypes().Get(ctx, "missing-"+salt); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetAssetType missing: want ErrNotFound, got %v", err)
	}
	if _, err := s.AssetTypes().Create(ctx, &model.AssetType{ID: typeID, Description: nil}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate asset type: want ErrConflict, got %v", err)
	}

	// Creation-order listing
	secondType := typeID + "-b"
	if _, err := s.AssetTypes().Create(ctx, &model.AssetType{ID: secondType}); err != nil {
		t.Fatalf("CreateAssetType second: %v", err)
	}
	types, err := s.AssetTypes().List(ctx)
	if err != nil {
		t.Fatalf("ListAssetTypes: %v", err)
	}
	idxFirst, idxSecond := -1, -1
	for i, tt := range types {
		switch tt.ID {
		case typeID:
			idxFirst = i
		case secondType:
			idxSecond = i
		}
	}
	if idxFirst == -1 || idxSecond == -1 || idxFirst > idxSecond {
		t.Fatalf("ListAssetTypes order: first=%d second=%d", idxFirst, idxSecond)
	}

	// Assets
	localID := fmt.Sprintf("hdfs://data-%s/set.ttl", salt)
	a1, err := s.Assets().Create(ctx, &model.Asset{LocalID: &localID, OwnerID: u.ID, AssetType: typeID})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if a1.ID <= 0 {
		t.Fatalf("CreateAsset: id not assigned: %+v", a1)
	}
	wantTopio := pid.Format(namespace, a1.ID, typeID)
	if a1.TopioID != wantTopio {
		t.Fatalf("CreateAsset topio id: got %q want %q", a1.TopioID, wantTopio)
	}

	a2, err := s.Assets().Create(ctx, &model.Asset{OwnerID: u.ID, AssetType: typeID})
	if err != nil {
		t.Fatalf("CreateAsset without local id: %v", err)
	}
	if a2.ID <= a1.ID {
		t.Fatalf("asset ids must increase: %d then %d", a1.ID, a2.ID)
	}
	// A second asset without a local id is fine; only non-null triples are
	// unique.
	if _, err := s.Assets().Create(ctx, &model.Asset{OwnerID: u.ID, AssetType: typeID}); err != nil {
		t.Fatalf("CreateAsset second without local id: %v", err)
	}
	if _, err := s.Assets().Create(ctx, &model.Asset{LocalID: &localID, OwnerID: u.ID, AssetType: typeID}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate (owner,type,local_id): want ErrConflict, got %v", err)
	}

	// Referential classification
	if _, err := s.Assets().Create(ctx, &model.Asset{OwnerID: u.ID + 1_000_000, AssetType: typeID}); !errors.Is(err, model.ErrInvalidReference) {
		t.Fatalf("dangling owner: want ErrInvalidReference, got %v", err)
	}
	if _, err := s.Assets().Create(ctx, &model.Asset{OwnerID: u.ID, AssetType: "missing-" + salt}); !errors.Is(err, model.ErrInvalidReference) {
		t.Fatalf("dangling asset type: want ErrInvalidReference, got %v", err)
	}

	// Resolution paths
	found, err := s.Assets().FindByLocalID(ctx, u.ID, typeID, localID)
	if err != nil || len(found) != 1 || found[0].ID != a1.ID || found[0].TopioID != wantTopio {
		t.Fatalf("FindByLocalID: n=%d err=%v", len(found), err)
	}
	if none, err := s.Assets().FindByLocalID(ctx, u.ID, typeID, "never-registered"); err != nil || len(none) != 0 {
		t.Fatalf("FindByLocalID miss: n=%d err=%v", len(none), err)
	}

	gotLocal, err := s.Assets().LocalIDByPID(ctx, pid.ID{OwnerNamespace: namespace, AssetSeq: a1.ID, AssetType: typeID})
	if err != nil || gotLocal != localID {
		t.Fatalf("LocalIDByPID: got=%q err=%v", gotLocal, err)
	}
	// a2 exists but has no local id, so it does not resolve backward.
	if _, err := s.Assets().LocalIDByPID(ctx, pid.ID{OwnerNamespace: namespace, AssetSeq: a2.ID, AssetType: typeID}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("LocalIDByPID without local id: want ErrNotFound, got %v", err)
	}
	if _, err := s.Assets().LocalIDByPID(ctx, pid.ID{OwnerNamespace: "wrong-" + salt, AssetSeq: a1.ID, AssetType: typeID}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("LocalIDByPID wrong namespace: want ErrNotFound, got %v", err)
	}

	// Listings
	owned, err := s.Assets().ListByOwner(ctx, u.ID)
	if err != nil || len(owned) != 3 {
		t.Fatalf("ListByOwner: n=%d err=%v", len(owned), err)
	}
	for i := 1; i < len(owned); i++ {
		if owned[i].ID <= owned[i-1].ID {
			t.Fatalf("ListByOwner order: %d before %d", owned[i-1].ID, owned[i].ID)
		}
	}
	for _, a := range owned {
		if a.TopioID != pid.Format(namespace, a.ID, a.AssetType) {
			t.Fatalf("ListByOwner topio id mismatch: %+v", a)
		}
	}
	if empty, err := s.Assets().ListByOwner(ctx, u.ID+1_000_000); err != nil || len(empty) != 0 {
		t.Fatalf("ListByOwner empty: n=%d err=%v", len(empty), err)
	}
	all, err := s.Assets().List(ctx)
	if err != nil || len(all) < 3 {
		t.Fatalf("ListAssets: n=%d err=%v", len(all), err)
	}
}
