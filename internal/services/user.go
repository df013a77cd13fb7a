package services

import (
	"context"
	"errors"
	"time"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/store"
)

// UserService orchestrates user registration and lookup.
type UserService struct {
	store   store.Store
	timeout time.Duration
}

func NewUserService(s store.Store, timeout time.Duration) *UserService {
	return &UserService{store: s, timeout: timeout}
}

// Register creates a user or returns the existing one when the same
// (name, namespace) pair is already registered. created reports whether a
// new row was written. A clash on only one of the two unique columns is a
// conflict, never an idempotent hit.
func (s *UserService) Register(ctx context.Context, name, namespace string) (*model.User, bool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if existing, err := s.store.Users().GetByNameAndNamespace(ctx, name, namespace); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	u, err := s.store.Users().Create(ctx, &model.User{Name: name, Namespace: namespace})
	if err == nil {
		return u, true, nil
	}
	if errors.Is(err, model.ErrConflict) {
		// A concurrent register may have written the identical pair first.
		if existing, lookupErr := s.store.Users().GetByNameAndNamespace(ctx, name, namespace); lookupErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return nil, false, err
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.store.Users().GetByID(ctx, id)
}
