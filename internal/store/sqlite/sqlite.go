package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
	"github.com/topio-market/topio-registry/internal/store"
)

// NewWithDB constructs a SQLite-backed registry store.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users           { return &users{db: s.db} }
func (s *sqliteStore) AssetTypes() store.AssetTypes { return &assetTypes{db: s.db} }
func (s *sqliteStore) Assets() store.Assets         { return &assets{db: s.db} }

func (s *sqliteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *sqliteStore) Close() error                   { return s.db.Close() }

// classifyErr maps driver failures onto the model sentinels. The SQLite
// driver reports constraint violations only through the message text, so
// classification matches on the extended error strings.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", model.ErrInvalidReference, err)
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO topio_user (name, user_namespace)
        VALUES (?,?)
        RETURNING id
    `, m.Name, m.Namespace)
	if err := row.Scan(&out.ID); err != nil {
		return nil, classifyErr(err)
	}
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	out.ID = id
	row := u.db.QueryRowContext(ctx, `
        SELECT name, user_namespace FROM topio_user WHERE id=?
    `, id)
	if err := row.Scan(&out.Name, &out.Namespace); err != nil {
		return nil, classifyErr(err)
	}
	return &out, nil
}

func (u *users) GetByNameAndNamespace(ctx context.Context, name, namespace string) (*model.User, error) {
	var out model.User
	out.Name = name
	out.Namespace = namespace
	row := u.db.QueryRowContext(ctx, `
        SELECT id FROM topio_user WHERE name=? AND user_namespace=?
    `, name, namespace)
	if err := row.Scan(&out.ID); err != nil {
		return nil, classifyErr(err)
	}
	return &out, nil
}

// --- Asset types ---

type assetTypes struct{ db *sql.DB }

func (a *assetTypes) Create(ctx context.Context, m *model.AssetType) (*model.AssetType, error) {
	if _, err := a.db.ExecContext(ctx, `
        INSERT INTO topio_asset_type (id, description)
        VALUES (?,?)
    `, m.ID, m.Description); err != nil {
		return nil, classifyErr(err)
	}
	out := *m
	return &out, nil
}

func (a *assetTypes) Get(ctx context.Context, id string) (*model.AssetType, error) {
	var out model.AssetType
	out.ID = id
	row := a.db.QueryRowContext(ctx, `
        SELECT description FROM topio_asset_type WHERE id=?
    `, id)
	if err := row.Scan(&out.Description); err != nil {
		return nil, classifyErr(err)
	}
	return &out, nil
}

func (a *assetTypes) List(ctx context.Context) ([]*model.AssetType, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT id, description FROM topio_asset_type ORDER BY rowid
    `)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer func() { _ = rows.Close() }()
	out := []*model.AssetType{}
	for rows.Next() {
		var at model.AssetType
		if err := rows.Scan(&at.ID, &at.Description); err != nil {
			return nil, err
		}
		out = append(out, &at)
	}
	return out, rows.Err()
}

// --- Assets ---

type assets struct{ db *sql.DB }

func (a *assets) Create(ctx context.Context, m *model.Asset) (*model.Asset, error) {
	tx, err := a.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, classifyErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	out := *m
	row := tx.QueryRowContext(ctx, `
        INSERT INTO topio_asset (local_id, owner_id, asset_type, description)
        VALUES (?,?,?,?)
        RETURNING id
    `, m.LocalID, m.OwnerID, m.AssetType, m.Description)
	if err := row.Scan(&out.ID); err != nil {
		return nil, classifyErr(err)
	}

	var ns string
	if err := tx.QueryRowContext(ctx, `
        SELECT user_namespace FROM topio_user WHERE id=?
    `, m.OwnerID).Scan(&ns); err != nil {
		return nil, classifyErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyErr(err)
	}
	out.TopioID = pid.Format(ns, out.ID, out.AssetType)
	return &out, nil
}

func (a *assets) FindByLocalID(ctx context.Context, ownerID int64, assetType, localID string) ([]*model.Asset, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT a.id, a.local_id, a.owner_id, a.asset_type, a.description, u.user_namespace
        FROM topio_asset a
        JOIN topio_user u ON u.id = a.owner_id
        WHERE a.owner_id=? AND a.asset_type=? AND a.local_id=?
        ORDER BY a.id
    `, ownerID, assetType, localID)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer func() { _ = rows.Close() }()
	return scanAssets(rows)
}

func (a *assets) LocalIDByPID(ctx context.Context, id pid.ID) (string, error) {
	var localID string
	row := a.db.QueryRowContext(ctx, `
        SELECT a.local_id
        FROM topio_asset a
        JOIN topio_user u ON u.id = a.owner_id
        WHERE a.id=? AND a.asset_type=? AND u.user_namespace=? AND a.local_id IS NOT NULL
    `, id.AssetSeq, id.AssetType, id.OwnerNamespace)
	if err := row.Scan(&localID); err != nil {
		return "", classifyErr(err)
	}
	return localID, nil
}

func (a *assets) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Asset, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT a.id, a.local_id, a.owner_id, a.asset_type, a.description, u.user_namespace
        FROM topio_asset a
        JOIN topio_user u ON u.id = a.owner_id
        WHERE a.owner_id=?
        ORDER BY a.id
    `, ownerID)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer func() { _ = rows.Close() }()
	return scanAssets(rows)
}

func (a *assets) List(ctx context.Context) ([]*model.Asset, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT a.id, a.local_id, a.owner_id, a.asset_type, a.description, u.user_namespace
        FROM topio_asset a
        JOIN topio_user u ON u.id = a.owner_id
        ORDER BY a.id
    `)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer func() { _ = rows.Close() }()
	return scanAssets(rows)
}

func scanAssets(rows *sql.Rows) ([]*model.Asset, error) {
	out := []*model.Asset{}
	for rows.Next() {
		var a model.Asset
		var ns string
		if err := rows.Scan(&a.ID, &a.LocalID, &a.OwnerID, &a.AssetType, &a.Description, &ns); err != nil {
			return nil, err
		}
		a.TopioID = pid.Format(ns, a.ID, a.AssetType)
		out = append(out, &a)
	}
	return out, rows.Err()
}
