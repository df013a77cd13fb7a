package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
	"github.com/topio-market/topio-registry/internal/store"
)

// SQLSTATE classes translated into model sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres-backed registry store.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users           { return &users{db: s.db} }
func (s *pgStore) AssetTypes() store.AssetTypes { return &assetTypes{db: s.db} }
func (s *pgStore) Assets() store.Assets         { return &assets{db: s.db} }

func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *pgStore) Close() error                   { return s.db.Close() }

// classifyErr maps driver failures onto the model sentinels. The SQLSTATE
// is authoritative; the string fallback covers errors that arrive without
// a *pgconn.PgError (e.g. wrapped by a proxy).
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", model.ErrInvalidReference, pgErr.ConstraintName)
		}
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key"):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	case strings.Contains(msg, "violates foreign key"):
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
        VALUES ($1,$2)
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
        SELECT name, user_namespace FROM topio_user WHERE id=$1
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
        SELECT id FROM topio_user WHERE name=$1 AND user_namespace=$2
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
        VALUES ($1,$2)
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
        SELECT description FROM topio_asset_type WHERE id=$1
    `, id)
	if err := row.Scan(&out.Description); err != nil {
		return nil, classifyErr(err)
	}
	return &out, nil
}

func (a *assetTypes) List(ctx context.Context) ([]*model.AssetType, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT id, description FROM topio_asset_type ORDER BY seq
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
        VALUES ($1,$2,$3,$4)
        RETURNING id
    `, m.LocalID, m.OwnerID, m.AssetType, m.Description)
	if err := row.Scan(&out.ID); err != nil {
		return nil, classifyErr(err)
	}

	var ns string
	if err := tx.QueryRowContext(ctx, `
        SELECT user_namespace FROM topio_user WHERE id=$1
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
        WHERE a.owner_id=$1 AND a.asset_type=$2 AND a.local_id=$3
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
        WHERE a.id=$1 AND a.asset_type=$2 AND u.user_namespace=$3 AND a.local_id IS NOT NULL
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
        WHERE a.owner_id=$1
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

// scanAssets reads joined asset rows and derives each topio id from the
// owner namespace carried by the join.
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
