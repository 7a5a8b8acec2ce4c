// Package postgres provides PostgreSQL storage for session bags.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// ErrNilDB indicates the store was constructed without a database handle.
var ErrNilDB = errors.New("session.postgres.nil_db")

// Store implements session.Backend on a sessionkit_sessions table. Bags
// are JSONB documents; the access stamp sits in its own BIGINT column so
// a Touch is a one-column update. Every stamp write goes through
// GREATEST, which keeps the merge-max rule inside the database and safe
// against racing workers.
//
// The handle is plain database/sql; a pgx pool bridges in through
// stdlib.OpenDBFromPool.
type Store struct {
	db *sql.DB
}

var _ session.Backend = (*Store)(nil)

// New creates a PostgreSQL session store over db. The schema must be in
// place; apply it with Migrate.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Store{db: db}, nil
}

// Load retrieves the bag for token together with its access stamp.
// Returns session.ErrNotFound when no row exists.
func (s *Store) Load(ctx context.Context, token string) (*session.Data, error) {
	query := `
		SELECT data, last_access FROM sessionkit_sessions
		WHERE token = $1
	`
	var (
		raw        []byte
		lastAccess int64
	)
	err := s.db.QueryRowContext(ctx, query, token).Scan(&raw, &lastAccess)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}

	return session.DecodeData(raw, lastAccess)
}

// Store upserts the bag document and merges its access stamp with any
// already stored, keeping the maximum of the two.
func (s *Store) Store(ctx context.Context, token string, data *session.Data) error {
	raw, err := data.EncodePkgs()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessionkit_sessions (token, data, last_access)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (token) DO UPDATE
		SET data = EXCLUDED.data,
		    last_access = GREATEST(sessionkit_sessions.last_access, EXCLUDED.last_access)
	`
	if _, err := s.db.ExecContext(ctx, query, token, string(raw), data.LastAccess()); err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Touch advances the stored access stamp to max(current, stamp). Touching
// an absent token matches no row and is a silent no-op.
func (s *Store) Touch(ctx context.Context, token string, stamp int64) error {
	query := `
		UPDATE sessionkit_sessions
		SET last_access = GREATEST(last_access, $2)
		WHERE token = $1
	`
	if _, err := s.db.ExecContext(ctx, query, token, stamp); err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Delete removes the bag for token. Deleting an absent token is a silent
// no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessionkit_sessions WHERE token = $1`
	if _, err := s.db.ExecContext(ctx, query, token); err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Stamps lists every stored token with its access stamp.
func (s *Store) Stamps(ctx context.Context) ([]session.Stamp, error) {
	query := `SELECT token, last_access FROM sessionkit_sessions`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}
	defer func() { _ = rows.Close() }()

	var stamps []session.Stamp
	for rows.Next() {
		var st session.Stamp
		if err := rows.Scan(&st.Token, &st.LastAccess); err != nil {
			return nil, errors.Join(session.ErrBackend, err)
		}
		stamps = append(stamps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}
	return stamps, nil
}
