package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gosignin/internal/auth/entity"
)

const (
	queryInsertUser = `INSERT INTO auth_users (id, phone, email, username, first_name, last_name, full_name, avatar)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8)
ON CONFLICT DO NOTHING`

	// An id match wins over a phone or email match.
	querySelectUser = `SELECT id, COALESCE(phone, ''), COALESCE(email, ''), username, first_name, last_name, full_name, avatar, created_at
FROM auth_users
WHERE id = $1 OR phone = NULLIF($2, '') OR email = NULLIF($3, '')
ORDER BY (id = $1) DESC
LIMIT 1`

	queryEnsureSettings = `INSERT INTO auth_user_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
)

// FindOrCreateUser inserts candidate unless a user already holds its id,
// phone or email, then returns the stored row. A destination first
// registered under another id therefore resolves to that user. The settings
// row is ensured for both new and existing users in the same transaction.
func (s *DB) FindOrCreateUser(ctx context.Context, candidate entity.User) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "FindOrCreateUser")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, queryInsertUser,
		candidate.ID,
		candidate.Phone,
		candidate.Email,
		candidate.Username,
		candidate.FirstName,
		candidate.LastName,
		candidate.FullName,
		candidate.Avatar,
	); err != nil {
		return nil, s.mapError(err)
	}

	var user entity.User
	if err := tx.QueryRow(ctx, querySelectUser, candidate.ID, candidate.Phone, candidate.Email).Scan(
		&user.ID,
		&user.Phone,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.FullName,
		&user.Avatar,
		&user.CreatedAt,
	); err != nil {
		return nil, s.mapError(err)
	}

	if _, err := tx.Exec(ctx, queryEnsureSettings, user.ID); err != nil {
		return nil, s.mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}
