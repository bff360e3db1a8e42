package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/evangadi/forum-backend/internal/domain"
)

type PasswordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Upsert relies on the unique index on user_id: two concurrent reset
// requests for the same account serialize to last-write-wins.
func (r *PasswordResetRepository) Upsert(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	const query = `
        INSERT INTO password_resets (user_id, otp_hash, otp_salt, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET otp_hash = EXCLUDED.otp_hash,
            otp_salt = EXCLUDED.otp_salt,
            expires_at = EXCLUDED.expires_at,
            created_at = NOW()
        RETURNING id, user_id, otp_hash, otp_salt, expires_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, otpHash, otpSalt, expiresAt)
	var reset domain.PasswordReset
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

// FindLatestByUser orders by created_at so the newest attempt wins even if
// the table ever holds more than one row per user.
func (r *PasswordResetRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error) {
	const query = `
        SELECT id, user_id, otp_hash, otp_salt, expires_at, created_at
        FROM password_resets
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM password_resets WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *PasswordResetRepository) CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash, passwordSalt []byte) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const updatePassword = `
        UPDATE users
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	if _, err := tx.ExecContext(ctx, updatePassword, userID, passwordHash, passwordSalt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	const deleteAttempts = `DELETE FROM password_resets WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, deleteAttempts, userID); err != nil {
		return fmt.Errorf("delete reset attempts: %w", err)
	}

	return tx.Commit()
}
