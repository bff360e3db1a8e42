package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
)

type PasswordResetRepository interface {
	// Upsert stores a fresh attempt for the user, replacing any earlier one.
	Upsert(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error)
	// FindLatestByUser returns the most recently created attempt.
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	// CompleteReset writes the new credential and removes every attempt for
	// the user in a single transaction, so a crash can neither leave a
	// replayable code behind a changed password nor the reverse.
	CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash, passwordSalt []byte) error
}
