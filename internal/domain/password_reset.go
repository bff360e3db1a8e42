package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is one in-flight reset attempt. The table keeps at most one
// row per user (upsert on user_id), and reads always take the newest row, so
// a fresh request supersedes any earlier code. Rows are deleted when the
// reset completes or once they are seen expired.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	OTPHash   []byte    `db:"otp_hash" json:"-"`
	OTPSalt   []byte    `db:"otp_salt" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
