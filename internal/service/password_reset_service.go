package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/evangadi/forum-backend/internal/repository/ports"
	"github.com/evangadi/forum-backend/internal/util"
)

var (
	ErrResetNotFound     = errors.New("no otp found for this email")
	ErrResetOTPExpired   = errors.New("otp has expired")
	ErrResetOTPMismatch  = errors.New("invalid otp")
	ErrInvalidResetToken = errors.New("invalid or expired token")
)

// ResetNotifier delivers the reset emails. Both sends are best-effort from
// the engine's point of view: a delivery failure is logged and swallowed so
// the caller cannot tell whether the address is deliverable.
type ResetNotifier interface {
	SendOTP(ctx context.Context, email, otp string) error
	SendResetSuccess(ctx context.Context, email string) error
}

// PasswordResetService owns the reset lifecycle: issue an OTP, validate it,
// and exchange the proven OTP for a short-lived authorization that the final
// password update redeems.
type PasswordResetService struct {
	users    ports.UserRepository
	resets   ports.PasswordResetRepository
	notifier ResetNotifier
	signer   *util.JWTManager

	otpTTL    time.Duration
	otpLength int
	tokenTTL  time.Duration
}

func NewPasswordResetService(users ports.UserRepository, resets ports.PasswordResetRepository, notifier ResetNotifier, signer *util.JWTManager, otpTTL time.Duration, otpLength int, tokenTTL time.Duration) *PasswordResetService {
	return &PasswordResetService{
		users:     users,
		resets:    resets,
		notifier:  notifier,
		signer:    signer,
		otpTTL:    otpTTL,
		otpLength: otpLength,
		tokenTTL:  tokenTTL,
	}
}

// RequestReset issues a fresh OTP for the account and mails it. Unknown
// emails succeed silently so the endpoint cannot be used to probe which
// addresses have accounts. A repeated request supersedes the previous OTP.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			log.Printf("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("find account: %w", err)
	}

	otp, err := util.GenerateNumericOTP(s.otpLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	otpHash, otpSalt, err := util.DerivePassword(otp)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	expiresAt := time.Now().Add(s.otpTTL)
	if _, err := s.resets.Upsert(ctx, user.ID, otpHash, otpSalt, expiresAt); err != nil {
		return fmt.Errorf("store reset attempt: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, email, otp); err != nil {
		log.Printf("password reset otp mail to %s failed: %v", email, err)
	}
	return nil
}

// VerifyOTP checks the submitted code against the newest attempt and, on
// success, returns a signed reset token bound to the email. The attempt row
// is kept until the reset completes, so re-verifying the same code while the
// token is live stays valid.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, otp string) (string, time.Time, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", time.Time{}, ErrResetNotFound
		}
		return "", time.Time{}, fmt.Errorf("find account: %w", err)
	}

	reset, err := s.resets.FindLatestByUser(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return "", time.Time{}, ErrResetNotFound
		}
		return "", time.Time{}, fmt.Errorf("find reset attempt: %w", err)
	}

	if reset.Expired(time.Now()) {
		if err := s.resets.DeleteByUser(ctx, user.ID); err != nil {
			log.Printf("delete expired reset attempt for %s failed: %v", email, err)
		}
		return "", time.Time{}, ErrResetOTPExpired
	}

	if !util.VerifyPassword(otp, reset.OTPSalt, reset.OTPHash) {
		return "", time.Time{}, ErrResetOTPMismatch
	}

	token, expiresAt, err := s.signer.GenerateResetToken(user.Email, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign reset token: %w", err)
	}
	return token, expiresAt, nil
}

// CompleteReset redeems a reset token and writes the new credential. The
// password update and the removal of the reset attempts commit in one
// transaction; afterwards the token dies with its own expiry.
func (s *PasswordResetService) CompleteReset(ctx context.Context, email, token, newPassword string) error {
	email = normalizeEmail(email)

	claims, err := s.signer.ParseResetToken(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if claims.Purpose != util.PurposePasswordReset || normalizeEmail(claims.Email) != email {
		return ErrInvalidResetToken
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooWeak
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("find account: %w", err)
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return fmt.Errorf("derive password: %w", err)
	}
	if err := s.resets.CompleteReset(ctx, user.ID, hash, salt); err != nil {
		return fmt.Errorf("complete reset: %w", err)
	}

	if err := s.notifier.SendResetSuccess(ctx, email); err != nil {
		log.Printf("password reset confirmation mail to %s failed: %v", email, err)
	}
	return nil
}
