package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evangadi/forum-backend/internal/domain"
	"github.com/evangadi/forum-backend/internal/repository/ports"
	"github.com/evangadi/forum-backend/internal/util"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooWeak    = errors.New("password must be at least 8 characters long")
	ErrInvalidToken       = errors.New("authentication invalid")
)

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager
}

// AuthResult bundles the logged-in user with its bearer token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, jwt *util.JWTManager) *AuthService {
	return &AuthService{users: users, sessions: sessions, jwt: jwt}
}

func (s *AuthService) Register(ctx context.Context, username, firstName, lastName, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = normalizeEmail(email)

	if err := util.ValidatePassword(password); err != nil {
		return nil, ErrPasswordTooWeak
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, fmt.Errorf("derive password: %w", err)
	}

	user, err := s.users.Create(ctx, username, firstName, lastName, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its user. The token must verify
// and its server-side session must still be active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := s.sessions.FindActiveSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeactivateSession(ctx, token); err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	return nil
}
