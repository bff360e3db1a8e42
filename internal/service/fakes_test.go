package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evangadi/forum-backend/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	createErr error
	findErr   error
	updateErr error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		clone := *u
		repo.users[u.ID] = &clone
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, username, firstName, lastName, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		PasswordSalt: append([]byte(nil), passwordSalt...),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = append([]byte(nil), passwordHash...)
	u.PasswordSalt = append([]byte(nil), passwordSalt...)
	u.UpdatedAt = time.Now()
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	nextID   int64

	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	session := &domain.Session{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	f.sessions[token] = session
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) DeactivateSession(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[token]; ok {
		s.IsActive = false
	}
	return nil
}

func (f *fakeSessionRepo) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok || !s.IsActive || time.Now().After(s.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

// fakeResetRepo mirrors the one-row-per-user upsert discipline of the real
// table. CompleteReset writes through to the linked user repo the same way
// the SQL transaction touches both tables.
type fakeResetRepo struct {
	mu     sync.Mutex
	users  *fakeUserRepo
	resets map[uuid.UUID]*domain.PasswordReset
	nextID int64

	upsertErr   error
	completeErr error
}

func newFakeResetRepo(users *fakeUserRepo) *fakeResetRepo {
	return &fakeResetRepo{users: users, resets: make(map[uuid.UUID]*domain.PasswordReset)}
}

func (f *fakeResetRepo) Upsert(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.nextID++
	reset := &domain.PasswordReset{
		ID:        f.nextID,
		UserID:    userID,
		OTPHash:   append([]byte(nil), otpHash...),
		OTPSalt:   append([]byte(nil), otpSalt...),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.resets[userID] = reset
	clone := *reset
	return &clone, nil
}

func (f *fakeResetRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resets[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *reset
	return &clone, nil
}

func (f *fakeResetRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.resets, userID)
	return nil
}

func (f *fakeResetRepo) CompleteReset(ctx context.Context, userID uuid.UUID, passwordHash, passwordSalt []byte) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	if err := f.users.UpdatePassword(ctx, userID, passwordHash, passwordSalt); err != nil {
		return err
	}
	return f.DeleteByUser(ctx, userID)
}

func (f *fakeResetRepo) attemptFor(userID uuid.UUID) *domain.PasswordReset {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reset, ok := f.resets[userID]; ok {
		clone := *reset
		return &clone
	}
	return nil
}

func (f *fakeResetRepo) seed(reset *domain.PasswordReset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *reset
	f.resets[reset.UserID] = &clone
}

type sentOTP struct {
	email string
	otp   string
}

type fakeNotifier struct {
	mu        sync.Mutex
	otps      []sentOTP
	successes []string

	otpErr     error
	successErr error
}

func (f *fakeNotifier) SendOTP(ctx context.Context, email, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps = append(f.otps, sentOTP{email: email, otp: otp})
	return f.otpErr
}

func (f *fakeNotifier) SendResetSuccess(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, email)
	return f.successErr
}

func (f *fakeNotifier) lastOTP() (sentOTP, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.otps) == 0 {
		return sentOTP{}, false
	}
	return f.otps[len(f.otps)-1], true
}
