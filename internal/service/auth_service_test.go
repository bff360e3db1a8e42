package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evangadi/forum-backend/internal/util"
)

func newAuthService(users *fakeUserRepo, sessions *fakeSessionRepo) *AuthService {
	return NewAuthService(users, sessions, util.NewJWTManager("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, newFakeSessionRepo())

	user, err := svc.Register(context.Background(), " abebe ", "Abebe", "Kebede", " Abebe@Example.com ", "oldpass123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "abebe" {
		t.Errorf("username = %q, want trimmed %q", user.Username, "abebe")
	}
	if user.Email != "abebe@example.com" {
		t.Errorf("email = %q, want normalized %q", user.Email, "abebe@example.com")
	}
	if len(user.PasswordHash) == 0 || len(user.PasswordSalt) == 0 {
		t.Fatal("expected a derived credential")
	}
	if !util.VerifyPassword("oldpass123", user.PasswordSalt, user.PasswordHash) {
		t.Error("stored credential does not match the password")
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, newFakeSessionRepo())

	if _, err := svc.Register(context.Background(), "abebe", "Abebe", "Kebede", "abebe@example.com", "short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("Register with short password = %v, want ErrPasswordTooWeak", err)
	}
	if len(users.users) != 0 {
		t.Error("no user should be created for a rejected password")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	user := newTestUser(t, "abebe@example.com", "oldpass123")
	users := newFakeUserRepo(user)
	svc := newAuthService(users, newFakeSessionRepo())

	if _, err := svc.Register(context.Background(), "someone", "Some", "One", user.Email, "oldpass123"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("Register with taken email = %v, want ErrUserAlreadyExists", err)
	}
	if _, err := svc.Register(context.Background(), user.Username, "Some", "One", "other@example.com", "oldpass123"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("Register with taken username = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	user := newTestUser(t, "abebe@example.com", "oldpass123")
	users := newFakeUserRepo(user)
	sessions := newFakeSessionRepo()
	svc := newAuthService(users, sessions)

	result, err := svc.Login(context.Background(), "Abebe@Example.com", "oldpass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != user.ID {
		t.Errorf("logged in as %s, want %s", result.User.ID, user.ID)
	}
	if _, err := sessions.FindActiveSession(context.Background(), result.Token); err != nil {
		t.Errorf("login must create an active session: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	user := newTestUser(t, "abebe@example.com", "oldpass123")
	svc := newAuthService(newFakeUserRepo(user), newFakeSessionRepo())

	if _, err := svc.Login(context.Background(), "nobody@example.com", "oldpass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login with unknown email = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), user.Email, "wrongpass99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate(t *testing.T) {
	user := newTestUser(t, "abebe@example.com", "oldpass123")
	users := newFakeUserRepo(user)
	sessions := newFakeSessionRepo()
	svc := newAuthService(users, sessions)

	result, err := svc.Login(context.Background(), user.Email, "oldpass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated as %s, want %s", got.ID, user.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate with garbage = %v, want ErrInvalidToken", err)
	}
}

func TestAuthenticateRequiresActiveSession(t *testing.T) {
	user := newTestUser(t, "abebe@example.com", "oldpass123")
	users := newFakeUserRepo(user)
	sessions := newFakeSessionRepo()
	svc := newAuthService(users, sessions)

	// A structurally valid token without a server-side session is rejected.
	orphan, _, err := util.NewJWTManager("test-secret", time.Hour).Generate(user.ID, user.Username)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), orphan); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate without session = %v, want ErrInvalidToken", err)
	}

	result, err := svc.Login(context.Background(), user.Email, "oldpass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate after logout = %v, want ErrInvalidToken", err)
	}
}
