package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yisu_hotel/internal/domain"
)

// ErrInvalidCredentials signals wrong username or password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService owns accounts and the token -> session mapping. Tokens are
// opaque and live for the lifetime of the session store; no expiry is
// enforced.
type AuthService struct {
	repo       domain.Repository
	sessions   domain.SessionStore
	bcryptCost int
}

func NewAuthService(r domain.Repository, sessions domain.SessionStore, bcryptCost int) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: r, sessions: sessions, bcryptCost: bcryptCost}
}

type RegisteredUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (RegisteredUser, error) {
	username = strings.TrimSpace(username)
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return RegisteredUser{}, domain.Validationf(missing...)
	}
	if _, err := s.repo.FindUserByName(ctx, username); err == nil {
		return RegisteredUser{}, domain.Validationf("username")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return RegisteredUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return RegisteredUser{}, err
	}
	id, err := s.repo.NextUserID(ctx)
	if err != nil {
		return RegisteredUser{}, err
	}
	u := domain.User{ID: id, Username: username, PasswordHash: string(hash), Role: r}
	if err := s.repo.AddUser(ctx, u); err != nil {
		return RegisteredUser{}, err
	}
	if err := s.repo.Persist(ctx); err != nil {
		return RegisteredUser{}, err
	}
	return RegisteredUser{ID: u.ID, Username: u.Username, Role: u.Role}, nil
}

type LoginResult struct {
	Token string         `json:"token"`
	User  RegisteredUser `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return LoginResult{}, domain.Validationf("username", "password")
	}
	u, err := s.repo.FindUserByName(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	sess := domain.Session{
		Token:  "tk_" + uuid.NewString(),
		UserID: u.ID,
		Role:   u.Role,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Token: sess.Token,
		User:  RegisteredUser{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

// Logout drops the token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Del(ctx, token)
}

// Resolve maps a bearer token to its session, or nil when the token is
// missing, unknown, or stale.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	sess, ok, err := s.sessions.Get(ctx, token)
	if err != nil || !ok {
		return nil, err
	}
	return &sess, nil
}
