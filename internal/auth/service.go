package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth_test

var ErrWrongCredentials = errors.New("invalid email or password")

type userStore interface {
	Create(ctx context.Context, u *users.User) (*users.User, error)
	GetCredentials(ctx context.Context, email string) (string, string, error)
}

type sessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=60"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type Service struct {
	users    userStore
	sessions sessionStore
	hashCost int
}

func NewService(users userStore, sessions sessionStore) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost is meant for tests, where the default cost is too slow.
func (s *Service) WithHashCost(cost int) *Service {
	s.hashCost = cost
	return s
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	passwordHash, err := HashPassword(req.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, &users.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Response{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Token:    token,
	}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, passwordHash, err := s.users.GetCredentials(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}
	if !CheckPasswordHash(req.Password, passwordHash) {
		return nil, ErrWrongCredentials
	}

	token, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Response{
		ID:    userID,
		Token: token,
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
