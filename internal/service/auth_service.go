package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"menuhub/internal/auth"
	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
	"menuhub/internal/repository"
)

// RegisterInput carries the fields of a registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Admin    bool
}

// Identity is the authenticated user resolved once per request.
type Identity struct {
	UserID    uint
	Name      string
	Email     string
	Admin     bool
	TokenID   string
	ExpiresAt time.Time
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*auth.Session, *model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	CurrentUser(ctx context.Context, claims *auth.Claims) (*Identity, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessions    *auth.SessionService
	revocations auth.RevocationStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionService, revocations auth.RevocationStore) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessions:    sessions,
		revocations: revocations,
	}
}

// Register creates a user with a hashed password. A taken e-mail yields a duplicate_email
// ConstraintError from the datastore.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashedPassword,
		Admin:        in.Admin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session.
func (s *authService) Login(ctx context.Context, email, password string) (*auth.Session, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, nil, apperrors.ErrInvalidEmail
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidPassword
	}

	session, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}
	return session, user, nil
}

// Logout revokes the session until it would have expired on its own.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

// CurrentUser maps session claims to the user they belong to. It returns nil without an
// error when the session was revoked or the user no longer exists.
func (s *authService) CurrentUser(ctx context.Context, claims *auth.Claims) (*Identity, error) {
	if claims == nil {
		return nil, nil
	}
	if claims.ID != "" && s.revocations.IsRevoked(ctx, claims.ID) {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	identity := &Identity{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Admin:   user.Admin,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
