package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

const minPasswordLength = 6

var emailValidator = validator.New()

// AuthService implements registration, login, token validation, and role
// management on top of the credential store.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 2 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if emailValidator.Var(input.Email, "required,email") != nil {
		return nil, domain.NewValidationError("email", "must be a valid email")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Duplicate emails are rejected by the store's unique index, not by a
	// pre-check, so concurrent registrations cannot both succeed.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a session token. A missing user
// and a wrong password return the identical error so the response does not
// reveal which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user)
}

// ValidateToken verifies signature and expiry, then re-resolves the subject
// against the credential store. A token whose subject has since been deleted
// is rejected, so user deletion invalidates outstanding tokens without a
// revocation list.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*ports.TokenIdentity, error) {
	identity, err := ParseIdentity(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, identity.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrStaleSubject
		}
		return nil, err
	}

	return identity, nil
}

func (s *AuthService) ChangeRole(ctx context.Context, targetEmail, newRole string) (*ports.RoleChangeResult, error) {
	if !domain.ValidRole(newRole) {
		return nil, domain.NewValidationError("role", "role must be one of: user, admin")
	}

	user, err := s.repo.FindByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}

	// Idempotent no-op: the target already holds the requested role.
	if user.Role == newRole {
		return &ports.RoleChangeResult{Email: user.Email, Role: user.Role, Changed: false}, nil
	}

	if err := s.repo.UpdateRole(ctx, user.ID, newRole, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", newRole).Msg("user role changed")
	return &ports.RoleChangeResult{Email: user.Email, Role: newRole, Changed: true}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseIdentity verifies the token's signature and expiry and returns the
// embedded identity. It does NOT consult the credential store — callers that
// need the stronger guarantee use AuthService.ValidateToken.
func ParseIdentity(token, jwtSecret string) (*ports.TokenIdentity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenIdentity{UserID: sub, Username: username, Role: role}, nil
}
