package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	"github.com/vacationvibes/places-backend/pkg/config"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService handles registration, login and token validation.
type AuthService struct {
	users   repositories.UserRepository
	authCfg config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, authCfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:   users,
		authCfg: authCfg,
	}
}

// Register creates a new user account. The email must be unused; the
// password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 127 {
		return nil, apperrors.NewValidationError("name must be between 2 and 127 characters")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a signed access token. Unknown email
// and wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return "", nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		observability.RecordError(span, err)
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		observability.RecordError(span, err)
		return "", nil, apperrors.NewInternalError("failed to sign token", err)
	}

	return token, user, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// ValidateToken parses and verifies an access token and returns the user ID
// it was issued to.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return []byte(s.authCfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.NewUnauthorizedError("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperrors.NewUnauthorizedError("token has no subject")
	}
	return sub, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.authCfg.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}
