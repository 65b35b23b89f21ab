package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/pkg/config"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), testAuthConfig())
	ctx := context.Background()

	user, err := service.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	token, loggedIn, err := service.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), testAuthConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Other Ada", "ada@example.com", "battery staple")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestAuthService_Register_Validation(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), testAuthConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, "Ada", "not-an-email", "correct horse")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Register(ctx, "Ada", "ada@example.com", "short")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Register(ctx, "", "ada@example.com", "correct horse")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), testAuthConfig())
	ctx := context.Background()

	_, err := service.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = service.Login(ctx, "ada@example.com", "wrong password")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	// Unknown email reports the same error as a wrong password.
	_, _, err = service.Login(ctx, "nobody@example.com", "correct horse")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	service := services.NewAuthService(newFakeUserRepo(), testAuthConfig())

	_, err := service.ValidateToken("not.a.token")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := services.NewAuthService(newFakeUserRepo(), testAuthConfig())
	ctx := context.Background()

	_, err := issuer.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	token, _, err := issuer.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)

	verifier := services.NewAuthService(newFakeUserRepo(), config.AuthConfig{JWTSecret: "other-secret", TokenExpiry: time.Hour})
	_, err = verifier.ValidateToken(token)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}
