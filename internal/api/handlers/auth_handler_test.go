package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacationvibes/places-backend/internal/api/handlers"
	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/application/services"
)

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	authService := services.NewAuthService(newStubUserRepo(), testAuthConfig())
	handler := handlers.NewAuthHandler(authService)

	// Register issues a token right away.
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&registered))
	assert.Equal(t, "bearer", registered.TokenType)
	assert.NotEmpty(t, registered.AccessToken)

	// Login with the same credentials.
	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(
		`{"email":"ada@example.com","password":"correct horse"}`))
	w = httptest.NewRecorder()
	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loggedIn))

	// Me returns the user behind the token.
	userID, err := authService.ValidateToken(loggedIn.AccessToken)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/auth/me", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
	w = httptest.NewRecorder()
	handler.Me(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	assert.Equal(t, "ada@example.com", me.Email)
	assert.NotContains(t, w.Body.String(), "correct horse")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	authService := services.NewAuthService(newStubUserRepo(), testAuthConfig())
	handler := handlers.NewAuthHandler(authService)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`))
	handler.Register(httptest.NewRecorder(), req)

	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(
		`{"email":"ada@example.com","password":"wrong"}`))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	authService := services.NewAuthService(newStubUserRepo(), testAuthConfig())
	handler := handlers.NewAuthHandler(authService)

	body := `{"name":"Ada","email":"ada@example.com","password":"correct horse"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	handler.Register(httptest.NewRecorder(), req)

	req = httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthMiddleware_RoundTrip(t *testing.T) {
	authService := services.NewAuthService(newStubUserRepo(), testAuthConfig())
	handler := handlers.NewAuthHandler(authService)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	var registered struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&registered))

	protected := middleware.AuthMiddleware(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.NotEmpty(t, userID)
		w.WriteHeader(http.StatusOK)
	}))

	req = httptest.NewRequest("GET", "/place/feed", nil)
	req.Header.Set("Authorization", "Bearer "+registered.AccessToken)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing and malformed tokens are rejected.
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, httptest.NewRequest("GET", "/place/feed", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/place/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
