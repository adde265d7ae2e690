package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/dto"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.accounts, env.logger, env.prom)

	payload := map[string]string{
		"email":    "a@x.com",
		"name":     "Ada",
		"password": "pw1",
	}
	c, w := newContext(http.MethodPost, "/auth/signup", mustJSON(t, payload), 0, 0)
	handler.Signup(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bearer", response.TokenType)
	assert.Equal(t, "a@x.com", response.User.Email)
	require.NotNil(t, response.User.Name)
	assert.Equal(t, "Ada", *response.User.Name)
	assert.NotContains(t, w.Body.String(), "password")

	identity, err := env.tokens.Verify(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, identity.UserID)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.prom.AccountEvents.WithLabelValues("signup", "ok")))
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.accounts, env.logger, env.prom)

	_, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	c, w := newContext(http.MethodPost, "/auth/signup", mustJSON(t, map[string]string{
		"email":    "a@x.com",
		"password": "pw2",
	}), 0, 0)
	handler.Signup(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, apiErr.Code)
}

func TestAuthHandler_Signup_InvalidRequest(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.accounts, env.logger, env.prom)

	bodies := []string{
		`{"email": "not-an-email", "password": "pw1"}`,
		`{"email": "a@x.com"}`,
		`{"email": "a@x.com", "password": "` + strings.Repeat("p", 73) + `"}`,
		`not json`,
	}
	for _, body := range bodies {
		c, w := newContext(http.MethodPost, "/auth/signup", []byte(body), 0, 0)
		handler.Signup(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.accounts, env.logger, env.prom)

	created, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	c, w := newContext(http.MethodPost, "/auth/login", mustJSON(t, map[string]string{
		"email":    "a@x.com",
		"password": "pw1",
	}), 0, 0)
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, created.ID, response.User.ID)
	assert.NotEmpty(t, response.AccessToken)
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.accounts, env.logger, env.prom)

	_, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	login := func(email, password string) (int, string, string) {
		c, w := newContext(http.MethodPost, "/auth/login", mustJSON(t, map[string]string{
			"email":    email,
			"password": password,
		}), 0, 0)
		handler.Login(c)
		return w.Code, w.Body.String(), w.Header().Get("WWW-Authenticate")
	}

	wrongCode, wrongBody, wrongChallenge := login("a@x.com", "wrong")
	unknownCode, unknownBody, _ := login("nobody@x.com", "pw1")

	assert.Equal(t, http.StatusUnauthorized, wrongCode)
	assert.Equal(t, http.StatusUnauthorized, unknownCode)
	assert.Equal(t, wrongBody, unknownBody)
	assert.Equal(t, "Bearer", wrongChallenge)
	assert.Equal(t, 2.0, testutil.ToFloat64(env.prom.AuthFailuresTotal.WithLabelValues(observability.ReasonInvalidCredentials)))
}
