package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/dto"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

func TestUserHandler_GetMe(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewUserHandler(env.accounts, env.logger)

	user, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	c, w := newContext(http.MethodGet, "/users/me", nil, user.ID, 0)
	handler.GetMe(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, "a@x.com", response.Email)
}

func TestUserHandler_GetMe_DeletedAccount(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewUserHandler(env.accounts, env.logger)

	c, w := newContext(http.MethodGet, "/users/me", nil, 777, 0)
	handler.GetMe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_UpdateMe(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewUserHandler(env.accounts, env.logger)

	_, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "taken@x.com", Password: "pw1"})
	require.NoError(t, err)
	user, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	c, w := newContext(http.MethodPatch, "/users/me", []byte(`{"name": "Ada", "avatar_url": "https://example.com/a.png"}`), user.ID, 0)
	handler.UpdateMe(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "a@x.com", response.Email)
	require.NotNil(t, response.Name)
	assert.Equal(t, "Ada", *response.Name)
	require.NotNil(t, response.AvatarURL)

	c, w = newContext(http.MethodPatch, "/users/me", []byte(`{"email": "taken@x.com"}`), user.ID, 0)
	handler.UpdateMe(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, apiErr.Code)
}

func TestUserHandler_UpdateMe_NullClears(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewUserHandler(env.accounts, env.logger)

	name := "Ada"
	user, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Name: &name, Password: "pw1"})
	require.NoError(t, err)

	c, w := newContext(http.MethodPatch, "/users/me", []byte(`{"avatar_url": "https://example.com/a.png"}`), user.ID, 0)
	handler.UpdateMe(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodPatch, "/users/me", []byte(`{"name": null}`), user.ID, 0)
	handler.UpdateMe(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response.Name)
	require.NotNil(t, response.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *response.AvatarURL)

	c, w = newContext(http.MethodPatch, "/users/me", []byte(`{"avatar_url": null}`), user.ID, 0)
	handler.UpdateMe(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `null`, string(mustJSONField(t, w.Body.Bytes(), "avatar_url")))
}

func TestUserHandler_UpdateMe_NameTooLong(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewUserHandler(env.accounts, env.logger)

	user, _, err := env.accounts.Signup(context.Background(), services.SignupInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	body := mustJSON(t, map[string]string{"name": strings.Repeat("n", 256)})
	c, w := newContext(http.MethodPatch, "/users/me", body, user.ID, 0)
	handler.UpdateMe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func mustJSONField(t *testing.T, body []byte, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	raw, ok := fields[key]
	require.True(t, ok, "missing %q", key)
	return raw
}
