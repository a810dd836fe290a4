package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/gatekeep-api/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.IdentityConfig{
		URL:        serverURL,
		ServiceKey: "service-key",
	})
}

func TestClient_CreateUser(t *testing.T) {
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body["email"])
		assert.Equal(t, true, body["email_confirm"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":    userID.String(),
			"email": "new@example.com",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	user, err := client.CreateUser(context.Background(), "new@example.com", "password")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestClient_CreateUser_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"msg": "User already registered",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateUser(context.Background(), "dup@example.com", "password")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "User already registered", apiErr.Message)
	assert.Equal(t, "User already registered", ProviderMessage(err))
}

func TestClient_SignInWithPassword(t *testing.T) {
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-token",
			"user": map[string]string{
				"id":    userID.String(),
				"email": "a@x.com",
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	user, err := client.SignInWithPassword(context.Background(), "a@x.com", "p")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestClient_SignInWithPassword_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_description": "Invalid login credentials",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SignInWithPassword(context.Background(), "a@x.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", ProviderMessage(err))
}

func TestClient_UpdateUserEmail(t *testing.T) {
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/users/"+userID.String(), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "changed@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":    userID.String(),
			"email": "changed@example.com",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	user, err := client.UpdateUserEmail(context.Background(), userID, "changed@example.com")

	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", user.Email)
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateUser(context.Background(), "a@x.com", "p")

	require.Error(t, err)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), ProviderMessage(err))
}
