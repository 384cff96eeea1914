package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "test-key")
}

func writeProviderError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{"code": code, "message": message},
	})
}

func TestSignInWithPasswordSuccess(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "accounts:signInWithPassword"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["email"])
		assert.Equal(t, true, body["returnSecureToken"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"localId":      "uid-123",
			"email":        "user@example.com",
			"idToken":      "token-abc",
			"refreshToken": "refresh-abc",
			"expiresIn":    "3600",
		})
	})

	session, err := client.SignInWithPassword("user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", session.LocalID)
	assert.Equal(t, "token-abc", session.IDToken)
}

func TestSignUpEmailExists(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, http.StatusBadRequest, "EMAIL_EXISTS")
	})

	_, err := client.SignUp("user@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignInInvalidCredentials(t *testing.T) {
	for _, code := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS"} {
		client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
			writeProviderError(w, http.StatusBadRequest, code)
		})

		_, err := client.SignInWithPassword("user@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "provider code %s", code)
	}
}

func TestSignInUnknownProviderError(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, http.StatusBadRequest, "TOO_MANY_ATTEMPTS_TRY_LATER : retry later")
	})

	_, err := client.SignInWithPassword("user@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "identity provider error")
}

func TestLookupSuccess(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "accounts:lookup"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]string{
				{"localId": "uid-123", "email": "user@example.com", "displayName": "User"},
			},
		})
	})

	session, err := client.Lookup("some-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", session.LocalID)
	assert.Equal(t, "User", session.DisplayName)
}

func TestLookupNoUsers(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"users": []interface{}{}})
	})

	_, err := client.Lookup("some-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLookupInvalidToken(t *testing.T) {
	client := providerStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, http.StatusBadRequest, "INVALID_ID_TOKEN")
	})

	_, err := client.Lookup("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
