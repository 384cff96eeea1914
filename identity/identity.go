package identity

import (
	"courseflow/config"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Typed failures surfaced to callers; everything else from the provider is
// wrapped as an opaque error.
var (
	ErrEmailExists        = errors.New("the email address is already in use by another account")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrInvalidToken       = errors.New("invalid authentication token")
)

// Client talks to the external identity provider over its REST API. The rest
// of the system only ever sees the provider-issued user id (LocalID).
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

// Session is the provider's response to a credential exchange.
type Session struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"users"`
}

// New builds a client for the given provider endpoint.
func New(baseURL, apiKey string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// NewFromConfig builds a client from the loaded application config.
func NewFromConfig() *Client {
	return New(config.AppConfig.IdentityApiURL, config.AppConfig.IdentityApiKey)
}

// SignUp registers a new email/password account with the provider.
func (c *Client) SignUp(email, password string) (*Session, error) {
	return c.credentialCall("accounts:signUp", email, password)
}

// SignInWithPassword exchanges email/password credentials for a provider session.
func (c *Client) SignInWithPassword(email, password string) (*Session, error) {
	return c.credentialCall("accounts:signInWithPassword", email, password)
}

func (c *Client) credentialCall(endpoint, email, password string) (*Session, error) {
	var session Session
	var provErr providerError

	resp, err := c.http.R().
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]interface{}{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		SetResult(&session).
		SetError(&provErr).
		Post(fmt.Sprintf("%s/%s", c.baseURL, endpoint))
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		return nil, mapProviderError(provErr.Error.Message)
	}

	return &session, nil
}

// Lookup resolves a provider-issued ID token to the account it belongs to.
func (c *Client) Lookup(idToken string) (*Session, error) {
	var result lookupResponse
	var provErr providerError

	resp, err := c.http.R().
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]interface{}{"idToken": idToken}).
		SetResult(&result).
		SetError(&provErr).
		Post(fmt.Sprintf("%s/accounts:lookup", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}

	if resp.IsError() {
		return nil, mapProviderError(provErr.Error.Message)
	}

	if len(result.Users) == 0 {
		return nil, ErrInvalidToken
	}

	user := result.Users[0]
	return &Session{
		LocalID:     user.LocalID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

func mapProviderError(message string) error {
	// Provider messages can carry suffixes like "TOO_MANY_ATTEMPTS_TRY_LATER :
	// ...", so match on the leading code.
	switch {
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return ErrEmailExists
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return ErrInvalidCredentials
	case strings.HasPrefix(message, "INVALID_ID_TOKEN"),
		strings.HasPrefix(message, "USER_NOT_FOUND"):
		return ErrInvalidToken
	default:
		return fmt.Errorf("identity provider error: %s", message)
	}
}
