package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glintstream/go-twitch/core"
)

const (
	defaultTokenRequestTimeout = 30 * time.Second
	maxTokenResponseBodyBytes  = 1 << 20
)

// HTTPDoer is the minimal http client surface the token endpoints need.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type AppTokenClientConfig struct {
	ClientID       string
	ClientSecret   string
	TokenURL       string
	RequestTimeout time.Duration
	HTTPClient     HTTPDoer
}

// AppTokenClient exchanges app credentials for an application access token
// through the client-credentials grant.
type AppTokenClient struct {
	config     AppTokenClientConfig
	httpClient HTTPDoer
}

func NewAppTokenClient(cfg AppTokenClientConfig) *AppTokenClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTokenRequestTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &AppTokenClient{
		config: AppTokenClientConfig{
			ClientID:       strings.TrimSpace(cfg.ClientID),
			ClientSecret:   strings.TrimSpace(cfg.ClientSecret),
			TokenURL:       strings.TrimSpace(cfg.TokenURL),
			RequestTimeout: timeout,
		},
		httpClient: httpClient,
	}
}

// Acquire performs the client-credentials POST and returns the access token.
// Non-2xx responses fail with AuthFailure carrying status and body; bodies
// that are not JSON or lack an access_token fail with MalformedAuthResponse.
func (c *AppTokenClient) Acquire(ctx context.Context, scopes []core.AuthScope) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", core.NewConfigurationError("auth: app token client requires an http client")
	}
	params := url.Values{}
	params.Set("client_id", c.config.ClientID)
	params.Set("client_secret", c.config.ClientSecret)
	params.Set("grant_type", "client_credentials")
	params.Set("scope", core.JoinScopes(scopes))

	payload, err := postTokenRequest(ctx, c.httpClient, c.config.TokenURL, params, c.config.RequestTimeout)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(readPayloadString(payload, "access_token"))
	if token == "" {
		return "", core.NewMalformedAuthResponse("did not contain access_token", nil)
	}
	return token, nil
}

// AcquireInto acquires an app token and stores it together with the granted
// scopes in one step. The store is only written on success, so no caller can
// observe a token that is not yet marked usable.
func (c *AppTokenClient) AcquireInto(
	ctx context.Context,
	store *CredentialStore,
	scopes []core.AuthScope,
) error {
	if store == nil {
		return core.NewConfigurationError("auth: acquire requires a credential store")
	}
	token, err := c.Acquire(ctx, scopes)
	if err != nil {
		return err
	}
	store.SetApp(token, scopes)
	return nil
}

// UserToken is the pair returned by the authorization-code and refresh
// grants.
type UserToken struct {
	AccessToken  string
	RefreshToken string
}

// RefreshUserToken exchanges a refresh token for a fresh user access token.
func RefreshUserToken(
	ctx context.Context,
	httpClient HTTPDoer,
	tokenURL string,
	clientID string,
	clientSecret string,
	refreshToken string,
) (UserToken, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTokenRequestTimeout}
	}
	params := url.Values{}
	params.Set("refresh_token", strings.TrimSpace(refreshToken))
	params.Set("client_id", strings.TrimSpace(clientID))
	params.Set("client_secret", strings.TrimSpace(clientSecret))
	params.Set("grant_type", "refresh_token")

	payload, err := postTokenRequest(ctx, httpClient, tokenURL, params, defaultTokenRequestTimeout)
	if err != nil {
		return UserToken{}, err
	}
	token := UserToken{
		AccessToken:  strings.TrimSpace(readPayloadString(payload, "access_token")),
		RefreshToken: strings.TrimSpace(readPayloadString(payload, "refresh_token")),
	}
	if token.AccessToken == "" {
		return UserToken{}, core.NewMalformedAuthResponse("did not contain access_token", nil)
	}
	return token, nil
}

// postTokenRequest issues one POST to the token endpoint with the grant
// parameters in the query string (spaces in the scope value encode as '+')
// and decodes the JSON payload.
func postTokenRequest(
	ctx context.Context,
	httpClient HTTPDoer,
	tokenURL string,
	params url.Values,
	timeout time.Duration,
) (map[string]any, error) {
	requestURL := strings.TrimSpace(tokenURL)
	if requestURL == "" {
		return nil, core.NewConfigurationError("auth: token url is required")
	}
	if encoded := params.Encode(); encoded != "" {
		separator := "?"
		if strings.Contains(requestURL, "?") {
			separator = "&"
		}
		requestURL += separator + encoded
	}

	if ctx == nil {
		ctx = context.Background()
	}
	requestCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, requestURL, nil)
	if err != nil {
		return nil, core.NewMalformedAuthResponse("request could not be built", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	response, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(response.Body, maxTokenResponseBodyBytes+1))
	if readErr != nil {
		return nil, core.NewMalformedAuthResponse("body could not be read", readErr)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, core.NewAuthFailure(response.StatusCode, string(body))
	}

	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, core.NewMalformedAuthResponse("did not have a valid json body", err)
	}
	return payload, nil
}

func readPayloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}
