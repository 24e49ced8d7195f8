package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glintstream/go-twitch/core"
	"github.com/glintstream/go-twitch/urlbuild"
)

const (
	defaultCallbackHost = "localhost"
	defaultCallbackPort = 17563
)

const callbackPage = `<!DOCTYPE html><html><head><title>go-twitch</title></head>` +
	`<body>Authentication finished. You can close this window.</body></html>`

type UserAuthenticatorConfig struct {
	ClientID     string
	ClientSecret string
	AuthBaseURL  string
	Scopes       []core.AuthScope
	ForceVerify  bool
	CallbackHost string
	CallbackPort int
	HTTPClient   HTTPDoer
	Logger       core.Logger
}

// UserAuthenticator drives the authorization-code flow: it hands the caller
// an authorize URL carrying a one-time state nonce, collects the redirect on
// a loopback callback server, and exchanges the code for a user token. The
// caller opens the URL; this type never touches a browser.
type UserAuthenticator struct {
	config     UserAuthenticatorConfig
	httpClient HTTPDoer
	state      string
	code       chan string
}

func NewUserAuthenticator(cfg UserAuthenticatorConfig) *UserAuthenticator {
	if strings.TrimSpace(cfg.CallbackHost) == "" {
		cfg.CallbackHost = defaultCallbackHost
	}
	if cfg.CallbackPort <= 0 {
		cfg.CallbackPort = defaultCallbackPort
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTokenRequestTimeout}
	}
	return &UserAuthenticator{
		config:     cfg,
		httpClient: httpClient,
		state:      uuid.NewString(),
		code:       make(chan string, 1),
	}
}

// RedirectURI is the loopback address registered with the application.
func (a *UserAuthenticator) RedirectURI() string {
	return fmt.Sprintf("http://%s:%d", a.config.CallbackHost, a.config.CallbackPort)
}

// AuthorizeURL builds the URL the user must visit to grant the requested
// scopes.
func (a *UserAuthenticator) AuthorizeURL() (string, error) {
	return urlbuild.Build(
		strings.TrimRight(strings.TrimSpace(a.config.AuthBaseURL), "/")+"/authorize",
		map[string]any{
			"client_id":     a.config.ClientID,
			"redirect_uri":  a.RedirectURI(),
			"response_type": "code",
			"scope":         core.JoinScopes(a.config.Scopes),
			"force_verify":  a.config.ForceVerify,
			"state":         a.state,
		},
		urlbuild.Options{},
	)
}

// Authenticate runs the callback server until a valid redirect arrives or
// ctx is done, then exchanges the received code for a user token.
func (a *UserAuthenticator) Authenticate(ctx context.Context) (UserToken, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", a.config.CallbackHost, a.config.CallbackPort))
	if err != nil {
		return UserToken{}, core.NewConfigurationError(
			fmt.Sprintf("auth: callback listener failed: %v", err),
		)
	}
	server := &http.Server{Handler: http.HandlerFunc(a.handleCallback)}
	go func() {
		_ = server.Serve(listener)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	a.logInfo("user authentication started", map[string]any{
		"redirect_uri": a.RedirectURI(),
	})

	select {
	case <-ctx.Done():
		return UserToken{}, ctx.Err()
	case code := <-a.code:
		return a.exchangeCode(ctx, code)
	}
}

func (a *UserAuthenticator) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("state") != a.state {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	code := strings.TrimSpace(query.Get("code"))
	if code == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	select {
	case a.code <- code:
	default:
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(callbackPage))
}

func (a *UserAuthenticator) exchangeCode(ctx context.Context, code string) (UserToken, error) {
	params := make(map[string][]string)
	values := map[string]string{
		"client_id":     a.config.ClientID,
		"client_secret": a.config.ClientSecret,
		"code":          code,
		"grant_type":    "authorization_code",
		"redirect_uri":  a.RedirectURI(),
	}
	for key, value := range values {
		params[key] = []string{value}
	}
	payload, err := postTokenRequest(
		ctx,
		a.httpClient,
		strings.TrimRight(strings.TrimSpace(a.config.AuthBaseURL), "/")+"/token",
		params,
		defaultTokenRequestTimeout,
	)
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
	a.logInfo("user authentication finished", nil)
	return token, nil
}

func (a *UserAuthenticator) logInfo(message string, fields map[string]any) {
	if a == nil || a.config.Logger == nil {
		return
	}
	logger := a.config.Logger
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok && len(fields) > 0 {
		logger = fieldsLogger.WithFields(fields)
	}
	logger.Info(message)
}
