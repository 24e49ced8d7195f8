// Package twitch is the public client for the Helix API. A Client bundles
// the credential store, header builder, transport, and endpoint dispatcher;
// consumers construct one with New and call the typed endpoint methods.
package twitch

import (
	"context"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/glintstream/go-twitch/auth"
	"github.com/glintstream/go-twitch/catalog"
	"github.com/glintstream/go-twitch/core"
	"github.com/glintstream/go-twitch/transport"
)

type Config = core.Config

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Option customizes client construction.
type Option func(*clientOptions)

type clientOptions struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	transport       core.TransportAdapter
	httpClient      transport.HTTPDoer
	metrics         core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	persistence     core.TokenPersistence
	tokenClient     *auth.AppTokenClient
}

func WithLogger(logger core.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *clientOptions) { o.loggerProvider = provider }
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(o *clientOptions) { o.transport = adapter }
}

func WithHTTPClient(client transport.HTTPDoer) Option {
	return func(o *clientOptions) { o.httpClient = client }
}

func WithMetricsRecorder(metrics core.MetricsRecorder) Option {
	return func(o *clientOptions) { o.metrics = metrics }
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *clientOptions) { o.configProvider = provider }
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *clientOptions) { o.optionsResolver = resolver }
}

func WithTokenPersistence(persistence core.TokenPersistence) Option {
	return func(o *clientOptions) { o.persistence = persistence }
}

func WithAppTokenClient(client *auth.AppTokenClient) Option {
	return func(o *clientOptions) { o.tokenClient = client }
}

// Client is the Helix API client. Safe for concurrent use.
type Client struct {
	config      Config
	store       *auth.CredentialStore
	tokenClient *auth.AppTokenClient
	dispatcher  *catalog.Dispatcher
	persistence core.TokenPersistence
	logger      core.Logger
}

// New resolves the configuration (defaults < provider-loaded < runtime) and
// wires the client.
func New(cfg Config, options ...Option) (*Client, error) {
	resolved := clientOptions{}
	for _, option := range options {
		if option != nil {
			option(&resolved)
		}
	}

	loaded := Config{}
	if resolved.configProvider != nil {
		var err error
		loaded, err = resolved.configProvider.Load(context.Background(), DefaultConfig())
		if err != nil {
			return nil, core.NewConfigurationError(fmt.Sprintf("twitch: config load failed: %v", err))
		}
	}
	var resolver core.OptionsResolver = core.GoOptionsResolver{}
	if resolved.optionsResolver != nil {
		resolver = resolved.optionsResolver
	}
	effective, err := resolver.Resolve(DefaultConfig(), loaded, cfg)
	if err != nil {
		return nil, core.NewConfigurationError(fmt.Sprintf("twitch: config resolve failed: %v", err))
	}

	logger := resolveLogger(resolved)
	adapter := resolved.transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(resolved.httpClient)
	}
	metrics := resolved.metrics
	if metrics == nil {
		metrics = core.NopMetricsRecorder{}
	}
	tokenClient := resolved.tokenClient
	if tokenClient == nil {
		tokenClient = auth.NewAppTokenClient(auth.AppTokenClientConfig{
			ClientID:       effective.ClientID,
			ClientSecret:   effective.ClientSecret,
			TokenURL:       authURL(effective, "token"),
			RequestTimeout: effective.RequestTimeout,
		})
	}

	store := auth.NewCredentialStore()
	executor := NewExecutor(
		adapter,
		auth.NewHeaderBuilder(effective.ClientID, store),
		effective.UserAgent,
		effective.RequestTimeout,
	)

	return &Client{
		config:      effective,
		store:       store,
		tokenClient: tokenClient,
		dispatcher:  catalog.NewDispatcher(executor, effective.APIBaseURL, logger, metrics),
		persistence: resolved.persistence,
		logger:      logger,
	}, nil
}

func resolveLogger(options clientOptions) core.Logger {
	_, logger := glog.Resolve("twitch", options.loggerProvider, options.logger)
	return logger
}

func authURL(cfg Config, path string) string {
	return strings.TrimRight(strings.TrimSpace(cfg.AuthBaseURL), "/") + "/" + path
}

// Config returns the effective configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// AuthenticateApp acquires an application token for the given scopes and
// stores it. The credential store is only written when the exchange
// succeeds.
func (c *Client) AuthenticateApp(ctx context.Context, scopes []core.AuthScope) error {
	if err := c.tokenClient.AcquireInto(ctx, c.store, scopes); err != nil {
		return err
	}
	c.persist(ctx, core.TokenSlotApp, c.store.App(), "")
	return nil
}

// SetUserAuthentication installs a user token and its granted scopes. No
// network call is made; the token's validity surfaces on first use.
func (c *Client) SetUserAuthentication(token string, scopes []core.AuthScope) {
	c.store.SetUser(token, scopes)
	c.persist(context.Background(), core.TokenSlotUser, c.store.User(), "")
}

// RefreshUserAuthentication exchanges a refresh token and installs the new
// access token, keeping the previously granted scopes.
func (c *Client) RefreshUserAuthentication(ctx context.Context, refreshToken string) (auth.UserToken, error) {
	token, err := auth.RefreshUserToken(
		ctx,
		nil,
		authURL(c.config, "token"),
		c.config.ClientID,
		c.config.ClientSecret,
		refreshToken,
	)
	if err != nil {
		return auth.UserToken{}, err
	}
	scopes := c.store.User().Scopes
	c.store.SetUser(token.AccessToken, scopes)
	c.persist(ctx, core.TokenSlotUser, c.store.User(), token.RefreshToken)
	return token, nil
}

// LoadPersistedTokens restores previously saved credentials into the store.
// Missing rows are not an error; only backend failures are reported.
func (c *Client) LoadPersistedTokens(ctx context.Context) error {
	if c.persistence == nil {
		return nil
	}
	for _, slot := range []core.TokenSlot{core.TokenSlotApp, core.TokenSlotUser} {
		record, err := c.persistence.Load(ctx, c.config.ClientID, slot)
		if err != nil {
			return err
		}
		if strings.TrimSpace(record.AccessToken) == "" {
			continue
		}
		switch slot {
		case core.TokenSlotApp:
			c.store.SetApp(record.AccessToken, record.Scopes)
		case core.TokenSlotUser:
			c.store.SetUser(record.AccessToken, record.Scopes)
		}
	}
	return nil
}

// persist mirrors the credential into the optional persistence backend.
// Persistence failures are logged, not returned: the in-memory credential is
// already usable.
func (c *Client) persist(ctx context.Context, slot core.TokenSlot, credential core.Credential, refreshToken string) {
	if c.persistence == nil || !credential.Present {
		return
	}
	err := c.persistence.Save(ctx, core.PersistedToken{
		ClientID:     c.config.ClientID,
		Slot:         slot,
		AccessToken:  credential.Token,
		RefreshToken: refreshToken,
		Scopes:       credential.Scopes,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		logger := c.logger
		if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
			logger = fieldsLogger.WithFields(map[string]any{
				"slot":  string(slot),
				"error": err.Error(),
			})
		}
		logger.Warn("token persistence failed")
	}
}

// execute runs a named endpoint table entry.
func (c *Client) execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	spec, ok := endpointSpec(name)
	if !ok {
		return nil, core.NewConfigurationError(fmt.Sprintf("twitch: unknown operation %q", name))
	}
	body, err := c.dispatcher.Execute(ctx, spec, args)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	record, ok := body.(map[string]any)
	if !ok {
		return nil, core.NewMalformedResponse("body", fmt.Errorf("expected a JSON object, got %T", body))
	}
	return record, nil
}
