package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAPIBaseURL  = "https://api.twitch.tv/helix/"
	DefaultAuthBaseURL = "https://id.twitch.tv/oauth2/"
)

type Config struct {
	ClientID       string        `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret   string        `koanf:"client_secret" mapstructure:"client_secret"`
	APIBaseURL     string        `koanf:"api_base_url" mapstructure:"api_base_url"`
	AuthBaseURL    string        `koanf:"auth_base_url" mapstructure:"auth_base_url"`
	UserAgent      string        `koanf:"user_agent" mapstructure:"user_agent"`
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		AuthBaseURL:    DefaultAuthBaseURL,
		UserAgent:      "go-twitch",
		RequestTimeout: 30 * time.Second,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("core: client_id is required")
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("core: api_base_url is required")
	}
	if strings.TrimSpace(c.AuthBaseURL) == "" {
		return fmt.Errorf("core: auth_base_url is required")
	}
	return nil
}
