package core

import (
	"context"
	"testing"
	"time"
)

func TestGoOptionsResolver_RuntimeOverridesLoaded(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{
		ClientID:    "loaded_client",
		AuthBaseURL: "https://auth.loaded.example/",
	}
	runtime := Config{
		ClientID: "runtime_client",
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if resolved.ClientID != "runtime_client" {
		t.Fatalf("runtime layer must win, got %q", resolved.ClientID)
	}
	if resolved.AuthBaseURL != "https://auth.loaded.example/" {
		t.Fatalf("loaded layer must override defaults, got %q", resolved.AuthBaseURL)
	}
	if resolved.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("defaults must survive unset layers, got %q", resolved.APIBaseURL)
	}
	if resolved.RequestTimeout != 30*time.Second {
		t.Fatalf("default timeout must survive, got %v", resolved.RequestTimeout)
	}
}

func TestCfgxConfigProvider_LoadsRawValues(t *testing.T) {
	provider := NewCfgxConfigProvider(staticRawConfigLoader{Values: map[string]any{
		"client_id": "file_client",
	}})
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ClientID != "file_client" {
		t.Fatalf("unexpected client id: %q", cfg.ClientID)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("defaults must apply, got %q", cfg.APIBaseURL)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("config without client id must not validate")
	}
	cfg.ClientID = "client"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
