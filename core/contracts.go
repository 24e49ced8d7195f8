package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// TransportRequest is the wire-level request handed to a transport adapter.
type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

// TransportResponse is the raw result of a transport call. Status
// interpretation belongs to the caller, not the adapter.
type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// TransportAdapter performs HTTP calls. Adapters surface network failures as
// errors and return every received status code as a response.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// HeaderBuilder produces the header set for a call, enforcing credential
// presence and scope preconditions before any request is issued.
type HeaderBuilder interface {
	Build(mode AuthMode, required []AuthScope) (map[string]string, error)
}

// RequestExecutor issues authorized calls and returns the decoded JSON body.
// Header-builder failures propagate untouched; transport errors are surfaced
// verbatim without retry.
type RequestExecutor interface {
	Get(ctx context.Context, url string, mode AuthMode, required []AuthScope) (any, error)
	Post(ctx context.Context, url string, mode AuthMode, required []AuthScope, body any) (any, error)
}

// TokenSlot names a persisted credential slot.
type TokenSlot string

const (
	TokenSlotApp  TokenSlot = "app"
	TokenSlotUser TokenSlot = "user"
)

// PersistedToken is a credential as stored by a TokenPersistence backend.
type PersistedToken struct {
	ClientID     string
	Slot         TokenSlot
	AccessToken  string
	RefreshToken string
	Scopes       []AuthScope
	UpdatedAt    time.Time
}

// TokenPersistence stores the most recently acquired token per client and
// slot so credentials survive process restarts. Save replaces any previous
// row for the same client and slot.
type TokenPersistence interface {
	Save(ctx context.Context, token PersistedToken) error
	Load(ctx context.Context, clientID string, slot TokenSlot) (PersistedToken, error)
	Delete(ctx context.Context, clientID string, slot TokenSlot) error
}

// MetricsRecorder receives operation counters and latency observations.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
