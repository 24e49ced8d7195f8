package twitch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/glintstream/go-twitch/core"
)

// Executor issues authorized requests: it builds headers through the header
// builder, hands the wire request to the transport adapter, and decodes the
// JSON body. Header-builder failures propagate untouched so scope and
// credential errors reach the caller before any network traffic.
type Executor struct {
	transport core.TransportAdapter
	headers   core.HeaderBuilder
	userAgent string
	timeout   time.Duration
}

func NewExecutor(
	transport core.TransportAdapter,
	headers core.HeaderBuilder,
	userAgent string,
	timeout time.Duration,
) *Executor {
	return &Executor{
		transport: transport,
		headers:   headers,
		userAgent: strings.TrimSpace(userAgent),
		timeout:   timeout,
	}
}

func (e *Executor) Get(
	ctx context.Context,
	url string,
	mode core.AuthMode,
	required []core.AuthScope,
) (any, error) {
	return e.execute(ctx, http.MethodGet, url, mode, required, nil)
}

func (e *Executor) Post(
	ctx context.Context,
	url string,
	mode core.AuthMode,
	required []core.AuthScope,
	body any,
) (any, error) {
	return e.execute(ctx, http.MethodPost, url, mode, required, body)
}

func (e *Executor) execute(
	ctx context.Context,
	method string,
	url string,
	mode core.AuthMode,
	required []core.AuthScope,
	body any,
) (any, error) {
	if e == nil || e.transport == nil || e.headers == nil {
		return nil, core.NewConfigurationError("twitch: executor requires a transport and a header builder")
	}
	headers, err := e.headers.Build(mode, required)
	if err != nil {
		return nil, err
	}
	if e.userAgent != "" {
		headers["User-Agent"] = e.userAgent
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, core.NewInvalidArgument(method+" "+url, "body", "must be JSON-marshalable")
		}
		headers["Content-Type"] = "application/json"
	}

	response, err := e.transport.Do(ctx, core.TransportRequest{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    payload,
		Timeout: e.timeout,
	})
	if err != nil {
		return nil, err
	}
	if len(response.Body) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(response.Body, &decoded); err != nil {
		return nil, core.NewMalformedResponse("body", err)
	}
	return decoded, nil
}

var _ core.RequestExecutor = (*Executor)(nil)
