package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorUnauthenticated       = "TWITCH_UNAUTHENTICATED"
	ErrorMissingScope          = "TWITCH_MISSING_SCOPE"
	ErrorMissingArgument       = "TWITCH_MISSING_ARGUMENT"
	ErrorInvalidArgument       = "TWITCH_INVALID_ARGUMENT"
	ErrorAuthFailure           = "TWITCH_AUTH_FAILURE"
	ErrorMalformedAuthResponse = "TWITCH_MALFORMED_AUTH_RESPONSE"
	ErrorMalformedResponse     = "TWITCH_MALFORMED_RESPONSE"
	ErrorTransportFailed       = "TWITCH_TRANSPORT_FAILED"
	ErrorConfiguration         = "TWITCH_CONFIGURATION"
	ErrorInternal              = "TWITCH_INTERNAL_ERROR"
)

// NewUnauthenticated reports that the credential a call requires is absent.
func NewUnauthenticated(mode AuthMode) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(
			fmt.Sprintf("require %s authentication", mode),
			goerrors.CategoryAuth,
		).WithTextCode(ErrorUnauthenticated).
			WithMetadata(map[string]any{"auth_mode": string(mode)}),
	)
}

// NewMissingScope reports the first required scope the credential lacks.
func NewMissingScope(mode AuthMode, scope AuthScope) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(
			fmt.Sprintf("require %s auth scope %s", mode, scope),
			goerrors.CategoryAuthz,
		).WithTextCode(ErrorMissingScope).
			WithMetadata(map[string]any{
				"auth_mode": string(mode),
				"scope":     string(scope),
			}),
	)
}

// NewMissingArgument reports a required call argument that was not supplied.
func NewMissingArgument(operation string, name string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(
			fmt.Sprintf("%s: argument %q is required", operation, name),
			goerrors.CategoryBadInput,
		).WithTextCode(ErrorMissingArgument).
			WithMetadata(map[string]any{"operation": operation, "argument": name}),
	)
}

// NewInvalidArgument reports a call argument that violates its declared rule.
func NewInvalidArgument(operation string, name string, rule string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(
			fmt.Sprintf("%s: argument %q %s", operation, name, rule),
			goerrors.CategoryBadInput,
		).WithTextCode(ErrorInvalidArgument).
			WithMetadata(map[string]any{
				"operation": operation,
				"argument":  name,
				"rule":      rule,
			}),
	)
}

// NewAuthFailure reports a token exchange rejected by the authorization
// server, carrying the status code and raw body.
func NewAuthFailure(statusCode int, body string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(
			fmt.Sprintf("authentication failed with code %d", statusCode),
			goerrors.CategoryAuth,
		).WithTextCode(ErrorAuthFailure).
			WithMetadata(map[string]any{
				"status_code": statusCode,
				"body":        body,
			}),
	)
}

// NewMalformedAuthResponse reports an unparseable token endpoint payload.
func NewMalformedAuthResponse(reason string, cause error) *goerrors.Error {
	message := "authentication response " + reason
	var err *goerrors.Error
	if cause != nil {
		err = goerrors.Wrap(cause, goerrors.CategoryExternal, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryExternal)
	}
	return ensureErrorEnvelope(err.WithTextCode(ErrorMalformedAuthResponse))
}

// NewMalformedResponse reports a response body the normalizer cannot process.
func NewMalformedResponse(field string, cause error) *goerrors.Error {
	message := fmt.Sprintf("response field %q is malformed", field)
	var err *goerrors.Error
	if cause != nil {
		err = goerrors.Wrap(cause, goerrors.CategoryExternal, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryExternal)
	}
	return ensureErrorEnvelope(
		err.WithTextCode(ErrorMalformedResponse).
			WithMetadata(map[string]any{"field": field}),
	)
}

// NewConfigurationError reports an endpoint table or client wiring mistake.
// These indicate a bug in the embedding program, not a runtime condition.
func NewConfigurationError(message string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(message, goerrors.CategoryInternal).
			WithTextCode(ErrorConfiguration),
	)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusForCategory(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = ErrorInternal
	}
	return err
}

func httpStatusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsTextCode reports whether err carries the given taxonomy text code.
func IsTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
