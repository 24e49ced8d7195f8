package transport

import (
	goerrors "github.com/goliatone/go-errors"

	"github.com/glintstream/go-twitch/core"
)

func transportError(
	message string,
	category goerrors.Category,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ErrorInvalidArgument
	case goerrors.CategoryExternal:
		return core.ErrorTransportFailed
	default:
		return core.ErrorInternal
	}
}
