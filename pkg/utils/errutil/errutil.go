package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/types"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

// Handle logs the error with a message and reports service failures to
// Sentry when a client is configured. Validation failures are client-caused
// and are logged without capture.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if !errors.Is(err, types.ErrValidation) {
		sentry.CaptureException(err)
	}

	return err
}

// HandleHTTP logs the error and writes the HTTP error response the error
// taxonomy prescribes: validation failures return 400 with a specific
// message, collaborator failures return 502 with a generic body so that no
// provider internals leak to the caller.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, types.ErrValidation):
		_ = Handle(ctx, err, "invalid request")
		http.Error(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, types.ErrEmbedding), errors.Is(err, types.ErrIndex):
		_ = Handle(ctx, err, "upstream service failure")
		http.Error(w, "service temporarily unavailable", http.StatusBadGateway)

	default:
		_ = Handle(ctx, err, "internal error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
