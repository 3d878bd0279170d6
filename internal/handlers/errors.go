package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrgen/internal/logging"
	"github.com/cristianadrielbraun/qrgen/internal/qr"
	"github.com/cristianadrielbraun/qrgen/internal/render"
)

// ErrValidation marks requests rejected for missing or malformed input.
var ErrValidation = errors.New("validation failed")

// apiError carries the status and client-facing message for a failed request.
type apiError struct {
	status int
	msg    string
	err    error
}

func (e *apiError) Error() string {
	if e.err == nil || e.err == ErrValidation {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *apiError) Unwrap() error { return e.err }

func badRequest(msg string) error {
	return &apiError{status: http.StatusBadRequest, msg: msg, err: ErrValidation}
}

func tooLarge(n int, err error) error {
	return &apiError{
		status: http.StatusUnprocessableEntity,
		msg: fmt.Sprintf("QR generation failed: data is %d bytes, which does not fit in a QR code. "+
			"Shorten the input; POST /api/check-capacity reports the limit.", n),
		err: err,
	}
}

// abort maps err onto a status and JSON body and stops the handler chain.
func (h *Handler) abort(c *gin.Context, err error) {
	var (
		ae  *apiError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ae):
	case errors.As(err, &mbe):
		ae = &apiError{status: http.StatusRequestEntityTooLarge, msg: "Request body too large", err: err}
	case errors.Is(err, qr.ErrCapacityExceeded):
		ae = &apiError{status: http.StatusUnprocessableEntity, msg: "Data does not fit in a QR code", err: err}
	case errors.Is(err, render.ErrEncoding):
		ae = &apiError{status: http.StatusInternalServerError, msg: "PNG encoding failed", err: err}
	default:
		ae = &apiError{status: http.StatusInternalServerError, msg: "Internal server error", err: err}
	}

	level := slog.LevelInfo
	if ae.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.LogAttrs(c.Request.Context(), level, "request failed",
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", ae.status),
		logging.Error(err),
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(ae.status, gin.H{"error": ae.msg})
}
