package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/internal"
)

const otelName = "github.com/sanLimbu/todo-list/internal/rest"

// ErrorResponse represents a response containing an error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// renderErrorResponse writes the error, the original error is only logged.
func renderErrorResponse(ctx context.Context, logger *zap.Logger, w http.ResponseWriter, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	status := http.StatusInternalServerError

	var ierr *internal.Error
	if !errors.As(err, &ierr) {
		resp.Error = "Internal Server Error"
	} else {
		switch ierr.Code() {
		case internal.ErrorCodeNotFound:
			status = http.StatusNotFound
			resp.Error = "Todo not found"
		case internal.ErrorCodeInvalidArgument:
			status = http.StatusBadRequest
		case internal.ErrorCodeUnknown:
			fallthrough
		default:
			resp.Error = "Internal Server Error"
		}
	}

	if err != nil {
		_, span := otel.Tracer(otelName).Start(ctx, "rest.renderErrorResponse")
		defer span.End()

		span.RecordError(err)

		if status == http.StatusInternalServerError {
			logger.Error(msg, zap.Error(err))
		} else {
			logger.Debug(msg, zap.Int("status", status), zap.Error(err))
		}
	}

	renderResponse(w, resp, status)
}

func renderResponse(w http.ResponseWriter, res interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	_, _ = w.Write(content)
}
