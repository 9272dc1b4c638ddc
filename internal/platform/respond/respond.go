// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes the newsdesk HTTP responses.

The public news API answers with JSON envelopes:

	{"data": ...}                       single resource
	{"data": [...], "meta": {...}}      paginated list
	{"error": "...", "code": "..."}     failure, with optional "details"

The admin pages answer with server-rendered HTML (see [HTML] and
[HTMLError]). Both error writers classify errors the same way: an
[*apperr.AppError] keeps its status and message, anything else becomes a
generic 500 whose cause is logged and never sent to the client.
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
	"github.com/taibuivan/newsdesk/pkg/pagination"
)

// # Envelopes

// SuccessEnvelope wraps a single resource.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a list.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every JSON failure.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// # JSON

// JSON encodes payload with the given status.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		slog.Default().Debug("response_encode_failed", slog.String("error", err.Error()))
	}
}

// OK writes data in a [SuccessEnvelope].
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Paginated writes one page of data with its [pagination.Meta].
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// Error writes err as an [ErrorEnvelope].
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(request, err, "api_server_error")

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// # Classification

// classify resolves err to the [*apperr.AppError] that is shown to the client.
// Server errors are logged under event with the request id.
func classify(request *http.Request, err error, event string) *apperr.AppError {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, event,
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	return appError
}
