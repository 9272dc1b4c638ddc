// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/constants"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
	"github.com/taibuivan/newsdesk/internal/platform/sec"
	"github.com/taibuivan/newsdesk/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a positive integer identifier.

Returns:
  - int64: The parsed value
  - error: apperr.NotFound when the segment is not a positive integer
*/
func Int64Param(request *http.Request, name, resource string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.NotFound(resource)
	}
	return value, nil
}

/*
IntParam parses a named URL parameter as an integer.
*/
func IntParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil {
		return 0, validate.RequiredError(name, "Must be a number")
	}
	return value, nil
}

/*
IsXHR reports whether the request was issued asynchronously by the admin UI.
*/
func IsXHR(request *http.Request) bool {
	return strings.EqualFold(request.Header.Get(constants.HeaderXRequestedWith), constants.XMLHttpRequest)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}
