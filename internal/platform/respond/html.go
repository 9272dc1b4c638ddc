// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
)

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Status}} {{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{with .RequestID}}<p><small>Request {{.}}</small></p>{{end}}
</body>
</html>
`))

// HTML executes the named template into a buffer and writes it with the given
// status. A template failure is reported as a 500 error page instead of a
// half-written body.
func HTML(writer http.ResponseWriter, request *http.Request, statusCode int, tmpl *template.Template, name string, data any) {
	var buffer bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buffer, name, data); err != nil {
		HTMLError(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = buffer.WriteTo(writer)
}

// HTMLError renders err as a minimal HTML error page, classified like [Error].
func HTMLError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(request, err, "html_server_error")

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(appError.HTTPStatus)
	_ = errorPage.Execute(writer, map[string]any{
		"Status":    appError.HTTPStatus,
		"Title":     http.StatusText(appError.HTTPStatus),
		"Message":   appError.Message,
		"RequestID": ctxutil.GetRequestID(request.Context()),
	})
}
