// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"slices"

	"golang.org/x/text/language"

	"github.com/taibuivan/newsdesk/internal/platform/constants"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
)

// Language negotiates the content language of the request.
//
// An explicit '?lang=' query parameter wins when it names a supported
// language; otherwise Accept-Language is matched against supported. Without a
// usable match the request is served in fallback, or in the first supported
// language when fallback is not supported. The chosen code is stored in the
// context (see [ctxutil.GetLanguage]) and echoed in Content-Language.
func Language(supported []string, fallback string) func(http.Handler) http.Handler {
	if !slices.Contains(supported, fallback) && len(supported) > 0 {
		fallback = supported[0]
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			chosen := negotiate(request, supported, fallback, matcher)

			writer.Header().Set(constants.HeaderContentLang, chosen)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithLanguage(request.Context(), chosen)))
		})
	}
}

func negotiate(request *http.Request, supported []string, fallback string, matcher language.Matcher) string {
	if len(supported) == 0 {
		return ""
	}

	if explicit := request.URL.Query().Get(constants.LanguageQueryParam); explicit != "" {
		if slices.Contains(supported, explicit) {
			return explicit
		}
	}

	accepted, _, err := language.ParseAcceptLanguage(request.Header.Get(constants.HeaderAcceptLanguage))
	if err != nil || len(accepted) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(accepted...)
	if confidence == language.No {
		return fallback
	}
	return supported[index]
}
