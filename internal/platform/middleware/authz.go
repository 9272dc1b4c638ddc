// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/constants"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
	"github.com/taibuivan/newsdesk/internal/platform/respond"
	"github.com/taibuivan/newsdesk/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] and lets
// tests inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// errorWriter renders a failed authorization check.
type errorWriter func(http.ResponseWriter, *http.Request, error)

// Authenticate extracts and verifies the JWT of the caller.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>', else the access token cookie set
//     for browser sessions of the admin.
//  2. If neither is present, the request proceeds as anonymous.
//  3. Verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// A malformed header or an invalid bearer token is rejected with 401. An
// invalid cookie is ignored so an expired browser session falls back to
// anonymous access.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Cookie session ────────────────────────────────────────────
			if authHeader == "" {
				cookie, err := request.Cookie(constants.AccessTokenCookieName)
				if err != nil || cookie.Value == "" {
					next.ServeHTTP(writer, request)
					return
				}

				claims, err := verifier.VerifyToken(cookie.Value)
				if err != nil {
					ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_cookie_rejected")
					next.ServeHTTP(writer, request)
					return
				}

				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireRole blocks requests if the authenticated user doesn't have the
// required role. Anonymous requests get 401. Failures are JSON envelopes.
//
// Must be registered in the router AFTER [Authenticate].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return requireRole(role, respond.Error)
}

// RequireRolePage is [RequireRole] for server-rendered pages: failures are
// rendered as HTML error pages.
func RequireRolePage(role sec.UserRole) func(http.Handler) http.Handler {
	return requireRole(role, respond.HTMLError)
}

func requireRole(role sec.UserRole, fail errorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				fail(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !sec.UserRole(claims.Role).AtLeast(role) {
				fail(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
