// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/attendly/attendly/internal/auth"
)

type contextKey string

// claimsContextKey stores the verified token claims for the request.
const claimsContextKey contextKey = "auth_claims"

// Authenticate verifies the Bearer token on every request it wraps and
// stores the claims in the request context. Requests without a valid
// token get a 401 and never reach the handler.
func (rt *Router) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Missing authorization header", nil)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authorization header must use Bearer scheme", nil)
			return
		}

		claims, err := rt.tokens.Verify(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid or expired token", err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFromContext returns the verified claims stored by Authenticate.
// The second return is false on routes that skipped authentication.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}
