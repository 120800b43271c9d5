// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap route handlers with request logging and Prometheus metrics:

	mux.HandleFunc("GET /health", middleware.WithLogging(middleware.WithMetrics(handler)))

Logging records method, path, client IP, status and duration_ms. Metrics are
labelled by the matched route pattern, so /competitions/{id} counts as one
series regardless of id.

# Caller Identity

WithCaller reads an Authorization bearer token, verifies it with the shared
secret and stores the subject address in the request context:

	handler := middleware.WithCaller(cfg.JWTSecret, mux)

Requests without a token pass through anonymously. Handlers that mutate
state read the caller with auth.CallerFrom.

# CORS Middleware

Cross-origin access is handled by rs/cors:

	handler = middleware.CORS(cfg.CORSOrigins)(handler)

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateCompetitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
