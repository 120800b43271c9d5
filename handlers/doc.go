// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the easel API.

# Handler Types

Each handler is a thin struct over *competition.Service:

  - CompetitionHandler: Create, read, delete, share schedule
  - SubmissionHandler: Art submissions and artist removal
  - VotingHandler: Votes, eligibility and vote history
  - ResultsHandler: Rankings and distribution reports
  - PayoutHandler: Pot funding and prize payout
  - ArtistHandler: The artist registry
  - AdminHandler: The admin pair
  - LiveHandler: WebSocket feed backed by a realtime.Hub

Handlers are built from the shared service:

	competitionHandler := handlers.NewCompetitionHandler(svc)

# Callers

The acting address comes from the bearer token resolved by
middleware.WithCaller. Mutating handlers answer 401 without one; the
service then decides whether that address may act.

# Errors

Service errors map onto statuses in errors.go:

	ErrUnauthorized                     → 403
	ErrNotFound                         → 404
	ErrInvalidWindow, ErrInvalidInput   → 400
	ErrNotEligible, ErrAlreadyExists,
	ErrStateViolation                   → 409
	ErrOverflow                         → 422
	ErrExternalCall                     → 502

Anything else is logged and returned as 500.
*/
package handlers
