// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the easel API.

# Route Registration

NewRouter builds an http.Handler with every endpoint:

	handler := router.NewRouter(svc, hub, cfg)

Each route is wrapped with request logging and Prometheus metrics. The
whole mux sits behind bearer-token caller resolution and CORS.

# Endpoints

Service:

	GET /health  - Liveness
	GET /version - Service version
	GET /metrics - Prometheus scrape

Admins:

	GET /admins - Current admin pair
	PUT /admins - Replace admin slots (admin)

Competitions:

	POST   /competitions                     - Create (admin)
	GET    /competitions                     - Active competitions
	GET    /competitions/{id}                - Status, finalizing if due
	DELETE /competitions/{id}                - Delete and refund (admin)
	PUT    /competitions/{id}/share-schedule - Replace prize schedule (admin)

Submissions:

	POST   /competitions/{id}/submissions          - Submit art
	GET    /competitions/{id}/submissions          - Artworks by artist
	PATCH  /competitions/{id}/submissions/{artist} - Edit own artwork
	DELETE /competitions/{id}/submissions/{artist} - Remove artist (admin)

Voting:

	POST /competitions/{id}/votes                 - Cast a vote
	GET  /competitions/{id}/votes                 - Vote history
	GET  /competitions/{id}/voters/{address}      - Whether and for whom an address voted
	GET  /competitions/{id}/eligibility/{address} - Eligibility check
	GET  /competitions/{id}/min-vote-tokens       - Token threshold

Results and prize money:

	GET  /competitions/{id}/rankings - Live standings
	GET  /competitions/{id}/pot      - Pot size
	POST /competitions/{id}/pot      - Fund the pot
	POST /competitions/{id}/payouts  - Pay winners
	GET  /competitions/{id}/payouts  - Distribution reports
	GET  /competitions/{id}/live     - WebSocket event feed

Artists:

	POST   /artists                    - Register own profile
	GET    /artists                    - All profiles
	GET    /artists/me                 - Own profile
	PATCH  /artists/me                 - Edit own profile
	GET    /artists/{address}          - One profile
	GET    /artists/{address}/registered
	PUT    /artists/{address}          - Migrate a profile (admin)
	DELETE /artists/{address}          - Remove a profile (admin)
*/
package router
