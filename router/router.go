// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/easel/cliparse"
	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/handlers"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
	"github.com/danielhkuo/easel/realtime"
)

func NewRouter(svc *competition.Service, hub *realtime.Hub, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(h)))
	}

	// Initialize handlers
	competitionHandler := handlers.NewCompetitionHandler(svc)
	submissionHandler := handlers.NewSubmissionHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)
	payoutHandler := handlers.NewPayoutHandler(svc)
	artistHandler := handlers.NewArtistHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)
	liveHandler := handlers.NewLiveHandler(svc, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.VersionResponse{Version: svc.Version()})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Admin pair
	route("GET /admins", adminHandler.GetAdmins)
	route("PUT /admins", adminHandler.UpdateAdmins)

	// Competition lifecycle
	route("POST /competitions", competitionHandler.CreateCompetition)
	route("GET /competitions", competitionHandler.ListActive)
	route("GET /competitions/{id}", competitionHandler.GetCompetition)
	route("DELETE /competitions/{id}", competitionHandler.DeleteCompetition)
	route("PUT /competitions/{id}/share-schedule", competitionHandler.UpdateShareSchedule)

	// Submissions
	route("POST /competitions/{id}/submissions", submissionHandler.SubmitArt)
	route("GET /competitions/{id}/submissions", submissionHandler.ListArtworks)
	route("PATCH /competitions/{id}/submissions/{artist}", submissionHandler.UpdateSubmission)
	route("DELETE /competitions/{id}/submissions/{artist}", submissionHandler.RemoveArtist)

	// Voting
	route("POST /competitions/{id}/votes", votingHandler.Vote)
	route("GET /competitions/{id}/votes", votingHandler.VoteHistory)
	route("GET /competitions/{id}/voters/{address}", votingHandler.HasVoted)
	route("GET /competitions/{id}/eligibility/{address}", votingHandler.Eligibility)
	route("GET /competitions/{id}/min-vote-tokens", votingHandler.MinVoteTokens)

	// Results and prize money
	route("GET /competitions/{id}/rankings", resultsHandler.GetRankings)
	route("GET /competitions/{id}/payouts", resultsHandler.GetDistributions)
	route("GET /competitions/{id}/pot", payoutHandler.GetPot)
	route("POST /competitions/{id}/pot", payoutHandler.FundPot)
	route("POST /competitions/{id}/payouts", payoutHandler.PayWinners)

	// Live feed
	route("GET /competitions/{id}/live", liveHandler.Subscribe)

	// Artist registry
	route("POST /artists", artistHandler.Register)
	route("GET /artists", artistHandler.List)
	route("GET /artists/me", artistHandler.GetMe)
	route("PATCH /artists/me", artistHandler.UpdateMe)
	route("GET /artists/{address}", artistHandler.Get)
	route("GET /artists/{address}/registered", artistHandler.HasRegistered)
	route("PUT /artists/{address}", artistHandler.Migrate)
	route("DELETE /artists/{address}", artistHandler.Remove)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("easel API v1"))
	})

	return middleware.CORS(cfg.CORSOrigins)(middleware.WithCaller(cfg.JWTSecret, mux))
}
