// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "route"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "easel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "route"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "easel_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "route"},
	)

	VotesCast = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easel_votes_cast_total",
			Help: "Total number of accepted votes",
		},
	)

	// Finalizations counts finalized competitions by outcome (winner, no_winner)
	Finalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_finalizations_total",
			Help: "Total number of finalized competitions",
		},
		[]string{"outcome"},
	)

	// Payouts counts prize transfers by phase and outcome (paid, failed)
	Payouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_payouts_total",
			Help: "Total number of prize transfers attempted",
		},
		[]string{"phase", "outcome"},
	)

	// PayoutAmount sums whole token units paid to artists
	PayoutAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easel_payout_amount_total",
			Help: "Total whole token units paid out",
		},
	)

	// TokenCalls counts token service calls by operation and outcome
	TokenCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_token_calls_total",
			Help: "Total number of token service calls",
		},
		[]string{"operation", "outcome"},
	)

	// LiveClients tracks connected websocket clients
	LiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "easel_live_clients",
			Help: "Number of connected live update clients",
		},
	)
)
