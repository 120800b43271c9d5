// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/easel/auth"
	"github.com/danielhkuo/easel/cliparse"
	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/db"
	"github.com/danielhkuo/easel/models"
	"github.com/danielhkuo/easel/realtime"
	"github.com/danielhkuo/easel/token"
)

// Identities and token used across tests
const (
	Admin1    = "GADMINONE"
	Admin2    = "GADMINTWO"
	Escrow    = "GESCROW"
	TestToken = "USDC"
)

// Default competition windows, in unix seconds
const (
	SubmissionStart = 1000
	SubmissionEnd   = 2000
	VoteStart       = 3000
	VoteEnd         = 4000
)

// Unit is one whole TestToken in minor units at the ledger's default
// decimals
const Unit = 10_000_000

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Open(db.DriverSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     db.DriverSQLite,
		JWTSecret:        "test-jwt-secret",
		Admin1:           Admin1,
		Admin2:           Admin2,
		EscrowAddress:    Escrow,
		DevLedger:        true,
		FinalizeInterval: time.Second,
		CORSOrigins:      []string{"*"},
	}
}

// FakeClock is a settable competition.Clock
type FakeClock struct {
	now atomic.Uint64
}

func NewFakeClock(now uint64) *FakeClock {
	c := &FakeClock{}
	c.now.Store(now)
	return c
}

func (c *FakeClock) Now() uint64 { return c.now.Load() }

func (c *FakeClock) Set(now uint64) { c.now.Store(now) }

// Env bundles a service wired to a test database and an in-memory ledger
type Env struct {
	DB      *sql.DB
	Store   *db.Store
	Ledger  *token.Ledger
	Clock   *FakeClock
	Hub     *realtime.Hub
	Service *competition.Service
	Config  cliparse.Config
}

// NewTestEnv builds an Env with admins initialized and the clock at
// SubmissionStart
func NewTestEnv(t *testing.T) *Env {
	t.Helper()

	conn := SetupTestDB(t)
	cfg := GetTestConfig()
	env := &Env{
		DB:     conn,
		Store:  db.NewStore(conn, db.DriverSQLite),
		Ledger: token.NewLedger(),
		Clock:  NewFakeClock(SubmissionStart),
		Hub:    realtime.NewHub(),
		Config: cfg,
	}
	env.Service = competition.NewService(competition.Dependencies{
		Store:         env.Store,
		Tokens:        env.Ledger,
		Auth:          auth.Authorizer{},
		Clock:         env.Clock,
		Notifier:      env.Hub,
		EscrowAddress: cfg.EscrowAddress,
	})

	if _, err := env.Service.InitAdmins(context.Background(), cfg.Admin1, cfg.Admin2); err != nil {
		t.Fatalf("Failed to init admins: %v", err)
	}
	return env
}

// AsCaller returns a context authenticated as address
func AsCaller(address string) context.Context {
	return auth.WithCaller(context.Background(), address)
}

// CreateTestCompetition creates a competition with the default windows
func (e *Env) CreateTestCompetition(t *testing.T, id string, minVoteTokens uint64) models.Competition {
	t.Helper()

	comp, err := e.Service.CreateCompetition(AsCaller(Admin1), Admin1, models.CreateCompetitionRequest{
		ID:              id,
		Description:     "Test competition",
		Token:           TestToken,
		SubmissionStart: SubmissionStart,
		SubmissionEnd:   SubmissionEnd,
		VoteStart:       VoteStart,
		VoteEnd:         VoteEnd,
		MinVoteTokens:   minVoteTokens,
	})
	if err != nil {
		t.Fatalf("Failed to create test competition: %v", err)
	}
	return comp
}

// SubmitTestArt submits one artwork for artist from address. The clock must
// be inside the submission window.
func (e *Env) SubmitTestArt(t *testing.T, id, address, artist string) {
	t.Helper()

	err := e.Service.SubmitArt(AsCaller(address), id, address, models.SubmitArtRequest{
		ArtistName:  artist,
		ArtworkName: artist + " artwork",
		ImgURL:      "https://img.example/" + artist + ".png",
	})
	if err != nil {
		t.Fatalf("Failed to submit art: %v", err)
	}
}

// Mint credits whole units of TestToken to address
func (e *Env) Mint(address string, units uint64) {
	e.Ledger.Mint(TestToken, address, units*Unit)
}

// CastTestVote mints enough balance for voter and votes for artist. The
// clock must be inside the voting window.
func (e *Env) CastTestVote(t *testing.T, id, voter, artist string) {
	t.Helper()

	e.Mint(voter, 10)
	if _, err := e.Service.Vote(AsCaller(voter), id, voter, artist); err != nil {
		t.Fatalf("Failed to vote: %v", err)
	}
}

// FundTestPot mints units for funder and funds the pot with them
func (e *Env) FundTestPot(t *testing.T, id, funder string, units uint64) {
	t.Helper()

	e.Mint(funder, units)
	if _, err := e.Service.FundPot(AsCaller(funder), id, funder, units); err != nil {
		t.Fatalf("Failed to fund pot: %v", err)
	}
}

// BearerToken returns an Authorization header value for address
func BearerToken(t *testing.T, cfg cliparse.Config, address string) string {
	t.Helper()

	tok, err := auth.IssueToken(cfg.JWTSecret, address, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return "Bearer " + tok
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
