// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/easel/models"
	"github.com/danielhkuo/easel/testutil"
)

// TestFullCompetitionWorkflow tests the complete end-to-end workflow:
// 1. Artists register profiles
// 2. Admin creates a competition
// 3. A sponsor funds the pot
// 4. Artists submit art
// 5. Voters vote
// 6. Reading the competition after voting finalizes it
// 7. Anyone pays the winners
// 8. Profiles show participation and wins
func TestFullCompetitionWorkflow(t *testing.T) {
	env := testutil.NewTestEnv(t)
	competitions := NewCompetitionHandler(env.Service)
	submissions := NewSubmissionHandler(env.Service)
	voting := NewVotingHandler(env.Service)
	payouts := NewPayoutHandler(env.Service)
	artists := NewArtistHandler(env.Service)

	// Step 1: register two of the three artists
	for address, name := range map[string]string{"GMONET": "Monet", "GMORISOT": "Morisot"} {
		req := newRequest("POST", "/artists", models.ArtistInfoRequest{Name: name}, address)
		w := httptest.NewRecorder()
		artists.Register(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 1 - Register %s failed: %d - %s", name, w.Code, w.Body.String())
		}
	}

	// Step 2: create competition with a two-place schedule
	create := validCreateRequest("salon")
	create.MinVoteTokens = 1
	create.ShareSchedule = []uint32{70, 30}
	req := newRequest("POST", "/competitions", create, testutil.Admin1)
	w := httptest.NewRecorder()
	competitions.CreateCompetition(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 3: fund the pot
	env.Mint("GPATRON", 1000)
	req = newRequest("POST", "/competitions/salon/pot", models.FundPotRequest{Amount: 1000}, "GPATRON")
	req.SetPathValue("id", "salon")
	w = httptest.NewRecorder()
	payouts.FundPot(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Fund failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: submissions
	entries := []struct{ address, artist string }{
		{"GMONET", "Monet"},
		{"GMORISOT", "Morisot"},
		{"GCASSATT", "Cassatt"},
	}
	for _, e := range entries {
		req := newRequest("POST", "/competitions/salon/submissions",
			models.SubmitArtRequest{ArtistName: e.artist, ArtworkName: e.artist + " study"}, e.address)
		req.SetPathValue("id", "salon")
		w := httptest.NewRecorder()
		submissions.SubmitArt(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Submit %s failed: %d - %s", e.artist, w.Code, w.Body.String())
		}
	}

	// Step 5: Morisot 3, Monet 2, Cassatt 1
	env.Clock.Set(testutil.VoteStart + 1)
	votes := []string{"Morisot", "Monet", "Morisot", "Cassatt", "Monet", "Morisot"}
	for i, artist := range votes {
		voter := "GVOTER" + string(rune('A'+i))
		env.Mint(voter, 1)
		req := newRequest("POST", "/competitions/salon/votes", models.VoteRequest{Artist: artist}, voter)
		req.SetPathValue("id", "salon")
		w := httptest.NewRecorder()
		voting.Vote(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 5 - Vote %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}

	// Step 6: reading after the window finalizes
	env.Clock.Set(testutil.VoteEnd + 60)
	req = newRequest("GET", "/competitions/salon", nil, "")
	req.SetPathValue("id", "salon")
	w = httptest.NewRecorder()
	competitions.GetCompetition(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status models.CompetitionStatus
	testutil.AssertJSON(t, w, &status)
	if !status.IsFinalized || status.Competition.Winner == nil || *status.Competition.Winner != "Morisot" {
		t.Fatalf("Step 6 - Expected Morisot to win, got %+v", status.Competition.Winner)
	}

	// Step 7: payout, 700 to Morisot and 300 to Monet
	req = newRequest("POST", "/competitions/salon/payouts", nil, "")
	req.SetPathValue("id", "salon")
	w = httptest.NewRecorder()
	payouts.PayWinners(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	expected := map[string]uint64{"GMORISOT": 700, "GMONET": 300, "GCASSATT": 0}
	for address, units := range expected {
		if got := env.Ledger.BalanceOf(testutil.TestToken, address); got != units*testutil.Unit {
			t.Errorf("Step 7 - Expected %s to hold %d, got %d", address, units*testutil.Unit, got)
		}
	}
	if got := env.Ledger.BalanceOf(testutil.TestToken, testutil.Escrow); got != 0 {
		t.Errorf("Step 7 - Expected empty escrow, got %d", got)
	}

	// Step 8: counters only move for registered artists
	morisot, err := env.Service.GetArtistInfo(context.Background(), "GMORISOT")
	if err != nil {
		t.Fatal(err)
	}
	if morisot.CompetitionsParticipated != 1 || morisot.CompetitionsWon != 1 {
		t.Errorf("Step 8 - Unexpected Morisot counters: %+v", morisot)
	}
	monet, err := env.Service.GetArtistInfo(context.Background(), "GMONET")
	if err != nil {
		t.Fatal(err)
	}
	if monet.CompetitionsParticipated != 1 || monet.CompetitionsWon != 0 {
		t.Errorf("Step 8 - Unexpected Monet counters: %+v", monet)
	}
	if registered, _ := env.Service.HasRegistered(context.Background(), "GCASSATT"); registered {
		t.Error("Step 8 - Cassatt should not have gained a profile")
	}
}

// TestLateActionsRejected checks that a finalized competition no longer
// accepts votes, funding or edits
func TestLateActionsRejected(t *testing.T) {
	env := setupScoredCompetition(t)
	voting := NewVotingHandler(env.Service)
	payouts := NewPayoutHandler(env.Service)
	submissions := NewSubmissionHandler(env.Service)

	if _, err := env.Service.Finalize(context.Background(), "spring"); err != nil {
		t.Fatal(err)
	}

	env.Mint("GLATE", 10)
	req := newRequest("POST", "/competitions/spring/votes", models.VoteRequest{Artist: "Cass"}, "GLATE")
	req.SetPathValue("id", "spring")
	w := httptest.NewRecorder()
	voting.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	req = newRequest("POST", "/competitions/spring/pot", models.FundPotRequest{Amount: 5}, "GLATE")
	req.SetPathValue("id", "spring")
	w = httptest.NewRecorder()
	payouts.FundPot(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	name := "Rewrite"
	req = newRequest("PATCH", "/competitions/spring/submissions/Ada", models.UpdateSubmissionRequest{ArtworkName: &name}, "GADA")
	req.SetPathValue("id", "spring")
	req.SetPathValue("artist", "Ada")
	w = httptest.NewRecorder()
	submissions.UpdateSubmission(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	req = newRequest("DELETE", "/competitions/spring/submissions/Ada", nil, testutil.Admin1)
	req.SetPathValue("id", "spring")
	req.SetPathValue("artist", "Ada")
	w = httptest.NewRecorder()
	submissions.RemoveArtist(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}
