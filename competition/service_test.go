// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/easel/auth"
	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/models"
	"github.com/danielhkuo/easel/testutil"
	"github.com/danielhkuo/easel/token"
)

var errRejected = errors.New("rejected")

func createRequest(id string) models.CreateCompetitionRequest {
	return models.CreateCompetitionRequest{
		ID:              id,
		Description:     "Test competition",
		Token:           testutil.TestToken,
		SubmissionStart: testutil.SubmissionStart,
		SubmissionEnd:   testutil.SubmissionEnd,
		VoteStart:       testutil.VoteStart,
		VoteEnd:         testutil.VoteEnd,
	}
}

func TestCreateCompetition(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminCtx := testutil.AsCaller(testutil.Admin1)

	t.Run("default schedule", func(t *testing.T) {
		comp, err := env.Service.CreateCompetition(adminCtx, testutil.Admin1, createRequest("spring"))
		require.NoError(t, err)
		assert.Equal(t, models.DefaultShareSchedule, comp.ShareSchedule)
		assert.Empty(t, comp.Artists)
		assert.False(t, comp.Finalized)
		assert.Zero(t, comp.Pot)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := env.Service.CreateCompetition(adminCtx, testutil.Admin1, createRequest("spring"))
		assert.ErrorIs(t, err, competition.ErrAlreadyExists)
	})

	t.Run("non-admin", func(t *testing.T) {
		ctx := testutil.AsCaller("GOUTSIDER")
		_, err := env.Service.CreateCompetition(ctx, "GOUTSIDER", createRequest("summer"))
		assert.ErrorIs(t, err, competition.ErrUnauthorized)
	})

	t.Run("admin address without proof", func(t *testing.T) {
		ctx := testutil.AsCaller("GOUTSIDER")
		_, err := env.Service.CreateCompetition(ctx, testutil.Admin1, createRequest("summer"))
		assert.ErrorIs(t, err, competition.ErrUnauthorized)
	})

	windows := []struct {
		name   string
		mutate func(*models.CreateCompetitionRequest)
	}{
		{"empty submission window", func(r *models.CreateCompetitionRequest) { r.SubmissionEnd = r.SubmissionStart }},
		{"voting overlaps submissions", func(r *models.CreateCompetitionRequest) { r.VoteStart = r.SubmissionEnd }},
		{"voting ends before it starts", func(r *models.CreateCompetitionRequest) { r.VoteEnd = r.VoteStart - 1 }},
	}
	for _, tt := range windows {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest("windows")
			tt.mutate(&req)
			_, err := env.Service.CreateCompetition(adminCtx, testutil.Admin1, req)
			assert.ErrorIs(t, err, competition.ErrInvalidWindow)
		})
	}

	schedules := []struct {
		name     string
		schedule []uint32
	}{
		{"over 100", []uint32{60, 50}},
		{"zero slots over 100", []uint32{100, 0, 1}},
	}
	for _, tt := range schedules {
		t.Run("schedule "+tt.name, func(t *testing.T) {
			req := createRequest("schedules")
			req.ShareSchedule = tt.schedule
			_, err := env.Service.CreateCompetition(adminCtx, testutil.Admin1, req)
			assert.ErrorIs(t, err, competition.ErrInvalidInput)
		})
	}

	t.Run("schedule with a zero slot", func(t *testing.T) {
		req := createRequest("gapped")
		req.ShareSchedule = []uint32{50, 0, 20}
		comp, err := env.Service.CreateCompetition(adminCtx, testutil.Admin1, req)
		require.NoError(t, err)
		assert.Equal(t, []uint32{50, 0, 20}, comp.ShareSchedule)
	})
}

func TestSubmitArt(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")

	ctx := testutil.AsCaller("GOTHER")
	req := models.SubmitArtRequest{ArtistName: "Ada", ArtworkName: "Copy"}

	err := env.Service.SubmitArt(ctx, "spring", "GOTHER", req)
	assert.ErrorIs(t, err, competition.ErrAlreadyExists)

	err = env.Service.SubmitArt(ctx, "missing", "GOTHER", models.SubmitArtRequest{ArtistName: "Other", ArtworkName: "x"})
	assert.ErrorIs(t, err, competition.ErrNotFound)

	env.Clock.Set(testutil.SubmissionEnd + 1)
	err = env.Service.SubmitArt(ctx, "spring", "GOTHER", models.SubmitArtRequest{ArtistName: "Other", ArtworkName: "x"})
	assert.ErrorIs(t, err, competition.ErrStateViolation)

	artworks, err := env.Service.GetCompArtists(context.Background(), "spring")
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	assert.Equal(t, "Ada", artworks[0].Artist)
}

func TestVoteRules(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 5)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")
	env.SubmitTestArt(t, "spring", "GBASQUIAT", "Basquiat")
	env.Mint("GVOTER", 5)
	env.Mint("GPOOR", 4)
	ctx := testutil.AsCaller("GVOTER")

	t.Run("before the window", func(t *testing.T) {
		_, err := env.Service.Vote(ctx, "spring", "GVOTER", "Ada")
		assert.ErrorIs(t, err, competition.ErrNotEligible)
		assert.ErrorIs(t, err, competition.ErrStateViolation)
	})

	env.Clock.Set(testutil.VoteStart)

	t.Run("below minimum", func(t *testing.T) {
		_, err := env.Service.Vote(testutil.AsCaller("GPOOR"), "spring", "GPOOR", "Ada")
		assert.ErrorIs(t, err, competition.ErrNotEligible)
		assert.NotErrorIs(t, err, competition.ErrStateViolation)
	})

	t.Run("unknown artist", func(t *testing.T) {
		_, err := env.Service.Vote(ctx, "spring", "GVOTER", "Nobody")
		assert.ErrorIs(t, err, competition.ErrNotFound)
		assert.ErrorIs(t, err, competition.ErrUnknownArtist)
	})

	t.Run("voting as someone else", func(t *testing.T) {
		_, err := env.Service.Vote(ctx, "spring", "GPOOR", "Ada")
		assert.ErrorIs(t, err, competition.ErrUnauthorized)
	})

	t.Run("token service down", func(t *testing.T) {
		env.Ledger.FailBalance(errRejected)
		defer env.Ledger.FailBalance(nil)

		_, err := env.Service.Vote(ctx, "spring", "GVOTER", "Ada")
		assert.ErrorIs(t, err, competition.ErrExternalCall)
	})

	t.Run("first vote counts", func(t *testing.T) {
		rec, err := env.Service.Vote(ctx, "spring", "GVOTER", "Ada")
		require.NoError(t, err)
		assert.Equal(t, "Ada", rec.Artist)
		assert.Equal(t, uint64(testutil.VoteStart), rec.Timestamp)
		assert.NotEmpty(t, rec.ID)
	})

	t.Run("second vote rejected", func(t *testing.T) {
		_, err := env.Service.Vote(ctx, "spring", "GVOTER", "Basquiat")
		assert.ErrorIs(t, err, competition.ErrNotEligible)

		eligibility, err := env.Service.CheckEligibility(context.Background(), "spring", "GVOTER")
		require.NoError(t, err)
		assert.True(t, eligibility.HasVoted)
		assert.False(t, eligibility.CanVote)
		assert.Equal(t, uint64(5), eligibility.CurrentBalance)
	})

	rankings, err := env.Service.Rankings(context.Background(), "spring")
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, "Ada", rankings[0].Artist)
	assert.Equal(t, uint64(1), rankings[0].Votes)
	assert.True(t, rankings[0].IsWinner)
}

func TestRemoveArtistFreesVoters(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")
	env.SubmitTestArt(t, "spring", "GBASQUIAT", "Basquiat")

	_, err := env.Service.AddArtistInfo(testutil.AsCaller("GADA"), "GADA", models.ArtistInfoRequest{Name: "Ada"})
	require.NoError(t, err)

	env.Clock.Set(testutil.VoteStart)
	env.CastTestVote(t, "spring", "GVOTER", "Ada")
	env.CastTestVote(t, "spring", "GOTHER", "Basquiat")

	err = env.Service.RemoveArtist(testutil.AsCaller(testutil.Admin2), testutil.Admin2, "spring", "Ada")
	require.NoError(t, err)

	_, voted, err := env.Service.HasVoted(context.Background(), "spring", "GVOTER")
	require.NoError(t, err)
	assert.False(t, voted)

	records, err := env.Service.VoteHistory(context.Background(), "spring")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Basquiat", records[0].Artist)

	registered, err := env.Service.HasRegistered(context.Background(), "GADA")
	require.NoError(t, err)
	assert.False(t, registered)

	// The freed voter may vote again
	env.CastTestVote(t, "spring", "GVOTER", "Basquiat")
	rankings, err := env.Service.Rankings(context.Background(), "spring")
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	assert.Equal(t, uint64(2), rankings[0].Votes)

	err = env.Service.RemoveArtist(testutil.AsCaller(testutil.Admin2), testutil.Admin2, "spring", "Ada")
	assert.ErrorIs(t, err, competition.ErrUnknownArtist)
}

func TestFinalize(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")
	_, err := env.Service.AddArtistInfo(testutil.AsCaller("GADA"), "GADA", models.ArtistInfoRequest{Name: "Ada"})
	require.NoError(t, err)

	env.Clock.Set(testutil.VoteStart)
	env.CastTestVote(t, "spring", "GVOTER", "Ada")

	env.Clock.Set(testutil.VoteEnd)
	fired, err := env.Service.Finalize(context.Background(), "spring")
	require.NoError(t, err)
	assert.False(t, fired, "voting is still open at VoteEnd")

	env.Clock.Set(testutil.VoteEnd + 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.Service.Finalize(context.Background(), "spring")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fired, err = env.Service.Finalize(context.Background(), "spring")
	require.NoError(t, err)
	assert.False(t, fired)

	status, err := env.Service.GetCompetition(context.Background(), "spring")
	require.NoError(t, err)
	assert.True(t, status.IsFinalized)
	require.NotNil(t, status.Competition.Winner)
	assert.Equal(t, "Ada", *status.Competition.Winner)

	// Counters move exactly once however many callers raced
	profile, err := env.Service.GetArtistInfo(context.Background(), "GADA")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), profile.CompetitionsParticipated)
	assert.Equal(t, uint32(1), profile.CompetitionsWon)

	_, err = env.Service.UpdateShareSchedule(testutil.AsCaller(testutil.Admin1), testutil.Admin1, "spring", []uint32{100})
	assert.ErrorIs(t, err, competition.ErrStateViolation)
}

func TestFinalizeIgnoresCallerCancellation(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")
	env.Clock.Set(testutil.VoteStart)
	env.CastTestVote(t, "spring", "GVOTER", "Ada")
	env.Clock.Set(testutil.VoteEnd + 1)

	// Whoever triggers the shared attempt may already have gone away
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fired, err := env.Service.Finalize(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, fired)

	status, err := env.Service.GetCompetition(context.Background(), "spring")
	require.NoError(t, err)
	assert.True(t, status.IsFinalized)
}

func TestNoVotesKeepsPot(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "quiet", 0)
	env.SubmitTestArt(t, "quiet", "GADA", "Ada")
	env.FundTestPot(t, "quiet", "GSPONSOR", 50)

	env.Clock.Set(testutil.VoteEnd + 1)

	report, err := env.Service.PayWinners(context.Background(), "quiet")
	require.NoError(t, err)
	assert.Nil(t, report)

	status, err := env.Service.GetCompetition(context.Background(), "quiet")
	require.NoError(t, err)
	assert.True(t, status.IsFinalized)
	assert.Nil(t, status.Competition.Winner)
	assert.Equal(t, uint64(50), status.Competition.Pot)
	assert.Equal(t, uint64(50*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, testutil.Escrow))
}

// scoredEnv builds "spring" with Ada 3, Basquiat 3 and Cass 1 votes and a
// pot of 100, with the clock after voting
func scoredEnv(t *testing.T) *testutil.Env {
	t.Helper()

	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.SubmitTestArt(t, "spring", "GADA", "Ada")
	env.SubmitTestArt(t, "spring", "GBASQUIAT", "Basquiat")
	env.SubmitTestArt(t, "spring", "GCASS", "Cass")
	env.FundTestPot(t, "spring", "GSPONSOR", 100)

	env.Clock.Set(testutil.VoteStart)
	for i, artist := range []string{"Ada", "Basquiat", "Ada", "Basquiat", "Cass", "Ada", "Basquiat"} {
		env.CastTestVote(t, "spring", "GVOTER"+string(rune('A'+i)), artist)
	}
	env.Clock.Set(testutil.VoteEnd + 1)
	return env
}

func TestPayWinners(t *testing.T) {
	env := scoredEnv(t)

	_, err := env.Service.PayWinners(context.Background(), "missing")
	assert.ErrorIs(t, err, competition.ErrNotFound)

	report, err := env.Service.PayWinners(context.Background(), "spring")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, uint64(100), report.TotalPaid)
	assert.Equal(t, uint32(7), report.Decimals)
	assert.Equal(t, uint64(testutil.VoteEnd+1), report.DistributedAt)

	assert.Equal(t, uint64(40*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, "GADA"))
	assert.Equal(t, uint64(40*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, "GBASQUIAT"))
	assert.Equal(t, uint64(20*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, "GCASS"))

	again, err := env.Service.PayWinners(context.Background(), "spring")
	require.NoError(t, err)
	assert.Nil(t, again)

	reports, err := env.Service.Distributions(context.Background(), "spring")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
	assert.Len(t, reports[0].Payments, 3)
}

func TestPayWinnersAbortsBeforeClaiming(t *testing.T) {
	t.Run("decimals unavailable", func(t *testing.T) {
		env := scoredEnv(t)
		env.Ledger.FailDecimals(errRejected)

		_, err := env.Service.PayWinners(context.Background(), "spring")
		assert.ErrorIs(t, err, competition.ErrExternalCall)

		pot, err := env.Service.GetPot(context.Background(), "spring")
		require.NoError(t, err)
		assert.Equal(t, uint64(100), pot)

		env.Ledger.FailDecimals(nil)
		report, err := env.Service.PayWinners(context.Background(), "spring")
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, uint64(100), report.TotalPaid)
	})

	t.Run("pot overflows minor units", func(t *testing.T) {
		env := scoredEnv(t)
		env.Ledger.SetDecimals(testutil.TestToken, 19)

		_, err := env.Service.PayWinners(context.Background(), "spring")
		assert.ErrorIs(t, err, competition.ErrOverflow)

		pot, err := env.Service.GetPot(context.Background(), "spring")
		require.NoError(t, err)
		assert.Equal(t, uint64(100), pot)
	})
}

func TestPayWinnersBeforeVotingEnds(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)

	env.Clock.Set(testutil.VoteEnd)
	_, err := env.Service.PayWinners(context.Background(), "spring")
	assert.ErrorIs(t, err, competition.ErrStateViolation)
}

func TestFundAndDeleteRollBack(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.Mint("GSPONSOR", 10)
	ctx := testutil.AsCaller("GSPONSOR")

	pot, err := env.Service.FundPot(ctx, "spring", "GSPONSOR", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pot)

	_, err = env.Service.FundPot(ctx, "spring", "GSPONSOR", 1)
	assert.ErrorIs(t, err, competition.ErrExternalCall)
	pot, err = env.Service.GetPot(context.Background(), "spring")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pot, "a failed transfer must not grow the pot")

	adminCtx := testutil.AsCaller(testutil.Admin1)
	env.Ledger.FailTransfersTo(testutil.Admin1, errRejected)
	_, err = env.Service.DeleteCompetition(adminCtx, testutil.Admin1, "spring")
	assert.ErrorIs(t, err, competition.ErrExternalCall)

	status, err := env.Service.GetCompetition(context.Background(), "spring")
	require.NoError(t, err, "a failed refund must keep the competition")
	assert.Equal(t, uint64(10), status.Competition.Pot)

	env.Ledger.FailTransfersTo(testutil.Admin1, nil)
	refunded, err := env.Service.DeleteCompetition(adminCtx, testutil.Admin1, "spring")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), refunded)
	assert.Equal(t, uint64(10*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, testutil.Admin1))

	_, err = env.Service.GetCompetition(context.Background(), "spring")
	assert.ErrorIs(t, err, competition.ErrNotFound)
}

// cancelAfterTransfer cancels the caller's context once a transfer to
// address has gone through, as when a client disconnects mid-request
type cancelAfterTransfer struct {
	*token.Ledger
	address string
	cancel  context.CancelFunc
}

func (c cancelAfterTransfer) Transfer(ctx context.Context, tok, from, to string, amount uint64) error {
	err := c.Ledger.Transfer(ctx, tok, from, to, amount)
	if err == nil && to == c.address {
		c.cancel()
	}
	return err
}

func serviceWithTokens(env *testutil.Env, tokens competition.TokenService) *competition.Service {
	return competition.NewService(competition.Dependencies{
		Store:         env.Store,
		Tokens:        tokens,
		Auth:          auth.Authorizer{},
		Clock:         env.Clock,
		EscrowAddress: env.Config.EscrowAddress,
	})
}

func TestRefundSurvivesCancelledCaller(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.FundTestPot(t, "spring", "GSPONSOR", 10)

	ctx, cancel := context.WithCancel(testutil.AsCaller(testutil.Admin1))
	defer cancel()
	svc := serviceWithTokens(env, cancelAfterTransfer{Ledger: env.Ledger, address: testutil.Admin1, cancel: cancel})

	refunded, err := svc.DeleteCompetition(ctx, testutil.Admin1, "spring")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), refunded)
	assert.Equal(t, uint64(10*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, testutil.Admin1))

	_, err = env.Service.GetCompetition(context.Background(), "spring")
	assert.ErrorIs(t, err, competition.ErrNotFound)

	_, err = env.Service.DeleteCompetition(testutil.AsCaller(testutil.Admin1), testutil.Admin1, "spring")
	assert.ErrorIs(t, err, competition.ErrNotFound)
	assert.Equal(t, uint64(10*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, testutil.Admin1),
		"the pot is refunded once")
	assert.Zero(t, env.Ledger.BalanceOf(testutil.TestToken, testutil.Escrow))
}

func TestFundingSurvivesCancelledCaller(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "spring", 0)
	env.Mint("GSPONSOR", 10)

	ctx, cancel := context.WithCancel(testutil.AsCaller("GSPONSOR"))
	defer cancel()
	svc := serviceWithTokens(env, cancelAfterTransfer{Ledger: env.Ledger, address: testutil.Escrow, cancel: cancel})

	pot, err := svc.FundPot(ctx, "spring", "GSPONSOR", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pot)

	pot, err = env.Service.GetPot(context.Background(), "spring")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pot)
	assert.Equal(t, uint64(10*testutil.Unit), env.Ledger.BalanceOf(testutil.TestToken, testutil.Escrow))
}

func TestActiveCompetitions(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "first", 0)
	env.CreateTestCompetition(t, "second", 0)

	active, err := env.Service.ActiveCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].ID)
	assert.True(t, active[0].IsSubmissionActive)

	env.Clock.Set(testutil.VoteEnd + 86400)
	active, err = env.Service.ActiveCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2, "ended competitions stay listed for a day")
	assert.True(t, active[1].IsFinalized)

	env.Clock.Set(testutil.VoteEnd + 86401)
	active, err = env.Service.ActiveCompetitions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestFinalizerRunOnce(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.CreateTestCompetition(t, "early", 0)

	late := createRequest("late")
	late.VoteEnd = testutil.VoteEnd + 1000
	_, err := env.Service.CreateCompetition(testutil.AsCaller(testutil.Admin1), testutil.Admin1, late)
	require.NoError(t, err)

	finalizer := competition.Finalizer{Service: env.Service}

	count, err := finalizer.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	env.Clock.Set(testutil.VoteEnd + 1)
	count, err = finalizer.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = finalizer.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	env.Clock.Set(testutil.VoteEnd + 1001)
	count, err = finalizer.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistry(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adaCtx := testutil.AsCaller("GADA")

	_, err := env.Service.AddArtistInfo(adaCtx, "GADA", models.ArtistInfoRequest{Name: "Ada"})
	require.NoError(t, err)

	_, err = env.Service.AddArtistInfo(adaCtx, "GADA", models.ArtistInfoRequest{Name: "Ada II"})
	assert.ErrorIs(t, err, competition.ErrAlreadyExists)

	_, err = env.Service.AddArtistInfo(testutil.AsCaller("GCOPY"), "GCOPY", models.ArtistInfoRequest{Name: "Ada"})
	assert.ErrorIs(t, err, competition.ErrAlreadyExists)

	adminCtx := testutil.AsCaller(testutil.Admin1)
	_, err = env.Service.MigrateArtist(adminCtx, testutil.Admin1, "GCOPY", models.ArtistProfile{Name: "Ada"})
	assert.ErrorIs(t, err, competition.ErrAlreadyExists)

	// Migrating onto an existing address overwrites it, counters included
	migrated, err := env.Service.MigrateArtist(adminCtx, testutil.Admin1, "GADA",
		models.ArtistProfile{Name: "Ada", Registered: true, CompetitionsWon: 3})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), migrated.CompetitionsWon)
	assert.NotNil(t, migrated.Mediums)

	profiles, err := env.Service.GetArtists(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	err = env.Service.RemoveRegisteredArtist(adminCtx, testutil.Admin1, "GNOBODY")
	assert.ErrorIs(t, err, competition.ErrNotFound)
}

func TestAdmins(t *testing.T) {
	env := testutil.NewTestEnv(t)

	// A stored pair wins over a different configuration
	admins, err := env.Service.InitAdmins(context.Background(), "GOTHER1", "GOTHER2")
	require.NoError(t, err)
	assert.Equal(t, testutil.Admin1, admins.Admin1)

	_, err = env.Service.InitAdmins(context.Background(), "", "GOTHER2")
	assert.ErrorIs(t, err, competition.ErrInvalidInput)

	successor := "GSUCCESSOR"
	updated, err := env.Service.UpdateAdmins(testutil.AsCaller(testutil.Admin2), testutil.Admin2,
		models.UpdateAdminsRequest{Admin2: &successor})
	require.NoError(t, err)
	assert.Equal(t, testutil.Admin1, updated.Admin1)
	assert.Equal(t, successor, updated.Admin2)

	_, err = env.Service.CreateCompetition(testutil.AsCaller(testutil.Admin2), testutil.Admin2, createRequest("spring"))
	assert.ErrorIs(t, err, competition.ErrUnauthorized)

	_, err = env.Service.CreateCompetition(testutil.AsCaller(successor), successor, createRequest("spring"))
	assert.NoError(t, err)
}
