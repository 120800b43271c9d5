// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/db"
	"github.com/danielhkuo/easel/models"
	"github.com/danielhkuo/easel/testutil"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(testutil.SetupTestDB(t), db.DriverSQLite)
}

func newCompetition(id string) models.Competition {
	return models.Competition{
		ID:              id,
		Description:     "Still lifes",
		Token:           testutil.TestToken,
		SubmissionStart: 10,
		SubmissionEnd:   20,
		VoteStart:       30,
		VoteEnd:         40,
		MinVoteTokens:   2,
		Artists:         []models.Submission{},
		Votes:           map[string]uint64{},
		VoteLog:         map[string]string{},
		ArtistMetadata:  map[string][]models.ArtworkMetadata{},
		ShareSchedule:   []uint32{60, 40},
	}
}

func TestCompetitionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.InsertCompetition(ctx, newCompetition("b")))
	require.NoError(t, store.InsertCompetition(ctx, newCompetition("a")))

	err := store.InsertCompetition(ctx, newCompetition("a"))
	assert.ErrorIs(t, err, competition.ErrAlreadyExists)

	ids, err := store.ListCompetitionIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids, "ids come back in creation order")

	comp, err := store.GetCompetition(ctx, "a")
	require.NoError(t, err)
	comp.Pot = 75
	comp.Artists = append(comp.Artists,
		models.Submission{Name: "Ada", Address: "GADA"},
		models.Submission{Name: "Basquiat", Address: "GBASQUIAT"},
	)
	comp.ArtistMetadata["Ada"] = []models.ArtworkMetadata{
		{ArtworkName: "Engine", ImgURL: "https://img.example/engine.png"},
		{ArtworkName: "Loom"},
	}
	comp.ArtistMetadata["Basquiat"] = []models.ArtworkMetadata{{ArtworkName: "Crown"}}
	comp.Votes["Basquiat"] = 2
	comp.VoteLog["GV1"] = "Basquiat"
	comp.VoteLog["GV2"] = "Basquiat"
	require.NoError(t, store.SaveCompetition(ctx, comp))

	loaded, err := store.GetCompetition(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, comp.Artists, loaded.Artists)
	assert.Equal(t, map[string]uint64{"Basquiat": 2}, loaded.Votes)
	assert.Equal(t, comp.VoteLog, loaded.VoteLog)
	assert.Equal(t, comp.ArtistMetadata, loaded.ArtistMetadata)
	assert.Equal(t, []uint32{60, 40}, loaded.ShareSchedule)
	assert.Equal(t, uint64(75), loaded.Pot)
	assert.Equal(t, uint64(40), loaded.VoteEnd)
	assert.Nil(t, loaded.Winner)

	exists, err := store.CompetitionExists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.DeleteCompetition(ctx, "a"))
	_, err = store.GetCompetition(ctx, "a")
	assert.ErrorIs(t, err, competition.ErrNotFound)
	assert.ErrorIs(t, store.DeleteCompetition(ctx, "a"), competition.ErrNotFound)
	assert.ErrorIs(t, store.SaveCompetition(ctx, comp), competition.ErrNotFound)
}

func TestMarkFinalizedOnce(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.InsertCompetition(ctx, newCompetition("spring")))

	winner := "Ada"
	ok, err := store.MarkFinalized(ctx, "spring", &winner)
	require.NoError(t, err)
	assert.True(t, ok)

	other := "Basquiat"
	ok, err = store.MarkFinalized(ctx, "spring", &other)
	require.NoError(t, err)
	assert.False(t, ok)

	comp, err := store.GetCompetition(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, comp.Finalized)
	require.NotNil(t, comp.Winner)
	assert.Equal(t, "Ada", *comp.Winner)

	// SaveCompetition leaves finalization alone
	comp.Finalized = false
	comp.Winner = nil
	require.NoError(t, store.SaveCompetition(ctx, comp))
	comp, err = store.GetCompetition(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, comp.Finalized)
	assert.NotNil(t, comp.Winner)
}

func TestClaimPot(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	comp := newCompetition("spring")
	comp.Pot = 100
	require.NoError(t, store.InsertCompetition(ctx, comp))

	ok, err := store.ClaimPot(ctx, "spring", 99)
	require.NoError(t, err)
	assert.False(t, ok, "a stale expected pot must not claim")

	ok, err = store.ClaimPot(ctx, "spring", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ClaimPot(ctx, "spring", 0)
	require.NoError(t, err)
	assert.False(t, ok, "an empty pot cannot be claimed")
}

func TestVoteRecords(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.InsertCompetition(ctx, newCompetition("spring")))

	records := []models.VoteRecord{
		{ID: "r1", CompetitionID: "spring", Voter: "GV1", Artist: "Ada", Timestamp: 31},
		{ID: "r2", CompetitionID: "spring", Voter: "GV2", Artist: "Basquiat", Timestamp: 31},
		{ID: "r3", CompetitionID: "spring", Voter: "GV3", Artist: "Ada", Timestamp: 35},
	}
	for _, rec := range records {
		require.NoError(t, store.AppendVoteRecord(ctx, rec))
	}
	assert.ErrorIs(t, store.AppendVoteRecord(ctx, records[0]), competition.ErrAlreadyExists)

	listed, err := store.ListVoteRecords(ctx, "spring")
	require.NoError(t, err)
	assert.Equal(t, records, listed)

	require.NoError(t, store.DeleteVoteRecords(ctx, "spring", "Ada"))
	listed, err = store.ListVoteRecords(ctx, "spring")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "r2", listed[0].ID)

	empty, err := store.ListVoteRecords(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.GetProfile(ctx, "GADA")
	assert.ErrorIs(t, err, competition.ErrNotFound)

	profile := models.ArtistProfile{
		Address:    "GADA",
		Registered: true,
		Name:       "Ada",
		Mediums:    []models.Medium{{Name: "ink", Description: "pen"}},
		Networks:   []models.Network{},
	}
	require.NoError(t, store.SaveProfile(ctx, profile))

	profile.CompetitionsParticipated = 2
	profile.Bio = "Engines"
	require.NoError(t, store.SaveProfile(ctx, profile))

	loaded, err := store.GetProfile(ctx, "GADA")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)

	taken, err := store.NameTaken(ctx, "Ada", "GOTHER")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = store.NameTaken(ctx, "Ada", "GADA")
	require.NoError(t, err)
	assert.False(t, taken, "a profile does not collide with itself")

	profiles, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	require.NoError(t, store.DeleteProfile(ctx, "GADA"))
	assert.ErrorIs(t, store.DeleteProfile(ctx, "GADA"), competition.ErrNotFound)
}

func TestAdminsRow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	admins, err := store.GetAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Admins{}, admins)

	require.NoError(t, store.SaveAdmins(ctx, models.Admins{Admin1: "GA", Admin2: "GB"}))
	require.NoError(t, store.SaveAdmins(ctx, models.Admins{Admin1: "GA", Admin2: "GC"}))

	admins, err = store.GetAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Admins{Admin1: "GA", Admin2: "GC"}, admins)
}

func TestDistributions(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.InsertCompetition(ctx, newCompetition("spring")))

	report := models.DistributionReport{
		ID:            "d1",
		CompetitionID: "spring",
		Pot:           100,
		Decimals:      7,
		Payments: []models.Payment{
			{Artist: "Ada", Address: "GADA", Phase: models.PhasePrize, Amount: 100, MinorAmount: 1_000_000_000, Paid: true},
		},
		TotalPaid:     100,
		DistributedAt: 41,
	}
	require.NoError(t, store.SaveDistribution(ctx, report))

	reports, err := store.ListDistributions(ctx, "spring")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report, reports[0])

	// Deleting a competition drops its reports
	require.NoError(t, store.DeleteCompetition(ctx, "spring"))
	reports, err = store.ListDistributions(ctx, "spring")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	errAbort := errors.New("abort")

	err := store.WithTx(ctx, func(tx competition.Store) error {
		if err := tx.InsertCompetition(ctx, newCompetition("spring")); err != nil {
			return err
		}
		// Nested calls join the outer transaction
		return tx.WithTx(ctx, func(inner competition.Store) error {
			exists, err := inner.CompetitionExists(ctx, "spring")
			if err != nil {
				return err
			}
			if !exists {
				return errors.New("insert not visible inside the transaction")
			}
			return errAbort
		})
	})
	assert.ErrorIs(t, err, errAbort)

	exists, err := store.CompetitionExists(ctx, "spring")
	require.NoError(t, err)
	assert.False(t, exists)

	err = store.WithTx(ctx, func(tx competition.Store) error {
		return tx.InsertCompetition(ctx, newCompetition("spring"))
	})
	require.NoError(t, err)

	exists, err = store.CompetitionExists(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, exists)
}
