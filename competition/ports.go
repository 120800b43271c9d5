// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"time"

	"github.com/danielhkuo/easel/models"
)

// Store persists competitions and the registries around them.
// Lookups of missing records return an error wrapping ErrNotFound.
type Store interface {
	// WithTx runs fn against a transactional view of the store. fn's error
	// rolls the transaction back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	GetCompetition(ctx context.Context, id string) (models.Competition, error)
	CompetitionExists(ctx context.Context, id string) (bool, error)
	// ListCompetitionIDs returns ids in creation order
	ListCompetitionIDs(ctx context.Context) ([]string, error)
	InsertCompetition(ctx context.Context, comp models.Competition) error
	// SaveCompetition writes back everything except the finalized flag and
	// winner, which only MarkFinalized may change.
	SaveCompetition(ctx context.Context, comp models.Competition) error
	DeleteCompetition(ctx context.Context, id string) error
	// MarkFinalized sets finalized and winner only if the competition is
	// not finalized yet. It reports whether this call made the change.
	MarkFinalized(ctx context.Context, id string, winner *string) (bool, error)
	// ClaimPot zeroes the pot only if it still equals expected.
	ClaimPot(ctx context.Context, id string, expected uint64) (bool, error)

	AppendVoteRecord(ctx context.Context, rec models.VoteRecord) error
	ListVoteRecords(ctx context.Context, competitionID string) ([]models.VoteRecord, error)
	DeleteVoteRecords(ctx context.Context, competitionID, artist string) error

	GetProfile(ctx context.Context, address string) (models.ArtistProfile, error)
	ListProfiles(ctx context.Context) ([]models.ArtistProfile, error)
	// NameTaken reports whether a profile other than exceptAddress uses name
	NameTaken(ctx context.Context, name, exceptAddress string) (bool, error)
	SaveProfile(ctx context.Context, p models.ArtistProfile) error
	DeleteProfile(ctx context.Context, address string) error

	GetAdmins(ctx context.Context) (models.Admins, error)
	SaveAdmins(ctx context.Context, a models.Admins) error

	SaveDistribution(ctx context.Context, report models.DistributionReport) error
	ListDistributions(ctx context.Context, competitionID string) ([]models.DistributionReport, error)
}

// TokenService is the fungible-token ledger prizes are paid in.
// Amounts are minor units.
type TokenService interface {
	Decimals(ctx context.Context, token string) (uint32, error)
	Balance(ctx context.Context, token, address string) (uint64, error)
	Transfer(ctx context.Context, token, from, to string, amount uint64) error
}

// Authorizer fails unless the caller has proven control of identity
type Authorizer interface {
	Require(ctx context.Context, identity string) error
}

// Clock returns the current ledger time in unix seconds
type Clock interface {
	Now() uint64
}

// Notifier receives lifecycle events after they are committed
type Notifier interface {
	Publish(event models.LiveEvent)
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() uint64 { return uint64(time.Now().Unix()) }

// ClockFunc adapts a function to Clock
type ClockFunc func() uint64

func (f ClockFunc) Now() uint64 { return f() }
