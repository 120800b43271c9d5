// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"

	"github.com/danielhkuo/easel/metrics"
	"github.com/danielhkuo/easel/models"
)

// CheckEligibility reports whether voter could vote right now
func (s *Service) CheckEligibility(ctx context.Context, id, voter string) (models.VotingEligibility, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return models.VotingEligibility{}, err
	}
	return evaluateEligibility(ctx, s.tokens, comp, voter, s.clock.Now())
}

// Vote casts voter's single vote for artist. The vote log entry, the tally
// and the history record are written in one transaction.
func (s *Service) Vote(ctx context.Context, id, voter, artist string) (models.VoteRecord, error) {
	if err := s.auth.Require(ctx, voter); err != nil {
		return models.VoteRecord{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	var (
		rec   models.VoteRecord
		votes uint64
	)
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}

		if _, voted := comp.VoteLog[voter]; voted {
			return fmt.Errorf("%w: %s has already voted", ErrNotEligible, voter)
		}

		now := s.clock.Now()
		if !votingActive(comp, now) {
			return fmt.Errorf("%w: %w: voting is not active", ErrNotEligible, ErrStateViolation)
		}

		eligibility, err := evaluateEligibility(ctx, s.tokens, comp, voter, now)
		if err != nil {
			return err
		}
		if !eligibility.CanVote {
			return fmt.Errorf("%w: balance %d below minimum %d",
				ErrNotEligible, eligibility.CurrentBalance, eligibility.MinRequired)
		}

		if _, ok := comp.ArtistAddress(artist); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownArtist, artist)
		}

		comp.VoteLog[voter] = artist
		comp.Votes[artist]++
		votes = comp.Votes[artist]
		if err := tx.SaveCompetition(ctx, comp); err != nil {
			return err
		}

		rec = models.VoteRecord{
			ID:            s.newID(),
			CompetitionID: id,
			Voter:         voter,
			Artist:        artist,
			Timestamp:     now,
		}
		return tx.AppendVoteRecord(ctx, rec)
	})
	if err != nil {
		return models.VoteRecord{}, err
	}

	metrics.VotesCast.Inc()
	s.logger.Info("vote cast", "competition_id", id, "voter", voter, "artist", artist)
	s.publish(models.EventVoteCast, id, models.VoteCastPayload{Artist: artist, Votes: votes})
	return rec, nil
}

// HasVoted returns the artist voter chose, if any
func (s *Service) HasVoted(ctx context.Context, id, voter string) (string, bool, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return "", false, err
	}
	artist, ok := comp.VoteLog[voter]
	return artist, ok, nil
}

// VoteHistory returns the vote records of a competition in cast order
func (s *Service) VoteHistory(ctx context.Context, id string) ([]models.VoteRecord, error) {
	if _, err := s.store.GetCompetition(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListVoteRecords(ctx, id)
}
