// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"errors"
	"math"

	"github.com/danielhkuo/easel/models"
)

// activeGrace keeps a competition listed for a day after voting ends
const activeGrace = 86400

// GetCompetition returns the status of a competition, finalizing it first
// if its voting window has passed
func (s *Service) GetCompetition(ctx context.Context, id string) (models.CompetitionStatus, error) {
	comp, err := s.loadFinalizing(ctx, id)
	if err != nil {
		return models.CompetitionStatus{}, err
	}
	return s.status(comp), nil
}

// ActiveCompetitions lists competitions that are open, upcoming, or ended
// within the last day, in creation order
func (s *Service) ActiveCompetitions(ctx context.Context) ([]models.CompetitionStatus, error) {
	ids, err := s.store.ListCompetitionIDs(ctx)
	if err != nil {
		return nil, err
	}

	active := []models.CompetitionStatus{}
	for _, id := range ids {
		comp, err := s.loadFinalizing(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// deleted since listing
			continue
		}
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		if submissionActive(comp, now) || votingActive(comp, now) || now <= saturatingAdd(comp.VoteEnd, activeGrace) {
			active = append(active, s.status(comp))
		}
	}
	return active, nil
}

// Rankings returns the ranked submissions of a competition
func (s *Service) Rankings(ctx context.Context, id string) ([]models.ArtistRanking, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	return Rank(comp), nil
}

func (s *Service) GetPot(ctx context.Context, id string) (uint64, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return 0, err
	}
	return comp.Pot, nil
}

func (s *Service) GetMinVoteTokens(ctx context.Context, id string) (uint64, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return 0, err
	}
	return comp.MinVoteTokens, nil
}

func (s *Service) loadFinalizing(ctx context.Context, id string) (models.Competition, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return models.Competition{}, err
	}
	if comp.Finalized || s.clock.Now() <= comp.VoteEnd {
		return comp, nil
	}

	if _, err := s.Finalize(ctx, id); err != nil {
		return models.Competition{}, err
	}
	return s.store.GetCompetition(ctx, id)
}

func (s *Service) status(comp models.Competition) models.CompetitionStatus {
	now := s.clock.Now()
	return models.CompetitionStatus{
		ID:                 comp.ID,
		Competition:        comp,
		IsSubmissionActive: submissionActive(comp, now),
		IsVotingActive:     votingActive(comp, now),
		IsFinalized:        comp.Finalized,
	}
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
