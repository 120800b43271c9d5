// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"
	"math"

	"github.com/danielhkuo/easel/models"
)

func submissionActive(comp models.Competition, now uint64) bool {
	return now >= comp.SubmissionStart && now <= comp.SubmissionEnd
}

func votingActive(comp models.Competition, now uint64) bool {
	return now >= comp.VoteStart && now <= comp.VoteEnd
}

// evaluateEligibility reports whether voter may vote right now. It has no
// side effects.
func evaluateEligibility(ctx context.Context, tokens TokenService, comp models.Competition, voter string, now uint64) (models.VotingEligibility, error) {
	decimals, err := tokens.Decimals(ctx, comp.Token)
	if err != nil {
		return models.VotingEligibility{}, fmt.Errorf("%w: decimals: %v", ErrExternalCall, err)
	}
	unit, err := pow10(decimals)
	if err != nil {
		return models.VotingEligibility{}, err
	}

	raw, err := tokens.Balance(ctx, comp.Token, voter)
	if err != nil {
		return models.VotingEligibility{}, fmt.Errorf("%w: balance: %v", ErrExternalCall, err)
	}
	balance := raw / unit

	_, hasVoted := comp.VoteLog[voter]
	active := votingActive(comp, now)

	return models.VotingEligibility{
		CanVote:        active && balance >= comp.MinVoteTokens && !hasVoted,
		HasVoted:       hasVoted,
		CurrentBalance: balance,
		MinRequired:    comp.MinVoteTokens,
		VotingActive:   active,
	}, nil
}

// validateWindows checks submissionStart < submissionEnd < voteStart < voteEnd
func validateWindows(req models.CreateCompetitionRequest) error {
	if req.SubmissionStart >= req.SubmissionEnd {
		return fmt.Errorf("%w: submission start must be before submission end", ErrInvalidWindow)
	}
	if req.VoteStart <= req.SubmissionEnd {
		return fmt.Errorf("%w: voting must start after submissions end", ErrInvalidWindow)
	}
	if req.VoteEnd <= req.VoteStart {
		return fmt.Errorf("%w: vote start must be before vote end", ErrInvalidWindow)
	}
	if req.VoteEnd > math.MaxInt64 {
		return fmt.Errorf("%w: vote end out of range", ErrInvalidWindow)
	}
	return nil
}

// validateShareSchedule requires a non-empty list of percentages summing to
// at most 100. A zero slot ends the prize ranks at that position.
func validateShareSchedule(schedule []uint32) error {
	if len(schedule) == 0 {
		return fmt.Errorf("%w: share schedule is empty", ErrInvalidInput)
	}
	var sum uint64
	for _, s := range schedule {
		sum += uint64(s)
	}
	if sum > 100 {
		return fmt.Errorf("%w: share schedule sums to %d", ErrInvalidInput, sum)
	}
	return nil
}
