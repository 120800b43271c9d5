// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"

	"github.com/danielhkuo/easel/models"
)

// CreateCompetition registers a new competition. Only admins may create.
func (s *Service) CreateCompetition(ctx context.Context, from string, req models.CreateCompetitionRequest) (models.Competition, error) {
	if err := s.requireAdmin(ctx, from); err != nil {
		return models.Competition{}, err
	}

	if req.ID == "" {
		return models.Competition{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if req.Token == "" {
		return models.Competition{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if err := validateWindows(req); err != nil {
		return models.Competition{}, err
	}

	schedule := append([]uint32(nil), models.DefaultShareSchedule...)
	if len(req.ShareSchedule) > 0 {
		if err := validateShareSchedule(req.ShareSchedule); err != nil {
			return models.Competition{}, err
		}
		schedule = append([]uint32(nil), req.ShareSchedule...)
	}

	comp := models.Competition{
		ID:              req.ID,
		Description:     req.Description,
		Token:           req.Token,
		SubmissionStart: req.SubmissionStart,
		SubmissionEnd:   req.SubmissionEnd,
		VoteStart:       req.VoteStart,
		VoteEnd:         req.VoteEnd,
		MinVoteTokens:   req.MinVoteTokens,
		Artists:         []models.Submission{},
		Votes:           map[string]uint64{},
		VoteLog:         map[string]string{},
		ArtistMetadata:  map[string][]models.ArtworkMetadata{},
		ShareSchedule:   schedule,
	}

	unlock := s.locks.lock(req.ID)
	defer unlock()

	err := s.store.WithTx(ctx, func(tx Store) error {
		exists, err := tx.CompetitionExists(ctx, req.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: competition %s", ErrAlreadyExists, req.ID)
		}
		return tx.InsertCompetition(ctx, comp)
	})
	if err != nil {
		return models.Competition{}, err
	}

	s.logger.Info("competition created",
		"competition_id", comp.ID,
		"token", comp.Token,
		"vote_end", comp.VoteEnd,
	)
	return comp, nil
}

// DeleteCompetition removes a competition with its vote history and
// refunds any pot to the deleting admin. The pot is claimed and committed
// before the refund is sent. A failed refund restores the pot and leaves the
// competition in place.
func (s *Service) DeleteCompetition(ctx context.Context, from, id string) (uint64, error) {
	if err := s.requireAdmin(ctx, from); err != nil {
		return 0, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	var comp models.Competition
	var minor uint64
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		comp, err = tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Pot == 0 {
			return tx.DeleteCompetition(ctx, id)
		}

		unit, err := s.unit(ctx, comp.Token)
		if err != nil {
			return err
		}
		if minor, err = mulChecked(comp.Pot, unit); err != nil {
			return err
		}
		ok, err := tx.ClaimPot(ctx, id, comp.Pot)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: pot changed during delete", ErrStateViolation)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if comp.Pot > 0 {
		if err := s.tokens.Transfer(ctx, comp.Token, s.escrow, from, minor); err != nil {
			s.restorePot(ctx, id, comp.Token, comp.Pot)
			return 0, fmt.Errorf("%w: refund: %v", ErrExternalCall, err)
		}

		// The refund is out, so the delete must land even if the caller is gone
		dctx := context.WithoutCancel(ctx)
		if err := s.store.WithTx(dctx, func(tx Store) error {
			return tx.DeleteCompetition(dctx, id)
		}); err != nil {
			s.logger.Error("competition refunded but not deleted",
				"competition_id", id, "refunded", comp.Pot, "admin", from, "error", err)
			return 0, err
		}
	}

	s.logger.Info("competition deleted", "competition_id", id, "refunded", comp.Pot, "admin", from)
	return comp.Pot, nil
}

// UpdateShareSchedule replaces the prize split of a competition that has
// not been finalized
func (s *Service) UpdateShareSchedule(ctx context.Context, from, id string, schedule []uint32) (models.Competition, error) {
	if err := s.requireAdmin(ctx, from); err != nil {
		return models.Competition{}, err
	}
	if err := validateShareSchedule(schedule); err != nil {
		return models.Competition{}, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	var comp models.Competition
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		comp, err = tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Finalized {
			return fmt.Errorf("%w: competition is finalized", ErrStateViolation)
		}
		comp.ShareSchedule = append([]uint32(nil), schedule...)
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		return models.Competition{}, err
	}

	s.logger.Info("share schedule updated", "competition_id", id, "schedule", schedule)
	return comp, nil
}

// FundPot adds amount whole units to the pot and moves the tokens from the
// funder to escrow. The larger pot is committed before the transfer and
// taken back if the transfer fails.
func (s *Service) FundPot(ctx context.Context, id, from string, amount uint64) (uint64, error) {
	if err := s.auth.Require(ctx, from); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	var (
		pot   uint64
		minor uint64
		tok   string
	)
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Finalized {
			return fmt.Errorf("%w: competition is finalized", ErrStateViolation)
		}

		newPot, err := addChecked(comp.Pot, amount)
		if err != nil {
			return err
		}
		unit, err := s.unit(ctx, comp.Token)
		if err != nil {
			return err
		}
		if minor, err = mulChecked(amount, unit); err != nil {
			return err
		}

		comp.Pot = newPot
		pot, tok = newPot, comp.Token
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		return 0, err
	}

	if err := s.tokens.Transfer(ctx, tok, from, s.escrow, minor); err != nil {
		s.withdrawPot(ctx, id, tok, amount)
		return 0, fmt.Errorf("%w: fund: %v", ErrExternalCall, err)
	}

	s.logger.Info("pot funded", "competition_id", id, "funder", from, "amount", amount, "pot", pot)
	return pot, nil
}

// restorePot puts a claimed pot back after a refund failed. The caller holds
// the competition lock.
func (s *Service) restorePot(ctx context.Context, id, token string, amount uint64) {
	ctx = context.WithoutCancel(ctx)
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Pot, err = addChecked(comp.Pot, amount); err != nil {
			return err
		}
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		s.logger.Error("refund failed and pot not restored, tokens held in escrow",
			"competition_id", id, "token", token, "amount", amount, "error", err)
	}
}

// withdrawPot takes back a pot increase whose funding transfer failed. The
// caller holds the competition lock.
func (s *Service) withdrawPot(ctx context.Context, id, token string, amount uint64) {
	ctx = context.WithoutCancel(ctx)
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Pot < amount {
			return fmt.Errorf("%w: pot %d below withdrawn %d", ErrStateViolation, comp.Pot, amount)
		}
		comp.Pot -= amount
		return tx.SaveCompetition(ctx, comp)
	})
	if err != nil {
		s.logger.Error("funding failed and pot not reduced",
			"competition_id", id, "token", token, "amount", amount, "error", err)
	}
}

// unit returns 10^decimals for token
func (s *Service) unit(ctx context.Context, token string) (uint64, error) {
	decimals, err := s.tokens.Decimals(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("%w: decimals: %v", ErrExternalCall, err)
	}
	return pow10(decimals)
}
