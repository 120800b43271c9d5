// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"

	"github.com/danielhkuo/easel/metrics"
	"github.com/danielhkuo/easel/models"
)

// PayWinners finalizes the competition if needed and pays out its pot. It
// returns a nil report when there is nothing to pay.
//
// The pot is claimed before the first transfer, so the payout runs at most
// once per funded pot. Individual transfer failures do not abort the pass;
// they are listed in the report and their amounts stay in escrow.
func (s *Service) PayWinners(ctx context.Context, id string) (*models.DistributionReport, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if now <= comp.VoteEnd {
		return nil, fmt.Errorf("%w: voting has not ended", ErrStateViolation)
	}

	if !comp.Finalized {
		if _, err := s.finalizeLocked(ctx, id); err != nil {
			return nil, err
		}
		if comp, err = s.store.GetCompetition(ctx, id); err != nil {
			return nil, err
		}
	}

	if comp.Pot == 0 || comp.Winner == nil {
		return nil, nil
	}

	decimals, err := s.tokens.Decimals(ctx, comp.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: decimals: %v", ErrExternalCall, err)
	}
	unit, err := pow10(decimals)
	if err != nil {
		return nil, err
	}
	if _, err := mulChecked(comp.Pot, unit); err != nil {
		return nil, err
	}

	claimed, err := s.store.ClaimPot(ctx, id, comp.Pot)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: pot already claimed", ErrStateViolation)
	}

	report, payErr := distribute(ctx, comp, comp.Pot, unit, func(ctx context.Context, address string, minor uint64) error {
		return s.tokens.Transfer(ctx, comp.Token, s.escrow, address, minor)
	})
	report.ID = s.newID()
	report.Decimals = decimals
	report.DistributedAt = now

	for _, p := range report.Payments {
		outcome := "paid"
		if !p.Paid {
			outcome = "failed"
		}
		metrics.Payouts.WithLabelValues(p.Phase, outcome).Inc()
		if p.Paid {
			metrics.PayoutAmount.Add(float64(p.Amount))
		}
	}

	if payErr != nil {
		s.logger.Warn("distribution finished with failed transfers",
			"competition_id", id,
			"failed", report.Failed,
			"error", payErr,
		)
	}
	if err := s.store.SaveDistribution(ctx, report); err != nil {
		s.logger.Error("failed to save distribution report", "error", err, "competition_id", id)
	}

	s.logger.Info("pot distributed",
		"competition_id", id,
		"pot", report.Pot,
		"total_paid", report.TotalPaid,
		"leftover_paid", report.LeftoverPaid,
	)
	s.publish(models.EventDistributed, id, report)
	return &report, nil
}

// Distributions lists the payout reports of a competition
func (s *Service) Distributions(ctx context.Context, id string) ([]models.DistributionReport, error) {
	if _, err := s.store.GetCompetition(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListDistributions(ctx, id)
}
