// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/danielhkuo/easel/metrics"
	"github.com/danielhkuo/easel/models"
)

// Finalize closes a competition whose voting window has passed, fixing its
// winner. It reports whether this call performed the transition. Concurrent
// callers for the same competition share one attempt, and the store's
// conditional update guarantees a single transition across processes.
// The shared attempt does not inherit the first caller's cancellation.
func (s *Service) Finalize(ctx context.Context, id string) (bool, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do(id, func() (interface{}, error) {
		unlock := s.locks.lock(id)
		defer unlock()
		return s.finalizeLocked(shared, id)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// finalizeLocked expects the caller to hold the competition lock
func (s *Service) finalizeLocked(ctx context.Context, id string) (bool, error) {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	var (
		fired  bool
		winner *string
	)
	err := s.store.WithTx(ctx, func(tx Store) error {
		comp, err := tx.GetCompetition(ctx, id)
		if err != nil {
			return err
		}
		if comp.Finalized || s.clock.Now() <= comp.VoteEnd {
			return nil
		}

		winner = winnerOf(comp)
		ok, err := tx.MarkFinalized(ctx, id, winner)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fired = true
		return creditProfiles(ctx, tx, comp, winner)
	})
	if err != nil {
		return false, err
	}
	if !fired {
		return false, nil
	}

	outcome := "winner"
	if winner == nil {
		outcome = "no_winner"
	}
	metrics.Finalizations.WithLabelValues(outcome).Inc()
	s.logger.Info("competition finalized", "competition_id", id, "outcome", outcome)
	s.publish(models.EventFinalized, id, models.FinalizedPayload{Winner: winner})
	return true, nil
}

// creditProfiles bumps the participation counter of every distinct
// submitting address that has a profile, and the win counter of the winner
func creditProfiles(ctx context.Context, tx Store, comp models.Competition, winner *string) error {
	var winnerAddress string
	if winner != nil {
		winnerAddress, _ = comp.ArtistAddress(*winner)
	}

	seen := make(map[string]bool)
	for _, a := range comp.Artists {
		if seen[a.Address] {
			continue
		}
		seen[a.Address] = true

		profile, err := tx.GetProfile(ctx, a.Address)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		profile.CompetitionsParticipated++
		if a.Address == winnerAddress {
			profile.CompetitionsWon++
		}
		if err := tx.SaveProfile(ctx, profile); err != nil {
			return err
		}
	}
	return nil
}

// Finalizer periodically finalizes competitions whose voting has ended so
// that winners are fixed even when nobody reads them.
type Finalizer struct {
	Service  *Service
	Interval time.Duration
	Logger   *slog.Logger
}

// RunOnce sweeps all competitions and returns how many it finalized
func (f Finalizer) RunOnce(ctx context.Context) (int, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ids, err := f.Service.store.ListCompetitionIDs(ctx)
	if err != nil {
		return 0, err
	}

	now := f.Service.clock.Now()
	var (
		count int
		errs  *multierror.Error
	)
	for _, id := range ids {
		comp, err := f.Service.store.GetCompetition(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if comp.Finalized || now <= comp.VoteEnd {
			continue
		}

		fired, err := f.Service.Finalize(ctx, id)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if fired {
			count++
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		logger.Error("finalization sweep failed", "error", err, "finalized", count)
		return count, err
	}
	if count > 0 {
		logger.Info("finalization sweep", "finalized", count)
	}
	return count, nil
}

// Run sweeps every Interval until ctx is cancelled
func (f Finalizer) Run(ctx context.Context) error {
	interval := f.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// errors are logged by RunOnce and retried on the next tick
			_, _ = f.RunOnce(ctx)
		}
	}
}
