// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/danielhkuo/easel/models"
)

// Payer sends minorAmount of the prize token to address
type Payer func(ctx context.Context, address string, minorAmount uint64) error

// distribute splits pot (whole units) between the ranked artists and pays
// each share through pay. unit is 10^decimals of the prize token.
//
// Tied artists pool the schedule slots their group spans and split them
// evenly. Whatever the first pass did not pay out, including failed
// transfers and rounding dust, is shared again between the artists with
// votes in proportion to their schedule slots. Failed transfers are
// recorded and skipped; the returned error aggregates them.
func distribute(ctx context.Context, comp models.Competition, pot, unit uint64, pay Payer) (models.DistributionReport, error) {
	report := models.DistributionReport{
		CompetitionID: comp.ID,
		Pot:           pot,
		Payments:      []models.Payment{},
	}
	var errs *multierror.Error

	schedule := comp.ShareSchedule
	if len(schedule) == 0 {
		schedule = models.DefaultShareSchedule
	}

	send := func(s Standing, phase string, amount uint64) bool {
		if amount == 0 {
			return false
		}
		p := models.Payment{
			Artist:  s.Artist,
			Address: s.Address,
			Phase:   phase,
			Amount:  amount,
		}
		minor, err := mulChecked(amount, unit)
		if err == nil {
			p.MinorAmount = minor
			err = pay(ctx, s.Address, minor)
		}
		if err != nil {
			p.Error = err.Error()
			report.Failed++
			errs = multierror.Append(errs, fmt.Errorf("%s payment to %s: %w", phase, s.Artist, err))
		} else {
			p.Paid = true
		}
		report.Payments = append(report.Payments, p)
		return p.Paid
	}

	standings := Standings(comp)

	// Primary pass over tie groups
	pos := 0
	for _, group := range TieGroups(standings) {
		if pos >= len(schedule) {
			break
		}
		var combined uint64
		for i := pos; i < pos+len(group) && i < len(schedule); i++ {
			combined += uint64(schedule[i])
		}
		if combined == 0 {
			break
		}
		share := combined / uint64(len(group))
		amount := mulDiv(pot, share, 100)
		for _, s := range group {
			if send(s, models.PhasePrize, amount) {
				report.TotalPaid += amount
			}
		}
		pos += len(group)
	}

	// Leftover pass
	report.Leftover = pot - report.TotalPaid
	if report.Leftover > 0 {
		winners := 0
		for _, s := range standings {
			if s.Votes == 0 || winners == len(schedule) {
				break
			}
			winners++
		}
		var totalShare uint64
		for i := 0; i < winners; i++ {
			totalShare += uint64(schedule[i])
		}
		if totalShare > 0 {
			for i := 0; i < winners; i++ {
				amount := mulDiv(report.Leftover, uint64(schedule[i]), totalShare)
				if send(standings[i], models.PhaseLeftover, amount) {
					report.LeftoverPaid += amount
				}
			}
		}
	}

	return report, errs.ErrorOrNil()
}
