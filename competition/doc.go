// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package competition runs the art competition lifecycle.

A Service is built from its ports:

	svc := competition.NewService(competition.Dependencies{
		Store:         store,
		Tokens:        ledger,
		Auth:          auth.Authorizer{},
		Notifier:      hub,
		EscrowAddress: escrow,
	})

# Lifecycle

	submission window → voting window → finalized → paid

Admins create, delete and reschedule competitions. Artists submit during
the submission window. Addresses holding at least MinVoteTokens vote once
each during the voting window. Once the voting window closes the
competition is finalized, either by a read, by PayWinners or by the
Finalizer sweep.

# Prizes

The share schedule gives a percentage per rank. Tied artists share the
combined slots they occupy. Transfers that fail leave a
remainder that is offered once more across the schedule, and whatever
still fails stays in escrow. Every payout is recorded as a
DistributionReport.

# Concurrency

Each competition has its own lock, registry changes share one lock, and
every mutation runs in a single store transaction opened after the lock
is taken. Finalize calls for the same competition collapse into one.

# Errors

Operations return errors wrapping the sentinels in errors.go so callers
can match with errors.Is.
*/
package competition
