// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are registered with the default registry at init through
promauto, so importing the package is enough to expose them:

	metrics.VotesCast.Inc()
	metrics.Payouts.WithLabelValues(models.PhasePrize, "paid").Inc()

HTTP collectors are labelled with the ServeMux route pattern rather than the
raw path, which keeps competition ids out of label values.
*/
package metrics
