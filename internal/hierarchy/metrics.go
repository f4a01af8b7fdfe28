// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cascadeSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dagcategory_cascade_rewrites",
		Help:    "Descendant paths rewritten by a single save",
		Buckets: []float64{0, 1, 10, 100, 1000, 10000},
	})

	cycleRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dagcategory_cycle_rejections_total",
		Help: "Saves rejected because the parent chain would contain a cycle",
	})

	resolveResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagcategory_resolve_total",
		Help: "URL path resolutions by outcome",
	}, []string{"result"})
)
