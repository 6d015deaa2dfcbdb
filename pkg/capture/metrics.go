// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package capture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	captureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geowitness_capture_duration_seconds",
			Help:    "Time taken to capture a complete snapshot",
			Buckets: []float64{0.1, 0.5, 1, 3, 5, 10, 30},
		},
	)

	captureTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geowitness_capture_total",
			Help: "Total number of snapshots captured",
		},
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geowitness_probe_duration_seconds",
			Help:    "Time taken by individual probes",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 3, 5, 10},
		},
		[]string{"probe"}, // location, wifi, cell
	)

	probeDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geowitness_probe_degraded_total",
			Help: "Total number of probe readings degraded to a sentinel value",
		},
		[]string{"probe"},
	)
)
