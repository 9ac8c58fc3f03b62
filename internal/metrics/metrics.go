// Copyright 2025 Tom Barlow
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

// Package metrics exposes prometheus instrumentation for the pipeline
// passes. Counters are registered on the default registry; embedding
// programs scrape them through their own handler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// validations tracks validation outcomes
	validations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baton_validations_total",
			Help: "Total shortcut validations by result (accepted, rejected)",
		},
		[]string{"result"},
	)

	// compilations tracks compilation outcomes
	compilations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baton_compilations_total",
			Help: "Total shortcut compilations by result (ok, failed)",
		},
		[]string{"result"},
	)

	// registryReloads tracks registry reload outcomes
	registryReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baton_registry_reloads_total",
			Help: "Total registry reloads by result (ok, failed)",
		},
		[]string{"result"},
	)

	// passDuration tracks per-pass latency
	passDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baton_pass_duration_seconds",
			Help:    "Pipeline pass duration by pass name",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pass"},
	)
)

// RecordValidation increments the validation counter.
func RecordValidation(accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	validations.WithLabelValues(result).Inc()
}

// RecordCompilation increments the compilation counter.
func RecordCompilation(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	compilations.WithLabelValues(result).Inc()
}

// RecordRegistryReload increments the registry reload counter.
func RecordRegistryReload(ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	registryReloads.WithLabelValues(result).Inc()
}

// ObservePass records the duration of one pipeline pass.
func ObservePass(pass string, d time.Duration) {
	passDuration.WithLabelValues(pass).Observe(d.Seconds())
}
