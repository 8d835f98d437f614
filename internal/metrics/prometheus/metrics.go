/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prometheus provides a Prometheus metrics exporter for buffers.
package prometheus

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yorkie-team/edittree/internal/version"
)

const (
	namespace      = "edittree"
	opLabel        = "op"
	resultLabel    = "result"
	bufferIDLabel  = "buffer_id"
	versionLabel   = "edittree_version"
	defaultBuckets = 12
)

// Metrics manages the metric information that edittree is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	version *prometheus.GaugeVec

	operationsTotal  *prometheus.CounterVec
	operationSeconds *prometheus.HistogramVec
	rotationsTotal   prometheus.Counter

	bufferSize   *prometheus.GaugeVec
	bufferHeight *prometheus.GaugeVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		version: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "version",
			Help:      "Which version is running. 1 for 'edittree_version' label with current version.",
		}, []string{versionLabel}),
		operationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "operations_total",
			Help:      "The total count of operations applied to buffers, by result.",
		}, []string{opLabel, resultLabel}),
		operationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "operation_seconds",
			Help:      "The time spent applying an operation to a buffer.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, defaultBuckets),
		}, []string{opLabel}),
		rotationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "rotations_total",
			Help:      "The total count of rotations performed while rebalancing.",
		}),
		bufferSize: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "size",
			Help:      "The number of characters held by a buffer.",
		}, []string{bufferIDLabel}),
		bufferHeight: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "height",
			Help:      "The height of the tree backing a buffer.",
		}, []string{bufferIDLabel}),
	}

	metrics.version.With(prometheus.Labels{
		versionLabel: version.Version,
	}).Set(1)

	return metrics, nil
}

// ObserveOperation records the outcome and the latency of an operation.
func (m *Metrics) ObserveOperation(op, result string, elapsed time.Duration) {
	m.operationsTotal.With(prometheus.Labels{
		opLabel:     op,
		resultLabel: result,
	}).Inc()
	m.operationSeconds.With(prometheus.Labels{
		opLabel: op,
	}).Observe(elapsed.Seconds())
}

// AddRotations adds the given number of rotations.
func (m *Metrics) AddRotations(count int) {
	if count <= 0 {
		return
	}
	m.rotationsTotal.Add(float64(count))
}

// SetBufferStats sets the size and the height of the given buffer.
func (m *Metrics) SetBufferStats(bufferID string, size, height int) {
	m.bufferSize.With(prometheus.Labels{bufferIDLabel: bufferID}).Set(float64(size))
	m.bufferHeight.With(prometheus.Labels{bufferIDLabel: bufferID}).Set(float64(height))
}

// WriteToTextfile writes the gathered metrics to the given path in the
// textfile collector format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// Registry returns the registry of the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
