// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Prometheus counters for conversion runs
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip reasons
const (
	SkipOutOfBounds = "out-of-bounds"
)

// Dataset kinds
const (
	KindGeolocation = "geolocation"
	KindXY          = "xy"
	KindRadiance    = "radiance"
	KindReflectance = "reflectance"
)

// Metrics - all methods are safe to call on a nil *Metrics, which records nothing
type Metrics struct {
	scenesConverted  prometheus.Counter
	scenesSkipped    *prometheus.CounterVec
	datasetsWritten  *prometheus.CounterVec
	conversionTiming prometheus.Histogram
}

// New registers the converter's metrics with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scenesConverted: factory.NewCounter(prometheus.CounterOpts{
			Name: "l1r_scenes_converted_total",
			Help: "Number of scenes converted to L1R.",
		}),
		scenesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "l1r_scenes_skipped_total",
			Help: "Number of scenes skipped.",
		}, []string{"reason"}),
		datasetsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "l1r_datasets_written_total",
			Help: "Number of datasets written to L1R files.",
		}, []string{"kind"}),
		conversionTiming: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "l1r_scene_conversion_seconds",
			Help:    "Duration of scene conversions.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *Metrics) SceneConverted(duration time.Duration) {
	if m == nil {
		return
	}
	m.scenesConverted.Inc()
	m.conversionTiming.Observe(duration.Seconds())
}

func (m *Metrics) SceneSkipped(reason string) {
	if m == nil {
		return
	}
	m.scenesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) DatasetWritten(kind string) {
	if m == nil {
		return
	}
	m.datasetsWritten.WithLabelValues(kind).Inc()
}

// WriteFile writes everything gathered from g in the text exposition format, for node exporter's
// textfile collector
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
