// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the driver's Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	steps       *prometheus.CounterVec
	faults      *prometheus.CounterVec
	running     prometheus.Gauge
	jobsRunning prometheus.Gauge
	jobSeconds  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corun_steps_total",
				Help: "Total number of driver steps by instance and outcome.",
			},
			[]string{"id", "outcome"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corun_faults_total",
				Help: "Total number of instance faults by kind.",
			},
			[]string{"id", "kind"},
		),
		running: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "corun_running_tasks",
				Help: "Number of instances present in the registry.",
			},
		),
		jobsRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "corun_jobs_in_flight",
				Help: "Number of background jobs currently executing.",
			},
		),
		jobSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "corun_job_duration_seconds",
				Help:    "Background job execution time in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.steps, m.faults, m.running, m.jobsRunning, m.jobSeconds)
	}
	return m
}

func (m *Metrics) observeStep(id ID, out Outcome) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(id, out.String()).Inc()
}

func (m *Metrics) observeFault(id ID, err error) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(id, faultLabel(err)).Inc()
}

func (m *Metrics) setRunning(n int) {
	if m == nil {
		return
	}
	m.running.Set(float64(n))
}

func (m *Metrics) jobStarted() {
	if m == nil {
		return
	}
	m.jobsRunning.Inc()
}

// jobFinished runs on the worker goroutine.
func (m *Metrics) jobFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.jobsRunning.Dec()
	m.jobSeconds.Observe(d.Seconds())
}
