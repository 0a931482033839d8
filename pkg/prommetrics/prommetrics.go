/*
Copyright 2026 The rzchan Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package prommetrics implements rzchan.Recorder against
// github.com/prometheus/client_golang, the way the teacher's own
// pkg/metrics and pkg/metricscollector expose package-level
// prometheus.NewCounterVec/NewGaugeVec instruments and a NewServer method
// serving /metrics and /healthz. The channel core itself never imports
// this package; it is wired in by whatever process creates the channel.
package prommetrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rzchan/rzchan/pkg/rzchan"
)

// DefaultPromMetricsNamespace is the prefix every instrument below is
// registered under.
const DefaultPromMetricsNamespace = "rzchan"

var (
	sendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "sends_total",
			Help:      "Total number of sends attempted, by channel, blocking mode, and outcome.",
		},
		[]string{"channel", "blocking", "outcome"},
	)
	receivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "receives_total",
			Help:      "Total number of receives attempted, by channel, blocking mode, and outcome.",
		},
		[]string{"channel", "blocking", "outcome"},
	)
	closesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "closes_total",
			Help:      "Total number of times a channel transitioned to closed.",
		},
		[]string{"channel"},
	)
	destroysTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "destroys_total",
			Help:      "Total number of times a channel's resources were released.",
		},
		[]string{"channel"},
	)
	occupancy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "buffer_occupancy",
			Help:      "Number of payloads currently buffered, observed immediately after the last commit.",
		},
		[]string{"channel"},
	)
	capacityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultPromMetricsNamespace,
			Subsystem: "channel",
			Name:      "capacity",
			Help:      "Configured capacity of the channel (0 means rendezvous).",
		},
		[]string{"channel"},
	)
)

func init() {
	prometheus.MustRegister(sendsTotal, receivesTotal, closesTotal, destroysTotal, occupancy, capacityGauge)
}

// Recorder implements rzchan.Recorder, labeling every instrument with the
// name the caller gave this channel (typically the same name it is
// registered under in pkg/registry).
type Recorder struct {
	channel string
}

var _ rzchan.Recorder = (*Recorder)(nil)

// NewRecorder returns a Recorder that labels its metrics with name.
func NewRecorder(name string) *Recorder {
	return &Recorder{channel: name}
}

func blockingLabel(blocked bool) string {
	if blocked {
		return "blocking"
	}
	return "nonblocking"
}

func outcomeLabel(err error) string {
	switch err {
	case nil:
		return "success"
	case rzchan.ErrClosed:
		return "closed"
	case rzchan.ErrWouldBlock:
		return "would_block"
	default:
		return "error"
	}
}

// OnSend implements rzchan.Recorder.
func (r *Recorder) OnSend(blocked bool, err error) {
	sendsTotal.WithLabelValues(r.channel, blockingLabel(blocked), outcomeLabel(err)).Inc()
}

// OnReceive implements rzchan.Recorder.
func (r *Recorder) OnReceive(blocked bool, err error) {
	receivesTotal.WithLabelValues(r.channel, blockingLabel(blocked), outcomeLabel(err)).Inc()
}

// OnClose implements rzchan.Recorder.
func (r *Recorder) OnClose() {
	closesTotal.WithLabelValues(r.channel).Inc()
}

// OnDestroy implements rzchan.Recorder.
func (r *Recorder) OnDestroy() {
	destroysTotal.WithLabelValues(r.channel).Inc()
}

// OnOccupancy implements rzchan.Recorder.
func (r *Recorder) OnOccupancy(count, capacity int) {
	occupancy.WithLabelValues(r.channel).Set(float64(count))
	capacityGauge.WithLabelValues(r.channel).Set(float64(capacity))
}

// NewServer starts an HTTP server exposing /metrics and /healthz, in the
// shape of the teacher's PrometheusMetricServer.NewServer. It blocks for
// the lifetime of the server; callers run it in its own goroutine.
func NewServer(address string, pattern string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("rzchan/prommetrics: unable to write healthz response: %v", err)
		}
	})
	mux.Handle(pattern, promhttp.Handler())
	log.Printf("rzchan/prommetrics: starting metrics server at %v", address)
	return http.ListenAndServe(address, mux)
}
