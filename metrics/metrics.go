/*
Copyright (c) Facebook, Inc. and its affiliates.

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

// Package metrics exposes prometheus counters and streaming latency
// statistics around transport exchanges. It never starts its own HTTP
// server or scrape loop - callers register Registry's collectors into
// whatever prometheus.Registerer their own process already runs,
// following the registry-owned-by-the-caller pattern in
// ptp/sptp/stats.PrometheusExporter.
package metrics

import (
	"sync"

	"github.com/eclesh/welford"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the counters one client instance accumulates.
type Registry struct {
	FramesSent        prometheus.Counter
	FramesReceived    prometheus.Counter
	Timeouts          prometheus.Counter
	DeviceRejections  prometheus.Counter
	BroadcastReplies  prometheus.Counter
	DroppedFrames     prometheus.Counter

	mu       sync.Mutex
	latency  map[uint32]*welford.Stats
}

// NewRegistry builds a Registry with all counters initialized but not
// yet registered to any prometheus.Registerer.
func NewRegistry() *Registry {
	return &Registry{
		FramesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_frames_sent_total",
			Help: "Number of request frames sent to controllers.",
		}),
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_frames_received_total",
			Help: "Number of reply frames received from controllers.",
		}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_timeouts_total",
			Help: "Number of exchanges that timed out waiting for a reply.",
		}),
		DeviceRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_device_rejections_total",
			Help: "Number of replies whose success byte was zero or whose echoed magic word did not match.",
		}),
		BroadcastReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_broadcast_replies_total",
			Help: "Number of replies collected across all broadcast fan-ins.",
		}),
		DroppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wiegand_dropped_frames_total",
			Help: "Number of malformed or mismatched-opcode frames dropped during a broadcast fan-in.",
		}),
		latency: make(map[uint32]*welford.Stats),
	}
}

// Register adds every counter in r to reg. Registering the same
// Registry twice into the same reg returns an error from the
// underlying prometheus.Registerer.
func (r *Registry) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		r.FramesSent, r.FramesReceived, r.Timeouts,
		r.DeviceRejections, r.BroadcastReplies, r.DroppedFrames,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveLatency folds one exchange's round-trip time (in seconds)
// into the running mean/variance kept for deviceID.
func (r *Registry) ObserveLatency(deviceID uint32, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.latency[deviceID]
	if !ok {
		s = welford.New()
		r.latency[deviceID] = s
	}
	s.Add(seconds)
}

// LatencyStats reports the current mean, variance and sample count of
// round-trip times observed for deviceID. ok is false if no exchange
// has been observed yet.
func (r *Registry) LatencyStats(deviceID uint32) (mean, variance float64, count int64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, found := r.latency[deviceID]
	if !found {
		return 0, 0, 0, false
	}
	return s.Mean(), s.Variance(), s.Count(), true
}
