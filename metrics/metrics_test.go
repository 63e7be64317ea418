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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	reg := prometheus.NewRegistry()
	require.NoError(t, r.Register(reg))
}

func TestObserveLatency(t *testing.T) {
	r := NewRegistry()
	_, _, _, ok := r.LatencyStats(1)
	require.False(t, ok)

	r.ObserveLatency(1, 0.01)
	r.ObserveLatency(1, 0.02)
	r.ObserveLatency(1, 0.03)

	mean, _, count, ok := r.LatencyStats(1)
	require.True(t, ok)
	require.EqualValues(t, 3, count)
	require.InDelta(t, 0.02, mean, 0.0001)
}

func TestCounters(t *testing.T) {
	r := NewRegistry()
	r.FramesSent.Inc()
	r.FramesReceived.Inc()
	r.Timeouts.Inc()
	r.DeviceRejections.Inc()
	r.BroadcastReplies.Inc()
	r.DroppedFrames.Inc()
}
