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

// Package transport implements the three exchange patterns used to
// talk to Wiegand access-control controllers over UDP: unicast
// request/response, broadcast fan-in discovery, and passive listen for
// unsolicited status pushes.
package transport

import (
	"errors"
	"time"

	"github.com/go-wiegand/wiegand/metrics"
)

// Port is the fixed UDP port every controller listens on.
const Port = 60000

// writeTimeout is the fixed per-exchange write deadline; it is not
// configurable, matching the one second the specification calls for.
const writeTimeout = time.Second

// Sentinel errors surfaced by the transport. They wrap the underlying
// socket error via %w so callers can still inspect it.
var (
	// ErrNoReply is returned by SendAndReceive when the read deadline
	// elapses before a reply arrives.
	ErrNoReply = errors.New("transport: no reply")
	// ErrShortFrame is returned when a received datagram is not
	// exactly protocol.FrameSize bytes.
	ErrShortFrame = errors.New("transport: short frame")
)

// Config controls socket setup for every exchange. The zero value is
// usable: it binds to an ephemeral port on all interfaces, broadcasts
// to the limited broadcast address, and waits up to 5 seconds for a
// reply.
type Config struct {
	// LocalAddr is the local endpoint to bind to, host:port form. Empty
	// means "0.0.0.0:0" - all interfaces, ephemeral port.
	LocalAddr string
	// BroadcastAddr is the IPv4 broadcast address used by
	// BroadcastAndReceive and by SendAndReceive/Send when no unicast
	// controller address is supplied. Empty means "255.255.255.255".
	BroadcastAddr string
	// Timeout bounds how long a read call waits for a reply. Zero
	// means 5 seconds.
	Timeout time.Duration
	// Metrics, if non-nil, receives counters and latency samples for
	// every exchange. Nil disables instrumentation entirely.
	Metrics *metrics.Registry
}

func (c Config) withDefaults() Config {
	if c.LocalAddr == "" {
		c.LocalAddr = "0.0.0.0:0"
	}
	if c.BroadcastAddr == "" {
		c.BroadcastAddr = "255.255.255.255"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	return c
}
