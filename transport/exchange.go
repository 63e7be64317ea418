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

package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-wiegand/wiegand/protocol"
	"github.com/go-wiegand/wiegand/wlog"
)

func frameDeviceID(b []byte) uint32 {
	id, err := protocol.FrameDeviceID(b)
	if err != nil {
		return 0
	}
	return id
}

// SendAndReceive performs one unicast request/response exchange. If
// controllerAddr is empty the request is sent to cfg's broadcast
// address instead (useful for a controller whose unicast address
// isn't known yet). resp is decoded in place; its OpCode must match
// the reply's opcode or the exchange fails.
func SendAndReceive(ctx context.Context, cfg Config, controllerAddr string, req protocol.Packet, resp protocol.Packet) error {
	cfg = cfg.withDefaults()

	conn, err := dialSocket(cfg.LocalAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	target := controllerAddr
	if target == "" {
		target = cfg.BroadcastAddr
	}
	raddr, err := resolveTarget(target, Port)
	if err != nil {
		return err
	}

	b, err := protocol.Bytes(req)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("transport: setting write deadline: %w", err)
	}
	if _, err := conn.WriteTo(b, raddr); err != nil {
		return fmt.Errorf("transport: sending %s: %w", req.OpCode(), err)
	}
	if cfg.Metrics != nil {
		cfg.Metrics.FramesSent.Inc()
	}
	wlog.Sent(req.OpCode(), frameDeviceID(b), raddr.String())

	start := time.Now()
	if err := conn.SetReadDeadline(time.Now().Add(cfg.Timeout)); err != nil {
		return fmt.Errorf("transport: setting read deadline: %w", err)
	}
	buf := make([]byte, protocol.FrameSize)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		if cfg.Metrics != nil {
			cfg.Metrics.Timeouts.Inc()
		}
		return fmt.Errorf("%w: %w", ErrNoReply, err)
	}
	if n != protocol.FrameSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, n, protocol.FrameSize)
	}
	if cfg.Metrics != nil {
		cfg.Metrics.FramesReceived.Inc()
		cfg.Metrics.ObserveLatency(frameDeviceID(buf), time.Since(start).Seconds())
	}
	wlog.Received(resp.OpCode(), frameDeviceID(buf), raddr.String())
	return protocol.FromBytes(buf[:n], resp)
}

// BroadcastAndReceive sends req to cfg's broadcast address and
// collects every well-formed reply until the read times out. newResponse
// must return a freshly allocated Packet of the expected response type
// each time it's called; replies whose opcode doesn't match, or whose
// frame is malformed, are dropped without aborting the fan-in. The call
// always succeeds (possibly with a nil slice); only socket-setup
// failures return an error.
func BroadcastAndReceive(ctx context.Context, cfg Config, req protocol.Packet, newResponse func() protocol.Packet) ([]protocol.Packet, error) {
	cfg = cfg.withDefaults()

	conn, err := dialSocket(cfg.LocalAddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	raddr, err := resolveTarget(cfg.BroadcastAddr, Port)
	if err != nil {
		return nil, err
	}

	b, err := protocol.Bytes(req)
	if err != nil {
		return nil, err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return nil, fmt.Errorf("transport: setting write deadline: %w", err)
	}
	if _, err := conn.WriteTo(b, raddr); err != nil {
		return nil, fmt.Errorf("transport: broadcasting %s: %w", req.OpCode(), err)
	}
	if cfg.Metrics != nil {
		cfg.Metrics.FramesSent.Inc()
	}
	wlog.Sent(req.OpCode(), frameDeviceID(b), raddr.String())

	var (
		mu      sync.Mutex
		results []protocol.Packet
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		doneChan := make(chan error, 1)
		go func() {
			for {
				if err := conn.SetReadDeadline(time.Now().Add(cfg.Timeout)); err != nil {
					doneChan <- fmt.Errorf("transport: setting read deadline: %w", err)
					return
				}
				buf := make([]byte, protocol.FrameSize)
				n, addr, err := conn.ReadFrom(buf)
				if err != nil {
					// Read timeout (or the socket being closed from
					// outside) ends the fan-in; it is not an error.
					doneChan <- nil
					return
				}
				resp := newResponse()
				if n != protocol.FrameSize {
					if cfg.Metrics != nil {
						cfg.Metrics.DroppedFrames.Inc()
					}
					wlog.Dropped(addr.String(), ErrShortFrame)
					continue
				}
				if err := protocol.FromBytes(buf[:n], resp); err != nil {
					if cfg.Metrics != nil {
						cfg.Metrics.DroppedFrames.Inc()
					}
					wlog.Dropped(addr.String(), err)
					continue
				}
				if cfg.Metrics != nil {
					cfg.Metrics.FramesReceived.Inc()
					cfg.Metrics.BroadcastReplies.Inc()
				}
				wlog.Received(resp.OpCode(), frameDeviceID(buf), addr.String())
				mu.Lock()
				results = append(results, resp)
				mu.Unlock()
			}
		}()
		select {
		case <-egCtx.Done():
			conn.Close()
			return nil
		case err := <-doneChan:
			return err
		}
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Listen opens a socket bound to cfg.LocalAddr with no read deadline
// and invokes handler for every unsolicited status push received. It
// runs until the socket errors (including the socket being closed when
// ctx is cancelled), a status frame fails to decode, or an unexpected,
// non-status opcode arrives, in which case it returns an error naming
// that opcode without invoking handler.
func Listen(ctx context.Context, cfg Config, handler func(protocol.StatusResponse)) error {
	cfg = cfg.withDefaults()

	conn, err := dialSocket(cfg.LocalAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		buf := make([]byte, protocol.FrameSize)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return fmt.Errorf("transport: listen: %w", err)
		}
		op, err := protocol.FrameOpCode(buf[:n])
		if err != nil {
			return fmt.Errorf("transport: listen: %w", err)
		}
		if op != protocol.OpStatus {
			return fmt.Errorf("cannot listen for opcode 0x%02x", uint8(op))
		}
		var status protocol.StatusResponse
		if err := protocol.FromBytes(buf[:n], &status); err != nil {
			return fmt.Errorf("transport: listen: decoding status: %w", err)
		}
		if cfg.Metrics != nil {
			cfg.Metrics.FramesReceived.Inc()
		}
		wlog.Received(status.OpCode(), status.DeviceID, addr.String())
		handler(status)
	}
}

// Send is a fire-and-forget unicast send used for requests that have
// no reply, such as SetAddress.
func Send(cfg Config, controllerAddr string, req protocol.Packet) error {
	cfg = cfg.withDefaults()

	conn, err := dialSocket(cfg.LocalAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	target := controllerAddr
	if target == "" {
		target = cfg.BroadcastAddr
	}
	raddr, err := resolveTarget(target, Port)
	if err != nil {
		return err
	}

	b, err := protocol.Bytes(req)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("transport: setting write deadline: %w", err)
	}
	if _, err := conn.WriteTo(b, raddr); err != nil {
		return fmt.Errorf("transport: sending %s: %w", req.OpCode(), err)
	}
	if cfg.Metrics != nil {
		cfg.Metrics.FramesSent.Inc()
	}
	wlog.Sent(req.OpCode(), frameDeviceID(b), raddr.String())
	return nil
}
