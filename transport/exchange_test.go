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
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-wiegand/wiegand/protocol"
)

func fakeAddr(s string) net.Addr {
	addr, err := net.ResolveUDPAddr("udp4", s)
	if err != nil {
		panic(err)
	}
	return addr
}

func withMockSocket(t *testing.T, build func(m *MockSocket)) *MockSocket {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := NewMockSocket(ctrl)
	build(m)
	orig := dialSocket
	dialSocket = func(string) (socket, error) { return m, nil }
	t.Cleanup(func() { dialSocket = orig })
	return m
}

func getConfigFrame(t *testing.T, deviceID uint32) []byte {
	t.Helper()
	b, err := protocol.Bytes(&protocol.GetConfigResponse{DeviceID: deviceID})
	require.NoError(t, err)
	return b
}

func TestSendAndReceive(t *testing.T) {
	reply := getConfigFrame(t, 423187757)
	m := withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		m.EXPECT().WriteTo(gomock.Any(), gomock.Any()).Return(protocol.FrameSize, nil)
		m.EXPECT().SetReadDeadline(gomock.Any()).Return(nil)
		m.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
			copy(b, reply)
			return len(reply), fakeAddr("192.168.1.50:60000"), nil
		})
		m.EXPECT().Close().Return(nil)
	})
	_ = m

	var resp protocol.GetConfigResponse
	err := SendAndReceive(context.Background(), Config{}, "192.168.1.50", &protocol.GetConfigRequest{DeviceID: 423187757}, &resp)
	require.NoError(t, err)
	require.Equal(t, uint32(423187757), resp.DeviceID)
}

func TestSendAndReceiveTimeout(t *testing.T) {
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		m.EXPECT().WriteTo(gomock.Any(), gomock.Any()).Return(protocol.FrameSize, nil)
		m.EXPECT().SetReadDeadline(gomock.Any()).Return(nil)
		m.EXPECT().ReadFrom(gomock.Any()).Return(0, nil, context.DeadlineExceeded)
		m.EXPECT().Close().Return(nil)
	})

	var resp protocol.GetConfigResponse
	err := SendAndReceive(context.Background(), Config{}, "192.168.1.50", &protocol.GetConfigRequest{DeviceID: 1}, &resp)
	require.ErrorIs(t, err, ErrNoReply)
}

// TestBroadcastAndReceiveCollectsReplies matches scenario S5: two
// mocked responders each emit one GetConfig frame, then the read
// deadline fires and the fan-in returns both with no error.
func TestBroadcastAndReceiveCollectsReplies(t *testing.T) {
	first := getConfigFrame(t, 1)
	second := getConfigFrame(t, 2)
	calls := 0
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		m.EXPECT().WriteTo(gomock.Any(), gomock.Any()).Return(protocol.FrameSize, nil)
		m.EXPECT().SetReadDeadline(gomock.Any()).Return(nil).AnyTimes()
		m.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
			calls++
			switch calls {
			case 1:
				copy(b, first)
				return len(first), fakeAddr("192.168.1.10:60000"), nil
			case 2:
				copy(b, second)
				return len(second), fakeAddr("192.168.1.11:60000"), nil
			default:
				return 0, nil, context.DeadlineExceeded
			}
		}).AnyTimes()
		m.EXPECT().Close().Return(nil).AnyTimes()
	})

	results, err := BroadcastAndReceive(context.Background(), Config{}, &protocol.GetConfigRequest{DeviceID: 0}, func() protocol.Packet {
		return &protocol.GetConfigResponse{}
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

// TestBroadcastAndReceiveDropsMismatchedFrames confirms malformed or
// wrong-opcode replies are silently dropped, not surfaced as errors.
func TestBroadcastAndReceiveDropsMismatchedFrames(t *testing.T) {
	badOpcode, err := protocol.Bytes(&protocol.GetTimeResponse{DeviceID: 9})
	require.NoError(t, err)
	good := getConfigFrame(t, 5)
	calls := 0
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		m.EXPECT().WriteTo(gomock.Any(), gomock.Any()).Return(protocol.FrameSize, nil)
		m.EXPECT().SetReadDeadline(gomock.Any()).Return(nil).AnyTimes()
		m.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
			calls++
			switch calls {
			case 1:
				copy(b, badOpcode)
				return len(badOpcode), fakeAddr("192.168.1.10:60000"), nil
			case 2:
				copy(b, good)
				return len(good), fakeAddr("192.168.1.11:60000"), nil
			default:
				return 0, nil, context.DeadlineExceeded
			}
		}).AnyTimes()
		m.EXPECT().Close().Return(nil).AnyTimes()
	})

	results, err := BroadcastAndReceive(context.Background(), Config{}, &protocol.GetConfigRequest{DeviceID: 0}, func() protocol.Packet {
		return &protocol.GetConfigResponse{}
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

// TestListenRejectsUnexpectedOpcode matches scenario S6.
func TestListenRejectsUnexpectedOpcode(t *testing.T) {
	frame, err := protocol.Bytes(&protocol.SetTimeRequest{DeviceID: 1})
	require.NoError(t, err)
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
			copy(b, frame)
			return len(frame), fakeAddr("192.168.1.10:60000"), nil
		})
		m.EXPECT().Close().Return(nil)
	})

	err = Listen(context.Background(), Config{}, func(protocol.StatusResponse) {
		t.Fatal("handler must not be invoked for an unexpected opcode")
	})
	require.EqualError(t, err, "cannot listen for opcode 0x30")
}

func TestListenInvokesHandlerForStatus(t *testing.T) {
	frame, err := protocol.Bytes(&protocol.StatusResponse{DeviceID: 7})
	require.NoError(t, err)
	calls := 0
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
			calls++
			if calls == 1 {
				copy(b, frame)
				return len(frame), fakeAddr("192.168.1.10:60000"), nil
			}
			return 0, nil, net.ErrClosed
		}).AnyTimes()
		m.EXPECT().Close().Return(nil).AnyTimes()
	})

	var got protocol.StatusResponse
	err = Listen(context.Background(), Config{}, func(s protocol.StatusResponse) {
		got = s
	})
	require.ErrorIs(t, err, net.ErrClosed)
	require.Equal(t, uint32(7), got.DeviceID)
}

func TestSend(t *testing.T) {
	withMockSocket(t, func(m *MockSocket) {
		m.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		m.EXPECT().WriteTo(gomock.Any(), gomock.Any()).Return(protocol.FrameSize, nil)
		m.EXPECT().Close().Return(nil)
	})

	addr, _ := protocol.ParseIPv4("192.168.1.125")
	subnet, _ := protocol.ParseIPv4("255.255.255.0")
	gateway, _ := protocol.ParseIPv4("192.168.1.0")
	req := &protocol.SetAddressRequest{DeviceID: 1, Address: addr, Subnet: subnet, Gateway: gateway, Magic: protocol.MagicWord}
	err := Send(Config{}, "192.168.1.50", req)
	require.NoError(t, err)
}
