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

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-wiegand/wiegand/wire"
)

// hexBytes is a small helper so scenario tests can be written as the
// space-separated hex strings the specification uses.
func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	var out []byte
	var hi, lo int8 = -1, -1
	nibble := func(c byte) int8 {
		switch {
		case c >= '0' && c <= '9':
			return int8(c - '0')
		case c >= 'A' && c <= 'F':
			return int8(c-'A') + 10
		case c >= 'a' && c <= 'f':
			return int8(c-'a') + 10
		default:
			return -1
		}
	}
	for i := 0; i < len(s); i++ {
		n := nibble(s[i])
		if n < 0 {
			continue
		}
		if hi < 0 {
			hi = n
			continue
		}
		lo = n
		out = append(out, byte(hi)<<4|byte(lo))
		hi, lo = -1, -1
	}
	require.GreaterOrEqual(t, len(out), 0)
	return out
}

func padTo64(b []byte) []byte {
	out := make([]byte, FrameSize)
	copy(out, b)
	return out
}

// S1 from the specification's concrete scenarios.
func TestScenarioAddTaskEncoding(t *testing.T) {
	req := &AddTaskRequest{
		DeviceID:  423187757,
		From:      wire.NewDateBCD(2021, 4, 1),
		To:        wire.NewDateBCD(2021, 12, 29),
		Weekdays:  [7]bool{true, true, false, true, false, true, true},
		At:        wire.TimeHMBCD{Hour: 8, Minute: 30},
		Door:      3,
		Task:      4,
		MoreCards: 7,
	}
	got, err := Bytes(req)
	require.NoError(t, err)

	want := padTo64(hexBytes(t, `
		17 A8 00 00 2D 55 39 19
		20 21 04 01 20 21 12 29
		01 01 00 01 00 01 01
		08 30 03 04 07
	`))
	require.Equal(t, want, got)
}

// S2 from the specification's concrete scenarios.
func TestScenarioGetConfigDecoding(t *testing.T) {
	frame := padTo64(hexBytes(t, `
		17 94 00 00 2D 55 39 19
		C0 A8 00 00
		FF FF FF 00
		00 00 00 00
		00 66 19 39 55 2D
		08 92
		20 18 08 16
	`))

	var resp GetConfigResponse
	require.NoError(t, FromBytes(frame, &resp))

	require.Equal(t, uint32(423187757), resp.DeviceID)
	require.Equal(t, "192.168.0.0", resp.Address.String())
	require.Equal(t, "255.255.255.0", resp.Subnet.String())
	require.Equal(t, "0.0.0.0", resp.Gateway.String())
	require.Equal(t, "00:66:19:39:55:2d", resp.MAC.String())
	require.Equal(t, "8.146", resp.Version.String())
	require.Equal(t, "2018-08-16", resp.Date.String())
}

// S4 from the specification's concrete scenarios.
func TestScenarioSetAddressEncoding(t *testing.T) {
	addr, err := ParseIPv4("192.168.1.125")
	require.NoError(t, err)
	subnet, err := ParseIPv4("255.255.255.0")
	require.NoError(t, err)
	gateway, err := ParseIPv4("192.168.1.0")
	require.NoError(t, err)

	req := &SetAddressRequest{
		DeviceID: 423187757,
		Address:  addr,
		Subnet:   subnet,
		Gateway:  gateway,
		Magic:    MagicWord,
	}
	got, err := Bytes(req)
	require.NoError(t, err)

	want := padTo64(hexBytes(t, `
		17 96 00 00 2D 55 39 19
		C0 A8 01 7D
		FF FF FF 00
		C0 A8 01 00
		55 AA AA 55
	`))
	require.Equal(t, want, got)
}

// Layout invariants from the specification's testable properties.
func TestLayoutInvariants(t *testing.T) {
	requests := []Packet{
		&StatusRequest{DeviceID: 1},
		&SetTimeRequest{DeviceID: 1},
		&OpenDoorRequest{DeviceID: 1, Door: 2},
		&PutCardRequest{DeviceID: 1, Card: 2},
		&DeleteAllCardsRequest{DeviceID: 1, Magic: MagicWord},
		&ClearTimeProfilesRequest{DeviceID: 1, Magic: MagicWord},
		&SetAddressRequest{DeviceID: 1, Magic: MagicWord},
		&ClearTaskListRequest{DeviceID: 1, Magic: MagicWord},
		&RefreshTaskListRequest{DeviceID: 1, Magic: MagicWord},
		&SetEventIndexRequest{DeviceID: 1, Magic: MagicWord},
	}
	for _, req := range requests {
		b, err := Bytes(req)
		require.NoError(t, err)
		require.Len(t, b, FrameSize)
		require.Equal(t, byte(HeaderByte), b[0])
		require.Equal(t, byte(req.OpCode()), b[1])
	}
}

func TestDestructiveOpcodesCarryMagicWord(t *testing.T) {
	cases := []struct {
		op  OpCode
		pkt Packet
	}{
		{OpDeleteAllCards, &DeleteAllCardsRequest{DeviceID: 1, Magic: MagicWord}},
		{OpClearTimeProfiles, &ClearTimeProfilesRequest{DeviceID: 1, Magic: MagicWord}},
		{OpSetAddress, &SetAddressRequest{DeviceID: 1, Magic: MagicWord}},
		{OpClearTaskList, &ClearTaskListRequest{DeviceID: 1, Magic: MagicWord}},
		{OpRefreshTaskList, &RefreshTaskListRequest{DeviceID: 1, Magic: MagicWord}},
		{OpSetEventIndex, &SetEventIndexRequest{DeviceID: 1, Index: 0, Magic: MagicWord}},
	}
	magic := hexBytes(t, "55 AA AA 55")
	for _, c := range cases {
		require.True(t, IsDestructive(c.op))
		b, err := Bytes(c.pkt)
		require.NoError(t, err)
		require.Contains(t, string(b), string(magic), "opcode %s payload must carry the magic word", c.op)
	}
}
