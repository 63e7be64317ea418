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

package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-wiegand/wiegand/protocol"
	"github.com/go-wiegand/wiegand/wire"
)

func TestNewCardZeroNumberIsEndOfList(t *testing.T) {
	card, err := newCard(0, wire.DateBCD{}, wire.DateBCD{}, [4]uint8{})
	require.NoError(t, err)
	require.Nil(t, card)
}

func TestNewCard(t *testing.T) {
	from := wire.NewDateBCD(2021, 1, 1)
	to := wire.NewDateBCD(2021, 12, 31)
	card, err := newCard(12345, from, to, [4]uint8{1, 0, 2, 0})
	require.NoError(t, err)
	require.NotNil(t, card)
	require.Equal(t, uint32(12345), card.Number)
	require.Equal(t, [4]uint8{1, 0, 2, 0}, card.Doors)
}

func TestNewEventZeroIndexIsNone(t *testing.T) {
	event, err := newEvent(0, 1, true, 1, 0, 99, wire.DateTime{}, 1)
	require.NoError(t, err)
	require.Nil(t, event)
}

func TestNewStatusNoLastEvent(t *testing.T) {
	shortDate, err := wire.NewDateShortBCD(2021, 6, 15)
	require.NoError(t, err)
	resp := &protocol.StatusResponse{
		DeviceID:   1,
		EventIndex: 0,
		SystemDate: shortDate,
	}
	status, err := newStatus(resp)
	require.NoError(t, err)
	require.Nil(t, status.LastEvent)
}

func TestNewStatusWithLastEvent(t *testing.T) {
	shortDate, err := wire.NewDateShortBCD(2021, 6, 15)
	require.NoError(t, err)
	resp := &protocol.StatusResponse{
		DeviceID:   1,
		EventIndex: 7,
		EventType:  1,
		Granted:    true,
		Door:       2,
		Card:       555,
		Timestamp:  wire.DateTimeFromTime(time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)),
		Reason:     1,
		SystemDate: shortDate,
	}
	status, err := newStatus(resp)
	require.NoError(t, err)
	require.NotNil(t, status.LastEvent)
	require.Equal(t, uint32(7), status.LastEvent.Index)
	require.Equal(t, uint32(555), status.LastEvent.Card)
}

func TestDoorControlDelayTruncation(t *testing.T) {
	dc := DoorControl{Delay: 1000000000000} // far beyond 255s in nanoseconds * huge
	require.Equal(t, uint8(255), dc.delaySeconds())
}

