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
	"encoding/binary"
	"fmt"

	"github.com/go-wiegand/wiegand/wire"
)

// StatusRequest asks a controller for its current status. It is also the
// shape polled on a timer by callers that don't rely on the unsolicited
// push (see the listen primitive in package transport).
type StatusRequest struct {
	DeviceID uint32
}

// OpCode implements Packet.
func (r *StatusRequest) OpCode() OpCode { return OpStatus }

// MarshalBinaryTo implements Packet.
func (r *StatusRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write StatusRequest")
	}
	copy(b, newFrame(OpStatus, r.DeviceID))
	return FrameSize, nil
}

// UnmarshalBinary implements Packet.
func (r *StatusRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpStatus); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return nil
}

// StatusResponse is both the reply to StatusRequest and the layout of the
// unsolicited status push a controller sends to its configured listener.
type StatusResponse struct {
	DeviceID    uint32
	EventIndex  uint32
	EventType   uint8
	Granted     bool
	Door        uint8
	Direction   uint8
	Card        uint32
	Timestamp   wire.DateTime
	Reason      uint8
	DoorOpen    [4]bool
	DoorButton  [4]bool
	SystemError uint8
	SystemTime  wire.TimeHMSBCD
	Sequence    uint32
	Reserved    uint32
	Special     uint8
	Relays      uint8
	Inputs      uint8
	SystemDate  wire.DateShortBCD
}

// OpCode implements Packet.
func (r *StatusResponse) OpCode() OpCode { return OpStatus }

// MarshalBinaryTo implements Packet.
func (r *StatusResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write StatusResponse")
	}
	copy(b, newFrame(OpStatus, r.DeviceID))
	pos := headerSize
	binary.LittleEndian.PutUint32(b[pos:], r.EventIndex)
	pos += 4
	b[pos] = r.EventType
	pos++
	putBool(b[pos:], r.Granted)
	pos++
	b[pos] = r.Door
	pos++
	b[pos] = r.Direction
	pos++
	binary.LittleEndian.PutUint32(b[pos:], r.Card)
	pos += 4
	if _, err := r.Timestamp.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateTimeSize
	b[pos] = r.Reason
	pos++
	for _, open := range r.DoorOpen {
		putBool(b[pos:], open)
		pos++
	}
	for _, pressed := range r.DoorButton {
		putBool(b[pos:], pressed)
		pos++
	}
	b[pos] = r.SystemError
	pos++
	if _, err := r.SystemTime.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.TimeHMSBCDSize
	binary.LittleEndian.PutUint32(b[pos:], r.Sequence)
	pos += 4
	binary.LittleEndian.PutUint32(b[pos:], r.Reserved)
	pos += 4
	b[pos] = r.Special
	pos++
	b[pos] = r.Relays
	pos++
	b[pos] = r.Inputs
	pos++
	if _, err := r.SystemDate.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateShortBCDSize
	return FrameSize, nil
}

// UnmarshalBinary implements Packet.
func (r *StatusResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpStatus); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	pos := headerSize
	r.EventIndex = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	r.EventType = b[pos]
	pos++
	r.Granted = b[pos] != 0
	pos++
	r.Door = b[pos]
	pos++
	r.Direction = b[pos]
	pos++
	r.Card = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	if err := r.Timestamp.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateTimeSize
	r.Reason = b[pos]
	pos++
	for i := range r.DoorOpen {
		r.DoorOpen[i] = b[pos] != 0
		pos++
	}
	for i := range r.DoorButton {
		r.DoorButton[i] = b[pos] != 0
		pos++
	}
	r.SystemError = b[pos]
	pos++
	if err := r.SystemTime.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.TimeHMSBCDSize
	r.Sequence = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	r.Reserved = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	r.Special = b[pos]
	pos++
	r.Relays = b[pos]
	pos++
	r.Inputs = b[pos]
	pos++
	return r.SystemDate.UnmarshalBinary(b[pos:])
}
