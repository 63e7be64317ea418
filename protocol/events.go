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
	"fmt"

	"github.com/go-wiegand/wiegand/wire"
)

// SetRecordSpecialEventsRequest toggles whether a controller records
// door-button and system events in addition to card swipes.
type SetRecordSpecialEventsRequest struct {
	DeviceID uint32
	Enabled  bool
}

func (r *SetRecordSpecialEventsRequest) OpCode() OpCode { return OpSetRecordSpecialEvents }

func (r *SetRecordSpecialEventsRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetRecordSpecialEventsRequest")
	}
	copy(b, newFrame(OpSetRecordSpecialEvents, r.DeviceID))
	putBool(b[headerSize:], r.Enabled)
	return FrameSize, nil
}

func (r *SetRecordSpecialEventsRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetRecordSpecialEvents); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Enabled = b[headerSize] != 0
	return nil
}

// SetRecordSpecialEventsResponse reports whether the setting was applied.
type SetRecordSpecialEventsResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *SetRecordSpecialEventsResponse) OpCode() OpCode { return OpSetRecordSpecialEvents }

func (r *SetRecordSpecialEventsResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetRecordSpecialEventsResponse")
	}
	copy(b, newFrame(OpSetRecordSpecialEvents, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *SetRecordSpecialEventsResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetRecordSpecialEvents); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// GetEventRequest asks for the event stored at the given index.
type GetEventRequest struct {
	DeviceID uint32
	Index    uint32
}

func (r *GetEventRequest) OpCode() OpCode { return OpGetEvent }

func (r *GetEventRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetEventRequest")
	}
	copy(b, newFrame(OpGetEvent, r.DeviceID))
	putUint32(b[headerSize:], r.Index)
	return FrameSize, nil
}

func (r *GetEventRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetEvent); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Index = getUint32(b[headerSize:])
	return nil
}

// GetEventResponse carries one logged event. An Index of zero means
// there is no event stored at the requested position.
type GetEventResponse struct {
	DeviceID  uint32
	Index     uint32
	EventType uint8
	Granted   bool
	Door      uint8
	Direction uint8
	Card      uint32
	Timestamp wire.DateTime
	Reason    uint8
}

func (r *GetEventResponse) OpCode() OpCode { return OpGetEvent }

func (r *GetEventResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetEventResponse")
	}
	copy(b, newFrame(OpGetEvent, r.DeviceID))
	pos := headerSize
	putUint32(b[pos:], r.Index)
	pos += 4
	b[pos] = r.EventType
	pos++
	putBool(b[pos:], r.Granted)
	pos++
	b[pos] = r.Door
	pos++
	b[pos] = r.Direction
	pos++
	putUint32(b[pos:], r.Card)
	pos += 4
	if _, err := r.Timestamp.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateTimeSize
	b[pos] = r.Reason
	return FrameSize, nil
}

func (r *GetEventResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetEvent); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	r.Index = getUint32(b[pos:])
	pos += 4
	r.EventType = b[pos]
	pos++
	r.Granted = b[pos] != 0
	pos++
	r.Door = b[pos]
	pos++
	r.Direction = b[pos]
	pos++
	r.Card = getUint32(b[pos:])
	pos += 4
	if err := r.Timestamp.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateTimeSize
	r.Reason = b[pos]
	return nil
}

// SetEventIndexRequest rewinds or fast-forwards the controller's
// next-event cursor. It is a destructive command gated by MagicWord.
type SetEventIndexRequest struct {
	DeviceID uint32
	Index    uint32
	Magic    uint32
}

func (r *SetEventIndexRequest) OpCode() OpCode { return OpSetEventIndex }

func (r *SetEventIndexRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetEventIndexRequest")
	}
	copy(b, newFrame(OpSetEventIndex, r.DeviceID))
	pos := headerSize
	putUint32(b[pos:], r.Index)
	pos += 4
	putUint32(b[pos:], r.Magic)
	return FrameSize, nil
}

func (r *SetEventIndexRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetEventIndex); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	r.Index = getUint32(b[pos:])
	pos += 4
	r.Magic = getUint32(b[pos:])
	return nil
}

// SetEventIndexResponse reports whether the cursor was moved.
type SetEventIndexResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *SetEventIndexResponse) OpCode() OpCode { return OpSetEventIndex }

func (r *SetEventIndexResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetEventIndexResponse")
	}
	copy(b, newFrame(OpSetEventIndex, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *SetEventIndexResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetEventIndex); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// GetEventIndexRequest asks for the controller's current event cursor.
type GetEventIndexRequest struct {
	DeviceID uint32
}

func (r *GetEventIndexRequest) OpCode() OpCode { return OpGetEventIndex }

func (r *GetEventIndexRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetEventIndexRequest")
	}
	copy(b, newFrame(OpGetEventIndex, r.DeviceID))
	return FrameSize, nil
}

func (r *GetEventIndexRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetEventIndex); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	return nil
}

// GetEventIndexResponse carries the controller's current event cursor.
type GetEventIndexResponse struct {
	DeviceID uint32
	Index    uint32
}

func (r *GetEventIndexResponse) OpCode() OpCode { return OpGetEventIndex }

func (r *GetEventIndexResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetEventIndexResponse")
	}
	copy(b, newFrame(OpGetEventIndex, r.DeviceID))
	putUint32(b[headerSize:], r.Index)
	return FrameSize, nil
}

func (r *GetEventIndexResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetEventIndex); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Index = getUint32(b[headerSize:])
	return nil
}
