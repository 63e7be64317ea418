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

// SetTimeRequest sets the controller's system clock.
type SetTimeRequest struct {
	DeviceID uint32
	DateTime wire.DateTime
}

func (r *SetTimeRequest) OpCode() OpCode { return OpSetTime }

func (r *SetTimeRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetTimeRequest")
	}
	copy(b, newFrame(OpSetTime, r.DeviceID))
	if _, err := r.DateTime.MarshalBinaryTo(b[headerSize:]); err != nil {
		return 0, err
	}
	return FrameSize, nil
}

func (r *SetTimeRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetTime); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return r.DateTime.UnmarshalBinary(b[headerSize:])
}

// SetTimeResponse echoes the time the controller now has set.
type SetTimeResponse struct {
	DeviceID uint32
	DateTime wire.DateTime
}

func (r *SetTimeResponse) OpCode() OpCode { return OpSetTime }

func (r *SetTimeResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetTimeResponse")
	}
	copy(b, newFrame(OpSetTime, r.DeviceID))
	if _, err := r.DateTime.MarshalBinaryTo(b[headerSize:]); err != nil {
		return 0, err
	}
	return FrameSize, nil
}

func (r *SetTimeResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetTime); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return r.DateTime.UnmarshalBinary(b[headerSize:])
}

// GetTimeRequest asks a controller for its current system clock.
type GetTimeRequest struct {
	DeviceID uint32
}

func (r *GetTimeRequest) OpCode() OpCode { return OpGetTime }

func (r *GetTimeRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetTimeRequest")
	}
	copy(b, newFrame(OpGetTime, r.DeviceID))
	return FrameSize, nil
}

func (r *GetTimeRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetTime); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return nil
}

// GetTimeResponse carries the controller's current system clock.
type GetTimeResponse struct {
	DeviceID uint32
	DateTime wire.DateTime
}

func (r *GetTimeResponse) OpCode() OpCode { return OpGetTime }

func (r *GetTimeResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetTimeResponse")
	}
	copy(b, newFrame(OpGetTime, r.DeviceID))
	if _, err := r.DateTime.MarshalBinaryTo(b[headerSize:]); err != nil {
		return 0, err
	}
	return FrameSize, nil
}

func (r *GetTimeResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetTime); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return r.DateTime.UnmarshalBinary(b[headerSize:])
}
