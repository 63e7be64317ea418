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
)

// OpenDoorRequest momentarily unlocks one of the controller's four doors.
type OpenDoorRequest struct {
	DeviceID uint32
	Door     uint8
}

func (r *OpenDoorRequest) OpCode() OpCode { return OpOpenDoor }

func (r *OpenDoorRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write OpenDoorRequest")
	}
	copy(b, newFrame(OpOpenDoor, r.DeviceID))
	b[headerSize] = r.Door
	return FrameSize, nil
}

func (r *OpenDoorRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpOpenDoor); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Door = b[headerSize]
	return nil
}

// OpenDoorResponse reports whether the open-door command was accepted.
type OpenDoorResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *OpenDoorResponse) OpCode() OpCode { return OpOpenDoor }

func (r *OpenDoorResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write OpenDoorResponse")
	}
	copy(b, newFrame(OpOpenDoor, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *OpenDoorResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpOpenDoor); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Success = b[headerSize] != 0
	return nil
}

// DoorControlMode is the operating mode of a door's control relay.
type DoorControlMode uint8

// The three modes a door can be placed in.
const (
	DoorControlNormallyOpen   DoorControlMode = 1
	DoorControlNormallyClosed DoorControlMode = 2
	DoorControlControlled     DoorControlMode = 3
)

// SetDoorControlStateRequest changes a door's control mode and unlock delay.
type SetDoorControlStateRequest struct {
	DeviceID uint32
	Door     uint8
	Mode     DoorControlMode
	Delay    uint8
}

func (r *SetDoorControlStateRequest) OpCode() OpCode { return OpSetDoorControlState }

func (r *SetDoorControlStateRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetDoorControlStateRequest")
	}
	copy(b, newFrame(OpSetDoorControlState, r.DeviceID))
	b[headerSize] = r.Door
	b[headerSize+1] = byte(r.Mode)
	b[headerSize+2] = r.Delay
	return FrameSize, nil
}

func (r *SetDoorControlStateRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetDoorControlState); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Door = b[headerSize]
	r.Mode = DoorControlMode(b[headerSize+1])
	r.Delay = b[headerSize+2]
	return nil
}

// SetDoorControlStateResponse echoes the door's new control state.
type SetDoorControlStateResponse struct {
	DeviceID uint32
	Door     uint8
	Mode     DoorControlMode
	Delay    uint8
}

func (r *SetDoorControlStateResponse) OpCode() OpCode { return OpSetDoorControlState }

func (r *SetDoorControlStateResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetDoorControlStateResponse")
	}
	copy(b, newFrame(OpSetDoorControlState, r.DeviceID))
	b[headerSize] = r.Door
	b[headerSize+1] = byte(r.Mode)
	b[headerSize+2] = r.Delay
	return FrameSize, nil
}

func (r *SetDoorControlStateResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetDoorControlState); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Door = b[headerSize]
	r.Mode = DoorControlMode(b[headerSize+1])
	r.Delay = b[headerSize+2]
	return nil
}

// GetDoorControlStateRequest asks for a door's current control state.
type GetDoorControlStateRequest struct {
	DeviceID uint32
	Door     uint8
}

func (r *GetDoorControlStateRequest) OpCode() OpCode { return OpGetDoorControlState }

func (r *GetDoorControlStateRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetDoorControlStateRequest")
	}
	copy(b, newFrame(OpGetDoorControlState, r.DeviceID))
	b[headerSize] = r.Door
	return FrameSize, nil
}

func (r *GetDoorControlStateRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetDoorControlState); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Door = b[headerSize]
	return nil
}

// GetDoorControlStateResponse carries a door's current control state.
type GetDoorControlStateResponse struct {
	DeviceID uint32
	Door     uint8
	Mode     DoorControlMode
	Delay    uint8
}

func (r *GetDoorControlStateResponse) OpCode() OpCode { return OpGetDoorControlState }

func (r *GetDoorControlStateResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetDoorControlStateResponse")
	}
	copy(b, newFrame(OpGetDoorControlState, r.DeviceID))
	b[headerSize] = r.Door
	b[headerSize+1] = byte(r.Mode)
	b[headerSize+2] = r.Delay
	return FrameSize, nil
}

func (r *GetDoorControlStateResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetDoorControlState); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Door = b[headerSize]
	r.Mode = DoorControlMode(b[headerSize+1])
	r.Delay = b[headerSize+2]
	return nil
}
