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

import "fmt"

// SetListenerRequest tells a controller where to push unsolicited
// status events.
type SetListenerRequest struct {
	DeviceID uint32
	Address  IPv4
	Port     uint16
}

func (r *SetListenerRequest) OpCode() OpCode { return OpSetListener }

func (r *SetListenerRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetListenerRequest")
	}
	copy(b, newFrame(OpSetListener, r.DeviceID))
	pos := headerSize
	if _, err := r.Address.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += IPv4Size
	putUint16(b[pos:], r.Port)
	return FrameSize, nil
}

func (r *SetListenerRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetListener); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	if err := r.Address.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += IPv4Size
	r.Port = getUint16(b[pos:])
	return nil
}

// SetListenerResponse reports whether the listener address was applied.
type SetListenerResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *SetListenerResponse) OpCode() OpCode { return OpSetListener }

func (r *SetListenerResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetListenerResponse")
	}
	copy(b, newFrame(OpSetListener, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *SetListenerResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetListener); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// GetListenerRequest asks a controller for its configured listener address.
type GetListenerRequest struct {
	DeviceID uint32
}

func (r *GetListenerRequest) OpCode() OpCode { return OpGetListener }

func (r *GetListenerRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetListenerRequest")
	}
	copy(b, newFrame(OpGetListener, r.DeviceID))
	return FrameSize, nil
}

func (r *GetListenerRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetListener); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	return nil
}

// GetListenerResponse carries a controller's configured listener address.
type GetListenerResponse struct {
	DeviceID uint32
	Address  IPv4
	Port     uint16
}

func (r *GetListenerResponse) OpCode() OpCode { return OpGetListener }

func (r *GetListenerResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetListenerResponse")
	}
	copy(b, newFrame(OpGetListener, r.DeviceID))
	pos := headerSize
	if _, err := r.Address.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += IPv4Size
	putUint16(b[pos:], r.Port)
	return FrameSize, nil
}

func (r *GetListenerResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetListener); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	if err := r.Address.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += IPv4Size
	r.Port = getUint16(b[pos:])
	return nil
}
