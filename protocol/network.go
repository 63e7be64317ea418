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

// GetConfigRequest asks a controller for its full network and firmware
// configuration.
type GetConfigRequest struct {
	DeviceID uint32
}

func (r *GetConfigRequest) OpCode() OpCode { return OpGetConfig }

func (r *GetConfigRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetConfigRequest")
	}
	copy(b, newFrame(OpGetConfig, r.DeviceID))
	return FrameSize, nil
}

func (r *GetConfigRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetConfig); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	return nil
}

// GetConfigResponse carries a controller's network and firmware configuration.
type GetConfigResponse struct {
	DeviceID uint32
	Address  IPv4
	Subnet   IPv4
	Gateway  IPv4
	MAC      wire.MacAddress
	Version  wire.Version
	Date     wire.DateBCD
}

func (r *GetConfigResponse) OpCode() OpCode { return OpGetConfig }

func (r *GetConfigResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetConfigResponse")
	}
	copy(b, newFrame(OpGetConfig, r.DeviceID))
	pos := headerSize
	for _, addr := range []IPv4{r.Address, r.Subnet, r.Gateway} {
		if _, err := addr.MarshalBinaryTo(b[pos:]); err != nil {
			return 0, err
		}
		pos += IPv4Size
	}
	if _, err := r.MAC.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.MacAddressSize
	if _, err := r.Version.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.VersionSize
	if _, err := r.Date.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	return FrameSize, nil
}

func (r *GetConfigResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetConfig); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	for _, addr := range []*IPv4{&r.Address, &r.Subnet, &r.Gateway} {
		if err := addr.UnmarshalBinary(b[pos:]); err != nil {
			return err
		}
		pos += IPv4Size
	}
	if err := r.MAC.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.MacAddressSize
	if err := r.Version.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.VersionSize
	return r.Date.UnmarshalBinary(b[pos:])
}

// SetAddressRequest reconfigures a controller's network address. It is
// destructive (the controller drops off the old address immediately)
// and gated by MagicWord; it has no response.
type SetAddressRequest struct {
	DeviceID uint32
	Address  IPv4
	Subnet   IPv4
	Gateway  IPv4
	Magic    uint32
}

func (r *SetAddressRequest) OpCode() OpCode { return OpSetAddress }

func (r *SetAddressRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetAddressRequest")
	}
	copy(b, newFrame(OpSetAddress, r.DeviceID))
	pos := headerSize
	for _, addr := range []IPv4{r.Address, r.Subnet, r.Gateway} {
		if _, err := addr.MarshalBinaryTo(b[pos:]); err != nil {
			return 0, err
		}
		pos += IPv4Size
	}
	putUint32(b[pos:], r.Magic)
	return FrameSize, nil
}

func (r *SetAddressRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetAddress); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	for _, addr := range []*IPv4{&r.Address, &r.Subnet, &r.Gateway} {
		if err := addr.UnmarshalBinary(b[pos:]); err != nil {
			return err
		}
		pos += IPv4Size
	}
	r.Magic = getUint32(b[pos:])
	return nil
}
