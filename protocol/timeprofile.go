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

// TimeSegment is one of the three start/end windows in a time profile.
type TimeSegment struct {
	Start wire.TimeHMBCD
	End   wire.TimeHMBCD
}

// timeSegmentCount is the fixed number of segments carried by every
// time profile, regardless of how many are actually in use. Unused
// segments are zero-filled.
const timeSegmentCount = 3

// timeSegmentSize is the wire width of one TimeSegment.
const timeSegmentSize = 2 * wire.TimeHMBCDSize

func (s TimeSegment) marshalTo(b []byte) (int, error) {
	if len(b) < timeSegmentSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write TimeSegment")
	}
	if _, err := s.Start.MarshalBinaryTo(b); err != nil {
		return 0, err
	}
	if _, err := s.End.MarshalBinaryTo(b[wire.TimeHMBCDSize:]); err != nil {
		return 0, err
	}
	return timeSegmentSize, nil
}

func (s *TimeSegment) unmarshal(b []byte) error {
	if len(b) < timeSegmentSize {
		return fmt.Errorf("protocol: not enough data to decode TimeSegment")
	}
	if err := s.Start.UnmarshalBinary(b); err != nil {
		return err
	}
	return s.End.UnmarshalBinary(b[wire.TimeHMBCDSize:])
}

// weekdayCount is the number of weekday-enabled flags in a time profile,
// ordered Monday through Sunday.
const weekdayCount = 7

// SetTimeProfileRequest creates or replaces one time profile.
type SetTimeProfileRequest struct {
	DeviceID  uint32
	ProfileID uint8
	From      wire.DateBCD
	To        wire.DateBCD
	Weekdays  [weekdayCount]bool
	Segments  [timeSegmentCount]TimeSegment
	LinkedID  uint8
}

func (r *SetTimeProfileRequest) OpCode() OpCode { return OpSetTimeProfile }

func (r *SetTimeProfileRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetTimeProfileRequest")
	}
	copy(b, newFrame(OpSetTimeProfile, r.DeviceID))
	if _, err := marshalTimeProfileBody(b[headerSize:], r.ProfileID, r.From, r.To, r.Weekdays, r.Segments, r.LinkedID); err != nil {
		return 0, err
	}
	return FrameSize, nil
}

func (r *SetTimeProfileRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetTimeProfile); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	return unmarshalTimeProfileBody(b[headerSize:], &r.ProfileID, &r.From, &r.To, &r.Weekdays, &r.Segments, &r.LinkedID)
}

// SetTimeProfileResponse reports whether the time profile was stored.
type SetTimeProfileResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *SetTimeProfileResponse) OpCode() OpCode { return OpSetTimeProfile }

func (r *SetTimeProfileResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write SetTimeProfileResponse")
	}
	copy(b, newFrame(OpSetTimeProfile, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *SetTimeProfileResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpSetTimeProfile); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// GetTimeProfileRequest asks a controller for one time profile by id.
type GetTimeProfileRequest struct {
	DeviceID  uint32
	ProfileID uint8
}

func (r *GetTimeProfileRequest) OpCode() OpCode { return OpGetTimeProfile }

func (r *GetTimeProfileRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetTimeProfileRequest")
	}
	copy(b, newFrame(OpGetTimeProfile, r.DeviceID))
	b[headerSize] = r.ProfileID
	return FrameSize, nil
}

func (r *GetTimeProfileRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetTimeProfile); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.ProfileID = b[headerSize]
	return nil
}

// GetTimeProfileResponse carries a time profile's full configuration. A
// ProfileID of zero means the controller has no profile at that slot.
type GetTimeProfileResponse struct {
	DeviceID  uint32
	ProfileID uint8
	From      wire.DateBCD
	To        wire.DateBCD
	Weekdays  [weekdayCount]bool
	Segments  [timeSegmentCount]TimeSegment
	LinkedID  uint8
}

func (r *GetTimeProfileResponse) OpCode() OpCode { return OpGetTimeProfile }

func (r *GetTimeProfileResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetTimeProfileResponse")
	}
	copy(b, newFrame(OpGetTimeProfile, r.DeviceID))
	if _, err := marshalTimeProfileBody(b[headerSize:], r.ProfileID, r.From, r.To, r.Weekdays, r.Segments, r.LinkedID); err != nil {
		return 0, err
	}
	return FrameSize, nil
}

func (r *GetTimeProfileResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetTimeProfile); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	return unmarshalTimeProfileBody(b[headerSize:], &r.ProfileID, &r.From, &r.To, &r.Weekdays, &r.Segments, &r.LinkedID)
}

// ClearTimeProfilesRequest wipes every stored time profile.
type ClearTimeProfilesRequest struct {
	DeviceID uint32
	Magic    uint32
}

func (r *ClearTimeProfilesRequest) OpCode() OpCode { return OpClearTimeProfiles }

func (r *ClearTimeProfilesRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write ClearTimeProfilesRequest")
	}
	copy(b, newFrame(OpClearTimeProfiles, r.DeviceID))
	putUint32(b[headerSize:], r.Magic)
	return FrameSize, nil
}

func (r *ClearTimeProfilesRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpClearTimeProfiles); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Magic = getUint32(b[headerSize:])
	return nil
}

// ClearTimeProfilesResponse echoes the magic word on success.
type ClearTimeProfilesResponse struct {
	DeviceID uint32
	Magic    uint32
}

func (r *ClearTimeProfilesResponse) OpCode() OpCode { return OpClearTimeProfiles }

func (r *ClearTimeProfilesResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write ClearTimeProfilesResponse")
	}
	copy(b, newFrame(OpClearTimeProfiles, r.DeviceID))
	putUint32(b[headerSize:], r.Magic)
	return FrameSize, nil
}

func (r *ClearTimeProfilesResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpClearTimeProfiles); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Magic = getUint32(b[headerSize:])
	return nil
}

func marshalTimeProfileBody(b []byte, profileID uint8, from, to wire.DateBCD, weekdays [weekdayCount]bool, segments [timeSegmentCount]TimeSegment, linkedID uint8) (int, error) {
	pos := 0
	b[pos] = profileID
	pos++
	if _, err := from.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	if _, err := to.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	for _, d := range weekdays {
		putBool(b[pos:], d)
		pos++
	}
	for _, seg := range segments {
		n, err := seg.marshalTo(b[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
	}
	b[pos] = linkedID
	pos++
	return pos, nil
}

func unmarshalTimeProfileBody(b []byte, profileID *uint8, from, to *wire.DateBCD, weekdays *[weekdayCount]bool, segments *[timeSegmentCount]TimeSegment, linkedID *uint8) error {
	pos := 0
	*profileID = b[pos]
	pos++
	if err := from.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	if err := to.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	for i := range weekdays {
		weekdays[i] = b[pos] != 0
		pos++
	}
	for i := range segments {
		if err := segments[i].unmarshal(b[pos:]); err != nil {
			return err
		}
		pos += timeSegmentSize
	}
	*linkedID = b[pos]
	return nil
}
