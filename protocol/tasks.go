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

// ClearTaskListRequest wipes the controller's scheduled task list.
type ClearTaskListRequest struct {
	DeviceID uint32
	Magic    uint32
}

func (r *ClearTaskListRequest) OpCode() OpCode { return OpClearTaskList }

func (r *ClearTaskListRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write ClearTaskListRequest")
	}
	copy(b, newFrame(OpClearTaskList, r.DeviceID))
	putUint32(b[headerSize:], r.Magic)
	return FrameSize, nil
}

func (r *ClearTaskListRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpClearTaskList); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Magic = getUint32(b[headerSize:])
	return nil
}

// ClearTaskListResponse reports whether the task list was cleared.
type ClearTaskListResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *ClearTaskListResponse) OpCode() OpCode { return OpClearTaskList }

func (r *ClearTaskListResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write ClearTaskListResponse")
	}
	copy(b, newFrame(OpClearTaskList, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *ClearTaskListResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpClearTaskList); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// AddTaskRequest appends one scheduled task to the controller's task list.
type AddTaskRequest struct {
	DeviceID  uint32
	From      wire.DateBCD
	To        wire.DateBCD
	Weekdays  [weekdayCount]bool
	At        wire.TimeHMBCD
	Door      uint8
	Task      uint8
	MoreCards uint8
}

func (r *AddTaskRequest) OpCode() OpCode { return OpAddTask }

func (r *AddTaskRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write AddTaskRequest")
	}
	copy(b, newFrame(OpAddTask, r.DeviceID))
	pos := headerSize
	if _, err := r.From.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	if _, err := r.To.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	for _, d := range r.Weekdays {
		putBool(b[pos:], d)
		pos++
	}
	if _, err := r.At.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.TimeHMBCDSize
	b[pos] = r.Door
	pos++
	b[pos] = r.Task
	pos++
	b[pos] = r.MoreCards
	return FrameSize, nil
}

func (r *AddTaskRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpAddTask); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	pos := headerSize
	if err := r.From.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	if err := r.To.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	for i := range r.Weekdays {
		r.Weekdays[i] = b[pos] != 0
		pos++
	}
	if err := r.At.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.TimeHMBCDSize
	r.Door = b[pos]
	pos++
	r.Task = b[pos]
	pos++
	r.MoreCards = b[pos]
	return nil
}

// AddTaskResponse reports whether the task was added.
type AddTaskResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *AddTaskResponse) OpCode() OpCode { return OpAddTask }

func (r *AddTaskResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write AddTaskResponse")
	}
	copy(b, newFrame(OpAddTask, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *AddTaskResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpAddTask); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}

// RefreshTaskListRequest commits the pending task list additions and
// starts them running.
type RefreshTaskListRequest struct {
	DeviceID uint32
	Magic    uint32
}

func (r *RefreshTaskListRequest) OpCode() OpCode { return OpRefreshTaskList }

func (r *RefreshTaskListRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write RefreshTaskListRequest")
	}
	copy(b, newFrame(OpRefreshTaskList, r.DeviceID))
	putUint32(b[headerSize:], r.Magic)
	return FrameSize, nil
}

func (r *RefreshTaskListRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpRefreshTaskList); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Magic = getUint32(b[headerSize:])
	return nil
}

// RefreshTaskListResponse reports whether the task list was refreshed.
type RefreshTaskListResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *RefreshTaskListResponse) OpCode() OpCode { return OpRefreshTaskList }

func (r *RefreshTaskListResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write RefreshTaskListResponse")
	}
	copy(b, newFrame(OpRefreshTaskList, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *RefreshTaskListResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpRefreshTaskList); err != nil {
		return err
	}
	r.DeviceID = frameDeviceIDUnchecked(b)
	r.Success = b[headerSize] != 0
	return nil
}
