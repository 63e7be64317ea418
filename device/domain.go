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

// Package device adapts the wire protocol catalog into typed domain
// records and a Client verb surface, following the conversions package
// protocol's doc comments describe in §4.5 of the on-wire contract.
package device

import (
	"time"

	"github.com/go-wiegand/wiegand/protocol"
	"github.com/go-wiegand/wiegand/wire"
)

// DeviceConfig is a controller's network and firmware configuration, as
// reported by GetConfig.
type DeviceConfig struct {
	ID      uint32
	Address string
	Subnet  string
	Gateway string
	MAC     string
	Version string
	Date    time.Time
}

func newDeviceConfig(r *protocol.GetConfigResponse) (DeviceConfig, error) {
	date, err := r.Date.Time()
	if err != nil {
		return DeviceConfig{}, err
	}
	return DeviceConfig{
		ID:      r.DeviceID,
		Address: r.Address.String(),
		Subnet:  r.Subnet.String(),
		Gateway: r.Gateway.String(),
		MAC:     r.MAC.String(),
		Version: r.Version.String(),
		Date:    date,
	}, nil
}

// Card is one access-control card record. Doors[i] is the permission
// for door i+1: 0 means no access, 1 means access without a time
// profile, and 2..254 means access restricted by the time profile with
// that id.
type Card struct {
	Number uint32
	From   time.Time
	To     time.Time
	Doors  [4]uint8
}

func newCard(number uint32, from, to wire.DateBCD, doors [4]uint8) (*Card, error) {
	if number == 0 {
		return nil, nil
	}
	fromT, err := from.Time()
	if err != nil {
		return nil, err
	}
	toT, err := to.Time()
	if err != nil {
		return nil, err
	}
	return &Card{Number: number, From: fromT, To: toT, Doors: doors}, nil
}

// EventType classifies what produced an Event.
type EventType uint8

// Event types reported by controllers.
const (
	EventNone        EventType = 0
	EventSwipe       EventType = 1
	EventDoor        EventType = 2
	EventAlarm       EventType = 3
	EventOverwritten EventType = 255
)

// Event is one entry in a controller's event log, or the last recorded
// event embedded in a Status.
type Event struct {
	Index     uint32
	Timestamp time.Time
	Type      EventType
	Granted   bool
	Door      uint8
	Direction uint8
	Card      uint32
	Reason    uint8
}

func newEvent(index uint32, eventType uint8, granted bool, door, direction uint8, card uint32, ts wire.DateTime, reason uint8) (*Event, error) {
	if index == 0 {
		return nil, nil
	}
	t, err := ts.ToTime()
	if err != nil {
		return nil, err
	}
	return &Event{
		Index:     index,
		Timestamp: t,
		Type:      EventType(eventType),
		Granted:   granted,
		Door:      door,
		Direction: direction,
		Card:      card,
		Reason:    reason,
	}, nil
}

// Status is a controller's full system status, as reported by GetStatus
// or pushed unsolicited to a configured listener.
type Status struct {
	DeviceID    uint32
	SystemTime  wire.TimeHMSBCD
	SystemDate  time.Time
	DoorOpen    [4]bool
	DoorButton  [4]bool
	Relays      uint8
	Inputs      uint8
	SystemError uint8
	Special     uint8
	Sequence    uint32
	LastEvent   *Event
}

func newStatus(r *protocol.StatusResponse) (*Status, error) {
	event, err := newEvent(r.EventIndex, r.EventType, r.Granted, r.Door, r.Direction, r.Card, r.Timestamp, r.Reason)
	if err != nil {
		return nil, err
	}
	date, err := r.SystemDate.Time()
	if err != nil {
		return nil, err
	}
	return &Status{
		DeviceID:    r.DeviceID,
		SystemTime:  r.SystemTime,
		SystemDate:  date,
		DoorOpen:    r.DoorOpen,
		DoorButton:  r.DoorButton,
		Relays:      r.Relays,
		Inputs:      r.Inputs,
		SystemError: r.SystemError,
		Special:     r.Special,
		Sequence:    r.Sequence,
		LastEvent:   event,
	}, nil
}

// DoorControlMode is the operating mode of a door's control relay.
type DoorControlMode = protocol.DoorControlMode

// The three modes a door can be placed in.
const (
	DoorControlNormallyOpen   = protocol.DoorControlNormallyOpen
	DoorControlNormallyClosed = protocol.DoorControlNormallyClosed
	DoorControlControlled     = protocol.DoorControlControlled
)

// DoorControl is a door's control mode and unlock delay. Delay is
// represented in seconds and is truncated to a byte on send.
type DoorControl struct {
	Mode  DoorControlMode
	Delay time.Duration
}

func newDoorControl(mode protocol.DoorControlMode, delay uint8) DoorControl {
	return DoorControl{Mode: mode, Delay: time.Duration(delay) * time.Second}
}

func (d DoorControl) delaySeconds() uint8 {
	secs := d.Delay / time.Second
	if secs > 255 {
		return 255
	}
	return uint8(secs)
}

// TimeSegment is one start/end window within a TimeProfile.
type TimeSegment struct {
	Start wire.TimeHMBCD
	End   wire.TimeHMBCD
}

// TimeProfile grants access during the active date range, on the
// enabled weekdays, within up to three time segments. Unused segments
// have both Start and End at 00:00.
type TimeProfile struct {
	ID       uint8
	LinkedID uint8
	From     time.Time
	To       time.Time
	Weekdays [7]bool
	Segments [3]TimeSegment
}

func newTimeProfile(r *protocol.GetTimeProfileResponse) (TimeProfile, error) {
	from, err := r.From.Time()
	if err != nil {
		return TimeProfile{}, err
	}
	to, err := r.To.Time()
	if err != nil {
		return TimeProfile{}, err
	}
	var segments [3]TimeSegment
	for i, s := range r.Segments {
		segments[i] = TimeSegment{Start: s.Start, End: s.End}
	}
	return TimeProfile{
		ID:       r.ProfileID,
		LinkedID: r.LinkedID,
		From:     from,
		To:       to,
		Weekdays: r.Weekdays,
		Segments: segments,
	}, nil
}

func (p TimeProfile) toSegments() [3]protocol.TimeSegment {
	var out [3]protocol.TimeSegment
	for i, s := range p.Segments {
		out[i] = protocol.TimeSegment{Start: s.Start, End: s.End}
	}
	return out
}

// TaskID names the action a scheduled Task performs.
type TaskID uint8

// Task actions a controller can schedule.
const (
	TaskControlDoor              TaskID = 1
	TaskUnlockDoor               TaskID = 2
	TaskLockDoor                 TaskID = 3
	TaskDisableTimeProfile       TaskID = 4
	TaskEnableTimeProfile        TaskID = 5
	TaskEnableCardNoPassword     TaskID = 6
	TaskEnableCardWithInPassword TaskID = 7
	TaskEnableCardWithPassword   TaskID = 8
	TaskEnableMoreCards          TaskID = 9
	TaskDisableMoreCards         TaskID = 10
	TaskTriggerOnce              TaskID = 11
	TaskDisablePushButton        TaskID = 12
	TaskEnablePushButton         TaskID = 13
)

// Task is one entry in a controller's scheduled task list.
type Task struct {
	ID        TaskID
	Door      uint8
	From      time.Time
	To        time.Time
	Weekdays  [7]bool
	At        wire.TimeHMBCD
	MoreCards uint8
}
