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
	"context"
	"fmt"

	"github.com/go-wiegand/wiegand/protocol"
	"github.com/go-wiegand/wiegand/transport"
	"github.com/go-wiegand/wiegand/wire"
)

// Client holds the transport configuration shared by every device it
// talks to: bind address, broadcast address, timeout, and (optionally)
// a metrics registry.
type Client struct {
	cfg transport.Config
}

// NewClient builds a Client around cfg. The zero Config is usable.
func NewClient(cfg transport.Config) *Client {
	return &Client{cfg: cfg}
}

// GetDeviceConfigs broadcasts a discovery request and returns the
// configuration of every controller that replies before the timeout.
func (c *Client) GetDeviceConfigs(ctx context.Context) ([]DeviceConfig, error) {
	return Search(ctx, c.cfg)
}

// GetDevices broadcasts a discovery request and returns a Device handle,
// addressed directly at the replying controller's IP, for each one found.
func (c *Client) GetDevices(ctx context.Context) ([]*Device, error) {
	configs, err := c.GetDeviceConfigs(ctx)
	if err != nil {
		return nil, err
	}
	devices := make([]*Device, len(configs))
	for i, cfg := range configs {
		devices[i] = c.Device(cfg.ID, cfg.Address)
	}
	return devices, nil
}

// Device returns a handle for the controller identified by id. addr is
// its unicast IP; an empty addr routes every exchange through the
// configured broadcast address instead (only safe when exactly one
// controller is reachable that way).
func (c *Client) Device(id uint32, addr string) *Device {
	return &Device{client: c, id: id, addr: addr}
}

// Listen opens a socket bound to the client's configured local address
// and invokes handler for every unsolicited status push received, until
// ctx is cancelled or the socket errors. See transport.Listen.
func (c *Client) Listen(ctx context.Context, handler func(Status)) error {
	return transport.Listen(ctx, c.cfg, func(r protocol.StatusResponse) {
		status, err := newStatus(&r)
		if err != nil {
			return
		}
		handler(*status)
	})
}

// Search broadcasts a GetConfig discovery request over cfg and decodes
// every reply received before the read timeout into a DeviceConfig. It
// always succeeds, possibly with an empty slice; only socket-setup
// failures return an error.
func Search(ctx context.Context, cfg transport.Config) ([]DeviceConfig, error) {
	replies, err := transport.BroadcastAndReceive(ctx, cfg, &protocol.GetConfigRequest{}, func() protocol.Packet {
		return &protocol.GetConfigResponse{}
	})
	if err != nil {
		return nil, err
	}
	configs := make([]DeviceConfig, 0, len(replies))
	for _, p := range replies {
		resp, ok := p.(*protocol.GetConfigResponse)
		if !ok {
			continue
		}
		cfg, err := newDeviceConfig(resp)
		if err != nil {
			continue
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Device is a handle to one access-control controller. It carries no
// state of its own beyond the controller id and address; every method
// performs one transport exchange.
type Device struct {
	client *Client
	id     uint32
	addr   string
}

// ID is the controller id this handle addresses.
func (d *Device) ID() uint32 { return d.id }

func (d *Device) sendAndReceive(ctx context.Context, req, resp protocol.Packet) error {
	return transport.SendAndReceive(ctx, d.client.cfg, d.addr, req, resp)
}

func (d *Device) send(req protocol.Packet) error {
	return transport.Send(d.client.cfg, d.addr, req)
}

// GetConfig retrieves the controller's network and firmware configuration.
func (d *Device) GetConfig(ctx context.Context) (DeviceConfig, error) {
	var resp protocol.GetConfigResponse
	if err := d.sendAndReceive(ctx, &protocol.GetConfigRequest{DeviceID: d.id}, &resp); err != nil {
		return DeviceConfig{}, err
	}
	return newDeviceConfig(&resp)
}

// SetNetworkConfig reconfigures the controller's IP address, subnet
// mask, and gateway. It has no reply; the controller may drop off its
// old address immediately.
func (d *Device) SetNetworkConfig(address, subnet, gateway string) error {
	addr, err := protocol.ParseIPv4(address)
	if err != nil {
		return fmt.Errorf("%w: address: %v", ErrArgument, err)
	}
	sub, err := protocol.ParseIPv4(subnet)
	if err != nil {
		return fmt.Errorf("%w: subnet: %v", ErrArgument, err)
	}
	gw, err := protocol.ParseIPv4(gateway)
	if err != nil {
		return fmt.Errorf("%w: gateway: %v", ErrArgument, err)
	}
	return d.send(&protocol.SetAddressRequest{
		DeviceID: d.id,
		Address:  addr,
		Subnet:   sub,
		Gateway:  gw,
		Magic:    protocol.MagicWord,
	})
}

// GetStatus retrieves the controller's current status.
func (d *Device) GetStatus(ctx context.Context) (*Status, error) {
	var resp protocol.StatusResponse
	if err := d.sendAndReceive(ctx, &protocol.StatusRequest{DeviceID: d.id}, &resp); err != nil {
		return nil, err
	}
	return newStatus(&resp)
}

// GetTime retrieves the controller's current system clock.
func (d *Device) GetTime(ctx context.Context) (wire.DateTime, error) {
	var resp protocol.GetTimeResponse
	if err := d.sendAndReceive(ctx, &protocol.GetTimeRequest{DeviceID: d.id}, &resp); err != nil {
		return wire.DateTime{}, err
	}
	return resp.DateTime, nil
}

// SetTime sets the controller's system clock and returns the time it
// now has set.
func (d *Device) SetTime(ctx context.Context, dt wire.DateTime) (wire.DateTime, error) {
	var resp protocol.SetTimeResponse
	if err := d.sendAndReceive(ctx, &protocol.SetTimeRequest{DeviceID: d.id, DateTime: dt}, &resp); err != nil {
		return wire.DateTime{}, err
	}
	return resp.DateTime, nil
}

// GetListener retrieves the address (and port) the controller pushes
// unsolicited status events to.
func (d *Device) GetListener(ctx context.Context) (protocol.IPv4, uint16, error) {
	var resp protocol.GetListenerResponse
	if err := d.sendAndReceive(ctx, &protocol.GetListenerRequest{DeviceID: d.id}, &resp); err != nil {
		return protocol.IPv4{}, 0, err
	}
	return resp.Address, resp.Port, nil
}

// SetListener tells the controller where to push unsolicited status events.
func (d *Device) SetListener(ctx context.Context, address protocol.IPv4, port uint16) error {
	var resp protocol.SetListenerResponse
	if err := d.sendAndReceive(ctx, &protocol.SetListenerRequest{DeviceID: d.id, Address: address, Port: port}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "SetListener")
	}
	return nil
}

// GetDoorControl retrieves the control mode and unlock delay of a door.
// Doors are addressed 1-4.
func (d *Device) GetDoorControl(ctx context.Context, door uint8) (DoorControl, error) {
	var resp protocol.GetDoorControlStateResponse
	if err := d.sendAndReceive(ctx, &protocol.GetDoorControlStateRequest{DeviceID: d.id, Door: door}, &resp); err != nil {
		return DoorControl{}, err
	}
	return newDoorControl(resp.Mode, resp.Delay), nil
}

// SetDoorControlState changes a door's control mode and unlock delay
// and returns the state the controller now has set. Doors are
// addressed 1-4; Delay is truncated to a byte on send.
func (d *Device) SetDoorControlState(ctx context.Context, door uint8, state DoorControl) (DoorControl, error) {
	var resp protocol.SetDoorControlStateResponse
	req := &protocol.SetDoorControlStateRequest{DeviceID: d.id, Door: door, Mode: state.Mode, Delay: state.delaySeconds()}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return DoorControl{}, err
	}
	return newDoorControl(resp.Mode, resp.Delay), nil
}

// OpenDoor momentarily unlocks a door. Doors are addressed 1-4.
func (d *Device) OpenDoor(ctx context.Context, door uint8) error {
	var resp protocol.OpenDoorResponse
	if err := d.sendAndReceive(ctx, &protocol.OpenDoorRequest{DeviceID: d.id, Door: door}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "OpenDoor")
	}
	return nil
}

// GetCards retrieves the number of cards stored on the controller.
func (d *Device) GetCards(ctx context.Context) (uint32, error) {
	var resp protocol.GetCardCountResponse
	if err := d.sendAndReceive(ctx, &protocol.GetCardCountRequest{DeviceID: d.id}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// GetCardByID retrieves a card by its card number.
func (d *Device) GetCardByID(ctx context.Context, id uint32) (*Card, error) {
	var resp protocol.GetCardByIDResponse
	if err := d.sendAndReceive(ctx, &protocol.GetCardByIDRequest{DeviceID: d.id, Card: id}, &resp); err != nil {
		return nil, err
	}
	return newCard(resp.Card, resp.From, resp.To, resp.Doors)
}

// GetCardByIndex retrieves the card at the given position in the
// controller's card table. A nil, nil result means index is past the
// end of the table; it is not an error.
func (d *Device) GetCardByIndex(ctx context.Context, index uint32) (*Card, error) {
	var resp protocol.GetCardByIndexResponse
	if err := d.sendAndReceive(ctx, &protocol.GetCardByIndexRequest{DeviceID: d.id, Index: index}, &resp); err != nil {
		return nil, err
	}
	return newCard(resp.Card, resp.From, resp.To, resp.Doors)
}

// AddCard adds or updates a card record.
func (d *Device) AddCard(ctx context.Context, card Card) error {
	from := wire.DateBCDFromTime(card.From)
	to := wire.DateBCDFromTime(card.To)
	var resp protocol.PutCardResponse
	req := &protocol.PutCardRequest{DeviceID: d.id, Card: card.Number, From: from, To: to, Doors: card.Doors}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "PutCard")
	}
	return nil
}

// DeleteCard removes a single card by number.
func (d *Device) DeleteCard(ctx context.Context, number uint32) error {
	var resp protocol.DeleteCardResponse
	if err := d.sendAndReceive(ctx, &protocol.DeleteCardRequest{DeviceID: d.id, Card: number}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "DeleteCard")
	}
	return nil
}

// ClearCards wipes the controller's entire card table.
func (d *Device) ClearCards(ctx context.Context) error {
	var resp protocol.DeleteAllCardsResponse
	if err := d.sendAndReceive(ctx, &protocol.DeleteAllCardsRequest{DeviceID: d.id, Magic: protocol.MagicWord}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "DeleteAllCards")
	}
	return nil
}

// GetEventIndex retrieves the controller's current event cursor.
func (d *Device) GetEventIndex(ctx context.Context) (uint32, error) {
	var resp protocol.GetEventIndexResponse
	if err := d.sendAndReceive(ctx, &protocol.GetEventIndexRequest{DeviceID: d.id}, &resp); err != nil {
		return 0, err
	}
	return resp.Index, nil
}

// SetEventIndex rewinds or fast-forwards the controller's event cursor.
func (d *Device) SetEventIndex(ctx context.Context, index uint32) error {
	var resp protocol.SetEventIndexResponse
	req := &protocol.SetEventIndexRequest{DeviceID: d.id, Index: index, Magic: protocol.MagicWord}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "SetEventIndex")
	}
	return nil
}

// GetEvent retrieves the event stored at the given index. A nil, nil
// result means there is no event stored at that position.
func (d *Device) GetEvent(ctx context.Context, index uint32) (*Event, error) {
	var resp protocol.GetEventResponse
	if err := d.sendAndReceive(ctx, &protocol.GetEventRequest{DeviceID: d.id, Index: index}, &resp); err != nil {
		return nil, err
	}
	return newEvent(resp.Index, resp.EventType, resp.Granted, resp.Door, resp.Direction, resp.Card, resp.Timestamp, resp.Reason)
}

// EnableRecordSpecialEvents toggles whether the controller records
// door-button and system events in addition to card swipes.
func (d *Device) EnableRecordSpecialEvents(ctx context.Context, enable bool) error {
	var resp protocol.SetRecordSpecialEventsResponse
	if err := d.sendAndReceive(ctx, &protocol.SetRecordSpecialEventsRequest{DeviceID: d.id, Enabled: enable}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "SetRecordSpecialEvents")
	}
	return nil
}

// GetTimeProfile retrieves a time profile by id.
func (d *Device) GetTimeProfile(ctx context.Context, profileID uint8) (TimeProfile, error) {
	var resp protocol.GetTimeProfileResponse
	if err := d.sendAndReceive(ctx, &protocol.GetTimeProfileRequest{DeviceID: d.id, ProfileID: profileID}, &resp); err != nil {
		return TimeProfile{}, err
	}
	return newTimeProfile(&resp)
}

// AddOrUpdateTimeProfile creates or replaces a time profile. Ids 0 and
// 1 are reserved by the controller and are rejected here before any
// exchange is attempted.
func (d *Device) AddOrUpdateTimeProfile(ctx context.Context, profile TimeProfile) error {
	if profile.ID <= 1 {
		return fmt.Errorf("%w: time profile id %d is reserved", ErrArgument, profile.ID)
	}
	from := wire.DateBCDFromTime(profile.From)
	to := wire.DateBCDFromTime(profile.To)
	var resp protocol.SetTimeProfileResponse
	req := &protocol.SetTimeProfileRequest{
		DeviceID:  d.id,
		ProfileID: profile.ID,
		From:      from,
		To:        to,
		Weekdays:  profile.Weekdays,
		Segments:  profile.toSegments(),
		LinkedID:  profile.LinkedID,
	}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "SetTimeProfile")
	}
	return nil
}

// ClearTimeProfiles wipes every stored time profile.
func (d *Device) ClearTimeProfiles(ctx context.Context) error {
	var resp protocol.ClearTimeProfilesResponse
	req := &protocol.ClearTimeProfilesRequest{DeviceID: d.id, Magic: protocol.MagicWord}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if resp.Magic != protocol.MagicWord {
		return d.rejected(resp.OpCode(), "ClearTimeProfiles")
	}
	return nil
}

// AddTask appends one scheduled task to the controller's task list.
// The task id must be in 1..13.
func (d *Device) AddTask(ctx context.Context, task Task) error {
	if task.ID < TaskControlDoor || task.ID > TaskEnablePushButton {
		return fmt.Errorf("%w: task id %d must be in 1..13", ErrArgument, task.ID)
	}
	from := wire.DateBCDFromTime(task.From)
	to := wire.DateBCDFromTime(task.To)
	var resp protocol.AddTaskResponse
	req := &protocol.AddTaskRequest{
		DeviceID:  d.id,
		From:      from,
		To:        to,
		Weekdays:  task.Weekdays,
		At:        task.At,
		Door:      task.Door,
		Task:      uint8(task.ID),
		MoreCards: task.MoreCards,
	}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "AddTask")
	}
	return nil
}

// RefreshTaskList commits pending task list additions and starts them running.
func (d *Device) RefreshTaskList(ctx context.Context) error {
	var resp protocol.RefreshTaskListResponse
	req := &protocol.RefreshTaskListRequest{DeviceID: d.id, Magic: protocol.MagicWord}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "RefreshTaskList")
	}
	return nil
}

// ClearTasks wipes the controller's scheduled task list.
func (d *Device) ClearTasks(ctx context.Context) error {
	var resp protocol.ClearTaskListResponse
	req := &protocol.ClearTaskListRequest{DeviceID: d.id, Magic: protocol.MagicWord}
	if err := d.sendAndReceive(ctx, req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return d.rejected(resp.OpCode(), "ClearTaskList")
	}
	return nil
}
