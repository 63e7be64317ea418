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

// PutCardRequest adds or updates one card record.
type PutCardRequest struct {
	DeviceID uint32
	Card     uint32
	From     wire.DateBCD
	To       wire.DateBCD
	Doors    [4]uint8
}

func (r *PutCardRequest) OpCode() OpCode { return OpPutCard }

func (r *PutCardRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write PutCardRequest")
	}
	copy(b, newFrame(OpPutCard, r.DeviceID))
	pos := headerSize
	binary.LittleEndian.PutUint32(b[pos:], r.Card)
	pos += 4
	if _, err := r.From.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	if _, err := r.To.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	for _, d := range r.Doors {
		b[pos] = d
		pos++
	}
	return FrameSize, nil
}

func (r *PutCardRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpPutCard); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	pos := headerSize
	r.Card = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	if err := r.From.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	if err := r.To.UnmarshalBinary(b[pos:]); err != nil {
		return err
	}
	pos += wire.DateBCDSize
	for i := range r.Doors {
		r.Doors[i] = b[pos]
		pos++
	}
	return nil
}

// PutCardResponse reports whether the card was stored.
type PutCardResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *PutCardResponse) OpCode() OpCode { return OpPutCard }

func (r *PutCardResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write PutCardResponse")
	}
	copy(b, newFrame(OpPutCard, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *PutCardResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpPutCard); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Success = b[headerSize] != 0
	return nil
}

// DeleteCardRequest removes a single card by number.
type DeleteCardRequest struct {
	DeviceID uint32
	Card     uint32
}

func (r *DeleteCardRequest) OpCode() OpCode { return OpDeleteCard }

func (r *DeleteCardRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write DeleteCardRequest")
	}
	copy(b, newFrame(OpDeleteCard, r.DeviceID))
	binary.LittleEndian.PutUint32(b[headerSize:], r.Card)
	return FrameSize, nil
}

func (r *DeleteCardRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpDeleteCard); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Card = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}

// DeleteCardResponse reports whether the card was removed.
type DeleteCardResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *DeleteCardResponse) OpCode() OpCode { return OpDeleteCard }

func (r *DeleteCardResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write DeleteCardResponse")
	}
	copy(b, newFrame(OpDeleteCard, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *DeleteCardResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpDeleteCard); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Success = b[headerSize] != 0
	return nil
}

// DeleteAllCardsRequest wipes the controller's entire card table. The
// magic word is a required literal; requests without it are silently
// ignored by the controller.
type DeleteAllCardsRequest struct {
	DeviceID uint32
	Magic    uint32
}

func (r *DeleteAllCardsRequest) OpCode() OpCode { return OpDeleteAllCards }

func (r *DeleteAllCardsRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write DeleteAllCardsRequest")
	}
	copy(b, newFrame(OpDeleteAllCards, r.DeviceID))
	binary.LittleEndian.PutUint32(b[headerSize:], r.Magic)
	return FrameSize, nil
}

func (r *DeleteAllCardsRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpDeleteAllCards); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Magic = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}

// DeleteAllCardsResponse reports whether the card table was cleared.
type DeleteAllCardsResponse struct {
	DeviceID uint32
	Success  bool
}

func (r *DeleteAllCardsResponse) OpCode() OpCode { return OpDeleteAllCards }

func (r *DeleteAllCardsResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write DeleteAllCardsResponse")
	}
	copy(b, newFrame(OpDeleteAllCards, r.DeviceID))
	putBool(b[headerSize:], r.Success)
	return FrameSize, nil
}

func (r *DeleteAllCardsResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpDeleteAllCards); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Success = b[headerSize] != 0
	return nil
}

// GetCardCountRequest asks how many cards are stored on the controller.
type GetCardCountRequest struct {
	DeviceID uint32
}

func (r *GetCardCountRequest) OpCode() OpCode { return OpGetCardCount }

func (r *GetCardCountRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetCardCountRequest")
	}
	copy(b, newFrame(OpGetCardCount, r.DeviceID))
	return FrameSize, nil
}

func (r *GetCardCountRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetCardCount); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	return nil
}

// GetCardCountResponse carries the number of cards stored.
type GetCardCountResponse struct {
	DeviceID uint32
	Count    uint32
}

func (r *GetCardCountResponse) OpCode() OpCode { return OpGetCardCount }

func (r *GetCardCountResponse) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetCardCountResponse")
	}
	copy(b, newFrame(OpGetCardCount, r.DeviceID))
	binary.LittleEndian.PutUint32(b[headerSize:], r.Count)
	return FrameSize, nil
}

func (r *GetCardCountResponse) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetCardCount); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Count = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}

// GetCardByIDRequest looks up a card by its card number.
type GetCardByIDRequest struct {
	DeviceID uint32
	Card     uint32
}

func (r *GetCardByIDRequest) OpCode() OpCode { return OpGetCardByID }

func (r *GetCardByIDRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetCardByIDRequest")
	}
	copy(b, newFrame(OpGetCardByID, r.DeviceID))
	binary.LittleEndian.PutUint32(b[headerSize:], r.Card)
	return FrameSize, nil
}

func (r *GetCardByIDRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetCardByID); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Card = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}

// GetCardByIDResponse carries the card record found, if any.
type GetCardByIDResponse struct {
	DeviceID uint32
	Card     uint32
	From     wire.DateBCD
	To       wire.DateBCD
	Doors    [4]uint8
}

func (r *GetCardByIDResponse) OpCode() OpCode { return OpGetCardByID }

func (r *GetCardByIDResponse) MarshalBinaryTo(b []byte) (int, error) {
	return marshalCardResponse(OpGetCardByID, r.DeviceID, r.Card, r.From, r.To, r.Doors, b)
}

func (r *GetCardByIDResponse) UnmarshalBinary(b []byte) error {
	card, from, to, doors, err := unmarshalCardResponse(OpGetCardByID, b)
	if err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Card, r.From, r.To, r.Doors = card, from, to, doors
	return nil
}

// GetCardByIndexRequest looks up a card by its position in the card table.
// A device's reply with Card == 0 means the index is past the end of the
// table, not an error (see device.Device.GetCardByIndex).
type GetCardByIndexRequest struct {
	DeviceID uint32
	Index    uint32
}

func (r *GetCardByIndexRequest) OpCode() OpCode { return OpGetCardByIndex }

func (r *GetCardByIndexRequest) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write GetCardByIndexRequest")
	}
	copy(b, newFrame(OpGetCardByIndex, r.DeviceID))
	binary.LittleEndian.PutUint32(b[headerSize:], r.Index)
	return FrameSize, nil
}

func (r *GetCardByIndexRequest) UnmarshalBinary(b []byte) error {
	if err := checkFrame(b, OpGetCardByIndex); err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Index = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}

// GetCardByIndexResponse carries the card record at the requested index.
type GetCardByIndexResponse struct {
	DeviceID uint32
	Card     uint32
	From     wire.DateBCD
	To       wire.DateBCD
	Doors    [4]uint8
}

func (r *GetCardByIndexResponse) OpCode() OpCode { return OpGetCardByIndex }

func (r *GetCardByIndexResponse) MarshalBinaryTo(b []byte) (int, error) {
	return marshalCardResponse(OpGetCardByIndex, r.DeviceID, r.Card, r.From, r.To, r.Doors, b)
}

func (r *GetCardByIndexResponse) UnmarshalBinary(b []byte) error {
	card, from, to, doors, err := unmarshalCardResponse(OpGetCardByIndex, b)
	if err != nil {
		return err
	}
	r.DeviceID = binary.LittleEndian.Uint32(b[4:8])
	r.Card, r.From, r.To, r.Doors = card, from, to, doors
	return nil
}

// marshalCardResponse and unmarshalCardResponse are shared by
// GetCardByID and GetCardByIndex, whose response payloads are identical.
func marshalCardResponse(op OpCode, deviceID, card uint32, from, to wire.DateBCD, doors [4]uint8, b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("protocol: not enough buffer to write %s response", op)
	}
	copy(b, newFrame(op, deviceID))
	pos := headerSize
	binary.LittleEndian.PutUint32(b[pos:], card)
	pos += 4
	if _, err := from.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	if _, err := to.MarshalBinaryTo(b[pos:]); err != nil {
		return 0, err
	}
	pos += wire.DateBCDSize
	for _, d := range doors {
		b[pos] = d
		pos++
	}
	return FrameSize, nil
}

func unmarshalCardResponse(op OpCode, b []byte) (card uint32, from, to wire.DateBCD, doors [4]uint8, err error) {
	if err = checkFrame(b, op); err != nil {
		return
	}
	pos := headerSize
	card = binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	if err = from.UnmarshalBinary(b[pos:]); err != nil {
		return
	}
	pos += wire.DateBCDSize
	if err = to.UnmarshalBinary(b[pos:]); err != nil {
		return
	}
	pos += wire.DateBCDSize
	for i := range doors {
		doors[i] = b[pos]
		pos++
	}
	return
}
