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

// Package protocol implements the 64-byte wire frames exchanged with
// Wiegand access-control controllers: the common header, the opcode
// table, and one request (and, where applicable, one response) type per
// operation in the catalog.
package protocol

import (
	"encoding/binary"
	"fmt"
	"net"
)

// HeaderByte is the constant first byte of every frame.
const HeaderByte = 0x17

// FrameSize is the fixed length of every request and response frame.
const FrameSize = 64

// headerSize is the width of the common header: header byte, opcode,
// a 2-byte reserved gap, and the 4-byte little-endian controller id.
const headerSize = 8

// MagicWord is the literal required in the payload of every destructive
// command. On the wire its little-endian encoding is 55 AA AA 55.
const MagicWord uint32 = 0x55AAAA55

// Packet is the contract every request and response type satisfies: it
// knows its own opcode and can marshal/unmarshal itself to/from a
// fixed 64-byte frame.
type Packet interface {
	OpCode() OpCode
	MarshalBinaryTo(b []byte) (int, error)
	UnmarshalBinary(b []byte) error
}

// newFrame allocates a zeroed 64-byte frame and stamps the common header.
func newFrame(op OpCode, deviceID uint32) []byte {
	b := make([]byte, FrameSize)
	b[0] = HeaderByte
	b[1] = byte(op)
	binary.LittleEndian.PutUint32(b[4:8], deviceID)
	return b
}

// checkFrame validates the common header of a received frame and confirms
// its opcode matches want.
func checkFrame(b []byte, want OpCode) error {
	if len(b) != FrameSize {
		return fmt.Errorf("protocol: frame is %d bytes, want %d", len(b), FrameSize)
	}
	if b[0] != HeaderByte {
		return fmt.Errorf("protocol: bad header byte 0x%02x, want 0x%02x", b[0], HeaderByte)
	}
	if OpCode(b[1]) != want {
		return fmt.Errorf("protocol: got opcode 0x%02x, want %s (0x%02x)", b[1], want, uint8(want))
	}
	return nil
}

// FrameDeviceID reads the controller id out of a raw 64-byte frame
// without knowing its opcode-specific payload layout. Used by the
// transport to log/attribute replies before decoding them fully.
func FrameDeviceID(b []byte) (uint32, error) {
	if len(b) != FrameSize {
		return 0, fmt.Errorf("protocol: frame is %d bytes, want %d", len(b), FrameSize)
	}
	return binary.LittleEndian.Uint32(b[4:8]), nil
}

// FrameOpCode reads the opcode byte out of a raw frame of any length >= 2,
// used to probe unsolicited traffic before a full-length check.
func FrameOpCode(b []byte) (OpCode, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("protocol: not enough data to probe opcode")
	}
	return OpCode(b[1]), nil
}

// Bytes marshals any Packet to its 64-byte wire form.
func Bytes(p Packet) ([]byte, error) {
	b := make([]byte, FrameSize)
	n, err := p.MarshalBinaryTo(b)
	if err != nil {
		return nil, err
	}
	if n != FrameSize {
		return nil, fmt.Errorf("protocol: %s marshaled to %d bytes, want %d", p.OpCode(), n, FrameSize)
	}
	return b, nil
}

// FromBytes unmarshals a 64-byte wire frame into p.
func FromBytes(b []byte, p Packet) error {
	return p.UnmarshalBinary(b)
}

// putBool writes a one-byte boolean: 0x01 for true, 0x00 for false.
func putBool(b []byte, v bool) {
	if v {
		b[0] = 0x01
	} else {
		b[0] = 0x00
	}
}

// putUint32 and getUint32 are short-hands for the little-endian reads and
// writes that make up most of a message's payload encoding.
func putUint32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

func getUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func putUint16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

func getUint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// frameDeviceIDUnchecked reads the controller id out of a frame already
// validated by checkFrame.
func frameDeviceIDUnchecked(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[4:8])
}

// IPv4Size is the on-wire width of an IPv4 field.
const IPv4Size = 4

// IPv4 is a raw 4-byte IPv4 address in network byte order.
type IPv4 [4]byte

// ParseIPv4 parses a dotted-quad string into an IPv4.
func ParseIPv4(s string) (IPv4, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return IPv4{}, fmt.Errorf("protocol: %q is not a valid IPv4 address", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return IPv4{}, fmt.Errorf("protocol: %q is not an IPv4 address", s)
	}
	var out IPv4
	copy(out[:], v4)
	return out, nil
}

// MarshalBinaryTo writes the raw bytes of ip into b.
func (ip IPv4) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < IPv4Size {
		return 0, fmt.Errorf("protocol: not enough buffer to write IPv4")
	}
	copy(b, ip[:])
	return IPv4Size, nil
}

// UnmarshalBinary decodes an IPv4 from its raw wire form.
func (ip *IPv4) UnmarshalBinary(b []byte) error {
	if len(b) < IPv4Size {
		return fmt.Errorf("protocol: not enough data to decode IPv4")
	}
	copy(ip[:], b[:IPv4Size])
	return nil
}

func (ip IPv4) String() string {
	return net.IP(ip[:]).String()
}

// IP converts ip to a net.IP.
func (ip IPv4) IP() net.IP {
	return net.IP(ip[:])
}
