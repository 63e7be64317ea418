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

// Package wire implements the scalar on-the-wire types shared by the
// message catalog in package protocol: packed BCD dates and times, raw
// MAC addresses, and the controller's two-byte firmware version.
package wire

import (
	"fmt"
	"time"

	hversion "github.com/hashicorp/go-version"

	"github.com/go-wiegand/wiegand/bcd"
)

// DateBCD is a 4-byte packed-BCD calendar date: YY YY MM DD.
type DateBCD struct {
	Year  int
	Month int
	Day   int
}

// DateBCDSize is the on-wire width of a DateBCD field.
const DateBCDSize = 4

// NewDateBCD builds a DateBCD from a four-digit year, month (1-12) and day.
func NewDateBCD(year, month, day int) DateBCD {
	return DateBCD{Year: year, Month: month, Day: day}
}

// MarshalBinaryTo writes the packed-BCD encoding of d into b, which must
// have at least DateBCDSize bytes, and returns the number of bytes written.
func (d DateBCD) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < DateBCDSize {
		return 0, fmt.Errorf("wire: not enough buffer to write DateBCD")
	}
	copy(b, bcd.Encode(fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)))
	return DateBCDSize, nil
}

// UnmarshalBinary decodes a DateBCD from its packed-BCD wire form.
func (d *DateBCD) UnmarshalBinary(b []byte) error {
	if len(b) < DateBCDSize {
		return fmt.Errorf("wire: not enough data to decode DateBCD")
	}
	s, err := bcd.Decode(b[:DateBCDSize])
	if err != nil {
		return fmt.Errorf("wire: decoding DateBCD: %w", err)
	}
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%04d%02d%02d", &year, &month, &day); err != nil {
		return fmt.Errorf("wire: parsing DateBCD digits %q: %w", s, err)
	}
	d.Year, d.Month, d.Day = year, month, day
	return nil
}

// IsZero reports whether d carries the all-zero "no date set" value.
func (d DateBCD) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time converts d to a calendar date at midnight UTC.
func (d DateBCD) Time() (time.Time, error) {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("wire: DateBCD %q is not a valid calendar date: %w", s, err)
	}
	return t, nil
}

// DateBCDFromTime builds a DateBCD from a calendar date.
func DateBCDFromTime(t time.Time) DateBCD {
	return NewDateBCD(t.Year(), int(t.Month()), t.Day())
}

func (d DateBCD) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateShortBCDSize is the on-wire width of a DateShortBCD field.
const DateShortBCDSize = 3

// DateShortBCD is a 3-byte packed-BCD calendar date with a two-digit year,
// YY MM DD, always interpreted as the 2000s: 19 means 2019.
type DateShortBCD struct {
	Year  int // four-digit year, e.g. 2019
	Month int
	Day   int
}

// NewDateShortBCD builds a DateShortBCD from a four-digit year in [2000,2099].
func NewDateShortBCD(year, month, day int) (DateShortBCD, error) {
	if year < 2000 || year > 2099 {
		return DateShortBCD{}, fmt.Errorf("wire: DateShortBCD cannot represent year %d, only 2000-2099", year)
	}
	return DateShortBCD{Year: year, Month: month, Day: day}, nil
}

// MarshalBinaryTo writes the packed-BCD encoding of d into b.
func (d DateShortBCD) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < DateShortBCDSize {
		return 0, fmt.Errorf("wire: not enough buffer to write DateShortBCD")
	}
	copy(b, bcd.Encode(fmt.Sprintf("%02d%02d%02d", d.Year%100, d.Month, d.Day)))
	return DateShortBCDSize, nil
}

// UnmarshalBinary decodes a DateShortBCD, expanding the two-digit year as 20YY.
func (d *DateShortBCD) UnmarshalBinary(b []byte) error {
	if len(b) < DateShortBCDSize {
		return fmt.Errorf("wire: not enough data to decode DateShortBCD")
	}
	s, err := bcd.Decode(b[:DateShortBCDSize])
	if err != nil {
		return fmt.Errorf("wire: decoding DateShortBCD: %w", err)
	}
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%02d%02d%02d", &year, &month, &day); err != nil {
		return fmt.Errorf("wire: parsing DateShortBCD digits %q: %w", s, err)
	}
	d.Year, d.Month, d.Day = 2000+year, month, day
	return nil
}

func (d DateShortBCD) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time converts d to a calendar date at midnight UTC.
func (d DateShortBCD) Time() (time.Time, error) {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("wire: DateShortBCD %q is not a valid calendar date: %w", s, err)
	}
	return t, nil
}

// TimeHMBCDSize is the on-wire width of a TimeHMBCD field.
const TimeHMBCDSize = 2

// TimeHMBCD is a 2-byte packed-BCD wall-clock time: HH MM.
type TimeHMBCD struct {
	Hour   int
	Minute int
}

// MarshalBinaryTo writes the packed-BCD encoding of t into b.
func (t TimeHMBCD) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < TimeHMBCDSize {
		return 0, fmt.Errorf("wire: not enough buffer to write TimeHMBCD")
	}
	copy(b, bcd.Encode(fmt.Sprintf("%02d%02d", t.Hour, t.Minute)))
	return TimeHMBCDSize, nil
}

// UnmarshalBinary decodes a TimeHMBCD from its packed-BCD wire form.
func (t *TimeHMBCD) UnmarshalBinary(b []byte) error {
	if len(b) < TimeHMBCDSize {
		return fmt.Errorf("wire: not enough data to decode TimeHMBCD")
	}
	s, err := bcd.Decode(b[:TimeHMBCDSize])
	if err != nil {
		return fmt.Errorf("wire: decoding TimeHMBCD: %w", err)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%02d%02d", &hour, &minute); err != nil {
		return fmt.Errorf("wire: parsing TimeHMBCD digits %q: %w", s, err)
	}
	t.Hour, t.Minute = hour, minute
	return nil
}

func (t TimeHMBCD) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeHMSBCDSize is the on-wire width of a TimeHMSBCD field.
const TimeHMSBCDSize = 3

// TimeHMSBCD is a 3-byte packed-BCD wall-clock time: HH MM SS.
type TimeHMSBCD struct {
	Hour   int
	Minute int
	Second int
}

// MarshalBinaryTo writes the packed-BCD encoding of t into b.
func (t TimeHMSBCD) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < TimeHMSBCDSize {
		return 0, fmt.Errorf("wire: not enough buffer to write TimeHMSBCD")
	}
	copy(b, bcd.Encode(fmt.Sprintf("%02d%02d%02d", t.Hour, t.Minute, t.Second)))
	return TimeHMSBCDSize, nil
}

// UnmarshalBinary decodes a TimeHMSBCD from its packed-BCD wire form.
func (t *TimeHMSBCD) UnmarshalBinary(b []byte) error {
	if len(b) < TimeHMSBCDSize {
		return fmt.Errorf("wire: not enough data to decode TimeHMSBCD")
	}
	s, err := bcd.Decode(b[:TimeHMSBCDSize])
	if err != nil {
		return fmt.Errorf("wire: decoding TimeHMSBCD: %w", err)
	}
	var hour, minute, second int
	if _, err := fmt.Sscanf(s, "%02d%02d%02d", &hour, &minute, &second); err != nil {
		return fmt.Errorf("wire: parsing TimeHMSBCD digits %q: %w", s, err)
	}
	t.Hour, t.Minute, t.Second = hour, minute, second
	return nil
}

func (t TimeHMSBCD) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// TimeHMSBCDFromTime extracts hour/minute/second from a calendar time.
func TimeHMSBCDFromTime(t time.Time) TimeHMSBCD {
	return TimeHMSBCD{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// DateTimeSize is the on-wire width of a DateTime field (DateBCD + TimeHMSBCD).
const DateTimeSize = DateBCDSize + TimeHMSBCDSize

// DateTime is the concatenation of a DateBCD and a TimeHMSBCD.
type DateTime struct {
	Date DateBCD
	Time TimeHMSBCD
}

// MarshalBinaryTo writes the packed-BCD encoding of dt into b.
func (dt DateTime) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < DateTimeSize {
		return 0, fmt.Errorf("wire: not enough buffer to write DateTime")
	}
	n, err := dt.Date.MarshalBinaryTo(b)
	if err != nil {
		return 0, err
	}
	m, err := dt.Time.MarshalBinaryTo(b[n:])
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

// UnmarshalBinary decodes a DateTime from its packed-BCD wire form.
func (dt *DateTime) UnmarshalBinary(b []byte) error {
	if len(b) < DateTimeSize {
		return fmt.Errorf("wire: not enough data to decode DateTime")
	}
	if err := dt.Date.UnmarshalBinary(b[:DateBCDSize]); err != nil {
		return err
	}
	return dt.Time.UnmarshalBinary(b[DateBCDSize:DateTimeSize])
}

// ToTime converts dt to a calendar time.Time in UTC.
func (dt DateTime) ToTime() (time.Time, error) {
	d, err := dt.Date.Time()
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(dt.Time.Hour)*time.Hour +
		time.Duration(dt.Time.Minute)*time.Minute +
		time.Duration(dt.Time.Second)*time.Second), nil
}

// DateTimeFromTime builds a DateTime from a calendar time.
func DateTimeFromTime(t time.Time) DateTime {
	return DateTime{Date: DateBCDFromTime(t), Time: TimeHMSBCDFromTime(t)}
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%s %s", dt.Date, dt.Time)
}

// MacAddressSize is the on-wire width of a MacAddress field.
const MacAddressSize = 6

// MacAddress is a raw 6-byte hardware address.
type MacAddress [MacAddressSize]byte

// MarshalBinaryTo writes the raw bytes of m into b.
func (m MacAddress) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < MacAddressSize {
		return 0, fmt.Errorf("wire: not enough buffer to write MacAddress")
	}
	copy(b, m[:])
	return MacAddressSize, nil
}

// UnmarshalBinary decodes a MacAddress from its raw wire form.
func (m *MacAddress) UnmarshalBinary(b []byte) error {
	if len(b) < MacAddressSize {
		return fmt.Errorf("wire: not enough data to decode MacAddress")
	}
	copy(m[:], b[:MacAddressSize])
	return nil
}

// String formats m as colon-separated lowercase hex, e.g. "00:66:19:39:55:2d".
func (m MacAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// VersionSize is the on-wire width of a Version field.
const VersionSize = 2

// Version is the controller's firmware version, stored on the wire as two
// raw bytes, major then minor - both decoded as plain decimal integers
// (unlike the BCD date/time fields next to it in GetConfig's payload).
type Version struct {
	Major uint8
	Minor uint8
}

// MarshalBinaryTo writes the raw bytes of v into b.
func (v Version) MarshalBinaryTo(b []byte) (int, error) {
	if len(b) < VersionSize {
		return 0, fmt.Errorf("wire: not enough buffer to write Version")
	}
	b[0], b[1] = v.Major, v.Minor
	return VersionSize, nil
}

// UnmarshalBinary decodes a Version from its raw wire form.
func (v *Version) UnmarshalBinary(b []byte) error {
	if len(b) < VersionSize {
		return fmt.Errorf("wire: not enough data to decode Version")
	}
	v.Major, v.Minor = b[0], b[1]
	return nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare orders v against other, returning -1, 0 or 1 the way
// hashicorp/go-version orders semantic versions. It lets callers gate
// behavior on firmware version (e.g. "this feature needs >= 8.146")
// without hand-rolling major/minor comparisons.
func (v Version) Compare(other Version) (int, error) {
	a, err := hversion.NewVersion(fmt.Sprintf("%d.%d", v.Major, v.Minor))
	if err != nil {
		return 0, fmt.Errorf("wire: parsing version %s: %w", v, err)
	}
	b, err := hversion.NewVersion(fmt.Sprintf("%d.%d", other.Major, other.Minor))
	if err != nil {
		return 0, fmt.Errorf("wire: parsing version %s: %w", other, err)
	}
	return a.Compare(b), nil
}
