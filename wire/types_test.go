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

package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBCDMarshal(t *testing.T) {
	d := NewDateBCD(2019, 12, 31)
	b := make([]byte, DateBCDSize)
	n, err := d.MarshalBinaryTo(b)
	require.NoError(t, err)
	assert.Equal(t, DateBCDSize, n)
	assert.Equal(t, []byte{0x20, 0x19, 0x12, 0x31}, b)
}

func TestDateBCDRoundTripYears(t *testing.T) {
	for year := 2000; year <= 2099; year++ {
		d := NewDateBCD(year, 4, 1)
		b := make([]byte, DateBCDSize)
		_, err := d.MarshalBinaryTo(b)
		require.NoError(t, err)

		var got DateBCD
		require.NoError(t, got.UnmarshalBinary(b))
		assert.Equal(t, d, got)
	}
}

func TestDateBCDTimeRoundTrip(t *testing.T) {
	d := NewDateBCD(2021, 4, 1)
	tm, err := d.Time()
	require.NoError(t, err)
	assert.Equal(t, DateBCD{2021, 4, 1}, DateBCDFromTime(tm))
}

func TestDateShortBCD(t *testing.T) {
	d, err := NewDateShortBCD(2018, 8, 16)
	require.NoError(t, err)
	b := make([]byte, DateShortBCDSize)
	_, err = d.MarshalBinaryTo(b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x18, 0x08, 0x16}, b)

	var got DateShortBCD
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, d, got)
}

func TestDateShortBCDRejectsOutOfRangeYear(t *testing.T) {
	_, err := NewDateShortBCD(1999, 1, 1)
	assert.Error(t, err)
	_, err = NewDateShortBCD(2100, 1, 1)
	assert.Error(t, err)
}

func TestTimeHMSBCDRoundTripAllValues(t *testing.T) {
	for hour := 0; hour < 24; hour += 3 {
		for minute := 0; minute < 60; minute += 17 {
			for second := 0; second < 60; second += 23 {
				hms := TimeHMSBCD{Hour: hour, Minute: minute, Second: second}
				b := make([]byte, TimeHMSBCDSize)
				_, err := hms.MarshalBinaryTo(b)
				require.NoError(t, err)

				var got TimeHMSBCD
				require.NoError(t, got.UnmarshalBinary(b))
				assert.Equal(t, hms, got)
			}
		}
	}
}

func TestTimeHMBCD(t *testing.T) {
	hm := TimeHMBCD{Hour: 8, Minute: 30}
	b := make([]byte, TimeHMBCDSize)
	_, err := hm.MarshalBinaryTo(b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x30}, b)
	assert.Equal(t, "08:30", hm.String())
}

func TestDateTimeRoundTrip(t *testing.T) {
	dt := DateTime{Date: NewDateBCD(2021, 4, 1), Time: TimeHMSBCD{Hour: 8, Minute: 30, Second: 15}}
	b := make([]byte, DateTimeSize)
	n, err := dt.MarshalBinaryTo(b)
	require.NoError(t, err)
	assert.Equal(t, DateTimeSize, n)

	var got DateTime
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, dt, got)
}

func TestDateTimeFromTime(t *testing.T) {
	tm := time.Date(2021, 4, 1, 8, 30, 15, 0, time.UTC)
	dt := DateTimeFromTime(tm)
	got, err := dt.ToTime()
	require.NoError(t, err)
	assert.True(t, tm.Equal(got))
}

func TestMacAddressString(t *testing.T) {
	m := MacAddress{0x00, 0x66, 0x19, 0x39, 0x55, 0x2d}
	assert.Equal(t, "00:66:19:39:55:2d", m.String())
}

func TestVersionString(t *testing.T) {
	v := Version{Major: 8, Minor: 146}
	assert.Equal(t, "8.146", v.String())
}

func TestVersionCompare(t *testing.T) {
	older := Version{Major: 8, Minor: 100}
	newer := Version{Major: 8, Minor: 146}
	c, err := older.Compare(newer)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = newer.Compare(older)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = newer.Compare(newer)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}
