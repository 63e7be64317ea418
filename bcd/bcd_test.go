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

package bcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{0x20, 0x19, 0x12, 0x31}, Encode("20191231"))
	assert.Equal(t, []byte{0x01, 0x23}, Encode("123"))
	assert.Equal(t, []byte{0x00}, Encode("0"))
}

func TestEncodePanicsOnNonDigit(t *testing.T) {
	assert.Panics(t, func() { Encode("12a4") })
}

func TestDecode(t *testing.T) {
	s, err := Decode([]byte{0x20, 0x19, 0x12, 0x31})
	require.NoError(t, err)
	assert.Equal(t, "20191231", s)
}

func TestDecodeInvalidNibble(t *testing.T) {
	_, err := Decode([]byte{0xAB})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, digits := range []string{"00", "99", "2019", "123456"} {
		encoded := Encode(digits)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, digits, decoded)
	}
}
