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
	"errors"
	"fmt"

	"github.com/go-wiegand/wiegand/protocol"
	"github.com/go-wiegand/wiegand/wlog"
)

// ErrArgument is wrapped by every out-of-range-argument error: an
// invalid time-profile id, task id, or calendar value.
var ErrArgument = errors.New("device: invalid argument")

// rejectedError is returned when a device cleanly decodes a response
// but its success byte (or echoed magic word) indicates the operation
// was refused.
type rejectedError struct {
	op string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("device: %s rejected by controller", e.op)
}

// ErrDeviceRejected is the sentinel every rejectedError wraps, so
// callers can test for rejection without matching the operation name.
var ErrDeviceRejected = errors.New("device rejected")

func (e *rejectedError) Unwrap() error { return ErrDeviceRejected }

// rejected logs a Warn-level rejection, counts it in the device's
// metrics registry (if one is configured), and returns the error every
// !resp.Success / magic-word-mismatch site surfaces to its caller.
func (d *Device) rejected(opcode protocol.OpCode, op string) error {
	wlog.Rejected(opcode, d.id)
	if m := d.client.cfg.Metrics; m != nil {
		m.DeviceRejections.Inc()
	}
	return &rejectedError{op: op}
}
