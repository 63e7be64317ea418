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

// Package wlog provides the colorized sent/received debug tracing used
// by package transport, following the convention of
// ptp/simpleclient's logSent/logReceive: green for what we send, blue
// for what we get back.
package wlog

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

var (
	sentColor     = color.New(color.FgGreen)
	receivedColor = color.New(color.FgBlue)
	rejectColor   = color.New(color.FgYellow)
)

// Sent logs a request frame at Debug granularity.
func Sent(opcode fmt.Stringer, deviceID uint32, addr string) {
	log.Debug(sentColor.Sprintf("sent %s to device=%d addr=%s", opcode, deviceID, addr))
}

// Received logs a reply frame at Debug granularity.
func Received(opcode fmt.Stringer, deviceID uint32, addr string) {
	log.Debug(receivedColor.Sprintf("received %s from device=%d addr=%s", opcode, deviceID, addr))
}

// Rejected logs a device-rejection at Warn granularity.
func Rejected(opcode fmt.Stringer, deviceID uint32) {
	log.Warn(rejectColor.Sprintf("device=%d rejected %s", deviceID, opcode))
}

// Dropped logs a malformed or mismatched frame dropped during a
// broadcast fan-in, at Warn granularity.
func Dropped(addr string, reason error) {
	log.Warnf("dropped frame from %s: %v", addr, reason)
}
