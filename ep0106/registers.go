// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ep0106

import "strconv"

// Address is the fixed I²C address of the board.
const Address uint16 = 0x17

// Register is one entry of the board's register file.
type Register byte

const (
	RegOffBoardTemperature    Register = 0x01
	RegLightLow               Register = 0x02
	RegLightHigh              Register = 0x03
	RegStatus                 Register = 0x04
	RegOnBoardTemperature     Register = 0x05
	RegOnBoardHumidity        Register = 0x06
	RegOnBoardSensorOutOfDate Register = 0x07
	RegBarometerTemperature   Register = 0x08
	RegBarometerPressureLow   Register = 0x09
	RegBarometerPressureMid   Register = 0x0A
	RegBarometerPressureHigh  Register = 0x0B
	RegBarometerStatus        Register = 0x0C
	RegMotion                 Register = 0x0D
)

var registerNames = [...]string{
	RegOffBoardTemperature:    "OffBoardTemperature",
	RegLightLow:               "LightLow",
	RegLightHigh:              "LightHigh",
	RegStatus:                 "Status",
	RegOnBoardTemperature:     "OnBoardTemperature",
	RegOnBoardHumidity:        "OnBoardHumidity",
	RegOnBoardSensorOutOfDate: "OnBoardSensorOutOfDate",
	RegBarometerTemperature:   "BarometerTemperature",
	RegBarometerPressureLow:   "BarometerPressureLow",
	RegBarometerPressureMid:   "BarometerPressureMid",
	RegBarometerPressureHigh:  "BarometerPressureHigh",
	RegBarometerStatus:        "BarometerStatus",
	RegMotion:                 "Motion",
}

func (r Register) String() string {
	if int(r) < len(registerNames) && registerNames[r] != "" {
		return registerNames[r]
	}
	return "Register(0x" + strconv.FormatUint(uint64(r), 16) + ")"
}

// StatusFlags is the content of RegStatus. Flags may be combined.
type StatusFlags byte

const (
	// StatusProbeOutOfRange is set when the external probe reads outside of
	// its measurable range.
	StatusProbeOutOfRange StatusFlags = 1 << 0
	// StatusProbeMissing is set when no external probe is wired in.
	StatusProbeMissing StatusFlags = 1 << 1
	// StatusLightOutOfRange is set when the light sensor saturates.
	StatusLightOutOfRange StatusFlags = 1 << 2
	// StatusLightFailure is set when the light sensor does not respond.
	StatusLightFailure StatusFlags = 1 << 3
)

// Has reports whether all bits of f are set in s.
func (s StatusFlags) Has(f StatusFlags) bool {
	return s&f == f
}

const motionBit byte = 1 << 0
