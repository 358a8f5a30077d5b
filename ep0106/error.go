// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ep0106

import (
	"errors"
	"fmt"
)

var (
	// ErrBusUnavailable is returned when the I²C bus cannot be opened. No Dev
	// is created in that case.
	ErrBusUnavailable = errors.New("ep0106: i2c bus unavailable")
	// ErrTransaction matches every TransactionError.
	ErrTransaction = errors.New("ep0106: i2c transaction failed")
	// ErrSensorDisconnected is returned by OffBoardTemperature when the board
	// reports that no external probe is wired in.
	ErrSensorDisconnected = errors.New("ep0106: off-board temperature probe disconnected")
	// ErrOutOfRange is returned when the board flags a reading as outside of
	// the sensor's measurable range.
	ErrOutOfRange = errors.New("ep0106: reading out of range")
	// ErrStale is returned when the on-board temperature/humidity sensor has
	// not refreshed its data yet. It usually clears on the next read.
	ErrStale = errors.New("ep0106: on-board sensor data out of date")
	// ErrSensorFailure is returned when the board reports a hardware fault on
	// the light sensor or the barometer.
	ErrSensorFailure = errors.New("ep0106: sensor hardware failure")
	// ErrClosed is returned by every getter once Close was called.
	ErrClosed = errors.New("ep0106: device closed")
)

// TransactionError is a bus level failure while reading Reg.
type TransactionError struct {
	Reg Register
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("ep0106: reading %s: %v", e.Reg, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransaction) hold.
func (e *TransactionError) Is(target error) bool {
	return target == ErrTransaction
}
