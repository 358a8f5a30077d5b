// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ep0106

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Lux is an illuminance as reported by the board's light sensor.
type Lux uint16

func (l Lux) String() string {
	return strconv.Itoa(int(l)) + "lx"
}

// Dev is a handle to a SensorHub board.
//
// Every getter performs fresh bus transactions; nothing is cached.
type Dev struct {
	d      i2c.Dev
	closer io.Closer
	closed bool
}

// New returns a Dev using a bus owned by the caller. Close does not close
// the bus.
func New(bus i2c.Bus) (*Dev, error) {
	if bus == nil {
		return nil, fmt.Errorf("%w: nil bus", ErrBusUnavailable)
	}
	return &Dev{d: i2c.Dev{Bus: bus, Addr: Address}}, nil
}

// Open initializes the host drivers, opens the named I²C bus and returns a
// Dev owning it. An empty name selects the first registered bus; on a
// Raspberry Pi the board sits on bus "1".
//
// Close must be called to release the bus.
func Open(name string) (*Dev, error) {
	return open(name, openHostBus)
}

func openHostBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}

func open(name string, opener func(string) (i2c.BusCloser, error)) (*Dev, error) {
	bus, err := opener(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBusUnavailable, name, err)
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: %q", ErrBusUnavailable, name)
	}
	return &Dev{d: i2c.Dev{Bus: bus, Addr: Address}, closer: bus}, nil
}

func (d *Dev) String() string {
	return "EP-0106"
}

// Halt implements conn.Resource. The board keeps sampling on its own, there
// is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// Close releases the bus when it was opened by Open. It is safe to call more
// than once; the bus is closed exactly once. Every getter fails with
// ErrClosed afterwards.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// Temperature returns the on-board temperature. ErrStale is returned when
// the on-board sensor has not refreshed its data yet.
func (d *Dev) Temperature() (physic.Temperature, error) {
	if err := d.onBoardFresh(); err != nil {
		return 0, err
	}
	b, err := d.readRegister(RegOnBoardTemperature)
	if err != nil {
		return 0, err
	}
	return celsius(b), nil
}

// Humidity returns the on-board relative humidity. ErrStale is returned
// when the on-board sensor has not refreshed its data yet.
func (d *Dev) Humidity() (physic.RelativeHumidity, error) {
	if err := d.onBoardFresh(); err != nil {
		return 0, err
	}
	b, err := d.readRegister(RegOnBoardHumidity)
	if err != nil {
		return 0, err
	}
	return physic.RelativeHumidity(b) * physic.PercentRH, nil
}

// OffBoardTemperature returns the temperature of the external probe.
//
// ErrSensorDisconnected is returned when the probe is not wired in, and
// ErrOutOfRange when the probe reads outside of its range. A missing probe
// takes precedence.
func (d *Dev) OffBoardTemperature() (physic.Temperature, error) {
	s, err := d.status()
	if err != nil {
		return 0, err
	}
	switch {
	case s.Has(StatusProbeMissing):
		return 0, ErrSensorDisconnected
	case s.Has(StatusProbeOutOfRange):
		return 0, ErrOutOfRange
	}
	b, err := d.readRegister(RegOffBoardTemperature)
	if err != nil {
		return 0, err
	}
	return celsius(b), nil
}

// MotionDetected reports whether the PIR sensor currently sees motion.
func (d *Dev) MotionDetected() (bool, error) {
	b, err := d.readRegister(RegMotion)
	if err != nil {
		return false, err
	}
	return b&motionBit != 0, nil
}

// Brightness returns the light sensor reading.
//
// ErrOutOfRange is returned when the sensor saturates and ErrSensorFailure
// when the board cannot reach the light sensor.
func (d *Dev) Brightness() (Lux, error) {
	s, err := d.status()
	if err != nil {
		return 0, err
	}
	switch {
	case s.Has(StatusLightOutOfRange):
		return 0, ErrOutOfRange
	case s.Has(StatusLightFailure):
		return 0, fmt.Errorf("%w: light sensor", ErrSensorFailure)
	}
	high, err := d.readRegister(RegLightHigh)
	if err != nil {
		return 0, err
	}
	low, err := d.readRegister(RegLightLow)
	if err != nil {
		return 0, err
	}
	return Lux(uint16(high)<<8 | uint16(low)), nil
}

// BarometerTemperature returns the temperature measured by the barometer.
// It is a different chip than Temperature and values may differ slightly.
func (d *Dev) BarometerTemperature() (physic.Temperature, error) {
	if err := d.barometerOK(); err != nil {
		return 0, err
	}
	b, err := d.readRegister(RegBarometerTemperature)
	if err != nil {
		return 0, err
	}
	return celsius(b), nil
}

// BarometerPressure returns the barometric pressure. The board reports it as
// a 24 bit little endian count of Pascal.
func (d *Dev) BarometerPressure() (physic.Pressure, error) {
	if err := d.barometerOK(); err != nil {
		return 0, err
	}
	var raw [3]byte
	for i, reg := range [...]Register{RegBarometerPressureLow, RegBarometerPressureMid, RegBarometerPressureHigh} {
		b, err := d.readRegister(reg)
		if err != nil {
			return 0, err
		}
		raw[i] = b
	}
	return pascal(raw), nil
}

// Sense reads the on-board temperature, the humidity and the barometric
// pressure. Fields that could not be read are left at zero and the first
// error is returned.
func (d *Dev) Sense(e *physic.Env) error {
	e.Temperature = 0
	e.Humidity = 0
	e.Pressure = 0
	t, err := d.Temperature()
	if err != nil {
		return err
	}
	h, err := d.Humidity()
	if err != nil {
		return err
	}
	p, err := d.BarometerPressure()
	if err != nil {
		return err
	}
	e.Temperature = t
	e.Humidity = h
	e.Pressure = p
	return nil
}

// Precision returns the resolution of the values Sense reports.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin
	e.Humidity = physic.PercentRH
	e.Pressure = physic.Pascal
}

func (d *Dev) readRegister(reg Register) (byte, error) {
	if d.closed {
		return 0, ErrClosed
	}
	w := [1]byte{byte(reg)}
	var r [1]byte
	if err := d.d.Tx(w[:], r[:]); err != nil {
		return 0, &TransactionError{Reg: reg, Err: err}
	}
	return r[0], nil
}

func (d *Dev) status() (StatusFlags, error) {
	b, err := d.readRegister(RegStatus)
	return StatusFlags(b), err
}

// The DHT11 updates slowly; the board flags data that was not refreshed
// since the last read.
func (d *Dev) onBoardFresh() error {
	b, err := d.readRegister(RegOnBoardSensorOutOfDate)
	if err != nil {
		return err
	}
	if b != 0 {
		return ErrStale
	}
	return nil
}

func (d *Dev) barometerOK() error {
	b, err := d.readRegister(RegBarometerStatus)
	if err != nil {
		return err
	}
	if b != 0 {
		return fmt.Errorf("%w: barometer status %#02x", ErrSensorFailure, b)
	}
	return nil
}

// celsius decodes a whole degree register. The board stores sub-zero values
// in two's complement.
func celsius(b byte) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(int8(b))*physic.Kelvin
}

func pascal(raw [3]byte) physic.Pressure {
	count := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16
	return physic.Pressure(count) * physic.Pascal
}

var _ conn.Resource = &Dev{}
var _ io.Closer = &Dev{}
