// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reading takes a snapshot of every quantity the SensorHub board
// reports.
package reading

import (
	"errors"
	"time"

	"github.com/MGough/sensorhub/ep0106"
	"periph.io/x/conn/v3/physic"
)

// Hub is the set of getters a snapshot is taken from. *ep0106.Dev
// implements it.
type Hub interface {
	Temperature() (physic.Temperature, error)
	OffBoardTemperature() (physic.Temperature, error)
	Humidity() (physic.RelativeHumidity, error)
	MotionDetected() (bool, error)
	Brightness() (ep0106.Lux, error)
	BarometerTemperature() (physic.Temperature, error)
	BarometerPressure() (physic.Pressure, error)
}

var _ Hub = (*ep0106.Dev)(nil)

// Status classifies the outcome of one getter.
type Status string

const (
	OK            Status = "ok"
	Disconnected  Status = "disconnected"
	OutOfRange    Status = "out_of_range"
	Stale         Status = "stale"
	SensorFailure Status = "sensor_failure"
	BusError      Status = "bus_error"
	Closed        Status = "closed"
	Error         Status = "error"
)

// StatusOf maps an error returned by the ep0106 getters to a Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ep0106.ErrSensorDisconnected):
		return Disconnected
	case errors.Is(err, ep0106.ErrOutOfRange):
		return OutOfRange
	case errors.Is(err, ep0106.ErrStale):
		return Stale
	case errors.Is(err, ep0106.ErrSensorFailure):
		return SensorFailure
	case errors.Is(err, ep0106.ErrTransaction):
		return BusError
	case errors.Is(err, ep0106.ErrClosed):
		return Closed
	}
	return Error
}

// Sensor names, in the order Collect reads them.
const (
	SensorTemperature          = "temperature"
	SensorOffBoardTemperature  = "off_board_temperature"
	SensorHumidity             = "humidity"
	SensorMotion               = "motion"
	SensorBrightness           = "brightness"
	SensorBarometerTemperature = "barometer_temperature"
	SensorBarometerPressure    = "barometer_pressure"
)

// Sensors lists every sensor name in read order.
var Sensors = []string{
	SensorTemperature,
	SensorOffBoardTemperature,
	SensorHumidity,
	SensorMotion,
	SensorBrightness,
	SensorBarometerTemperature,
	SensorBarometerPressure,
}

// Value is one sensor outcome. Value is in engineering units (°C, %RH, hPa,
// lux, 0/1 for motion) and only meaningful when Status is OK.
type Value struct {
	Value  float64 `json:"value"`
	Status Status  `json:"status"`
	Err    string  `json:"error,omitempty"`
}

// OK reports whether the value was read successfully.
func (v Value) OK() bool {
	return v.Status == OK
}

// Snapshot is the outcome of one pass over all sensors.
type Snapshot struct {
	Time    time.Time        `json:"time"`
	Sensors map[string]Value `json:"sensors"`
}

// Collect calls every getter of h exactly once, in the order of Sensors.
// A failing getter does not prevent the others from being read.
func Collect(h Hub, now time.Time) Snapshot {
	s := Snapshot{Time: now, Sensors: make(map[string]Value, len(Sensors))}

	t, err := h.Temperature()
	s.set(SensorTemperature, celsius(t), err)

	t, err = h.OffBoardTemperature()
	s.set(SensorOffBoardTemperature, celsius(t), err)

	rh, err := h.Humidity()
	s.set(SensorHumidity, float64(rh)/float64(physic.PercentRH), err)

	motion, err := h.MotionDetected()
	m := 0.0
	if motion {
		m = 1
	}
	s.set(SensorMotion, m, err)

	lux, err := h.Brightness()
	s.set(SensorBrightness, float64(lux), err)

	t, err = h.BarometerTemperature()
	s.set(SensorBarometerTemperature, celsius(t), err)

	p, err := h.BarometerPressure()
	s.set(SensorBarometerPressure, hectopascal(p), err)

	return s
}

func (s *Snapshot) set(name string, v float64, err error) {
	if err != nil {
		s.Sensors[name] = Value{Status: StatusOf(err), Err: err.Error()}
		return
	}
	s.Sensors[name] = Value{Value: v, Status: OK}
}

// Get returns the value of a sensor and whether it was read successfully.
func (s Snapshot) Get(name string) (float64, bool) {
	v, ok := s.Sensors[name]
	if !ok || !v.OK() {
		return 0, false
	}
	return v.Value, true
}

// Fields returns the successfully read values keyed by sensor name.
func (s Snapshot) Fields() map[string]float64 {
	f := make(map[string]float64, len(s.Sensors))
	for name, v := range s.Sensors {
		if v.OK() {
			f[name] = v.Value
		}
	}
	return f
}

// Failed returns the names of sensors that could not be read, in read
// order.
func (s Snapshot) Failed() []string {
	var out []string
	for _, name := range Sensors {
		if v, ok := s.Sensors[name]; ok && !v.OK() {
			out = append(out, name)
		}
	}
	return out
}

func celsius(t physic.Temperature) float64 {
	return t.Celsius()
}

func hectopascal(p physic.Pressure) float64 {
	return float64(p) / float64(100*physic.Pascal)
}
