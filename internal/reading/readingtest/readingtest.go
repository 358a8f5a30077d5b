// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package readingtest provides a fake reading.Hub for tests.
package readingtest

import (
	"sync"

	"github.com/MGough/sensorhub/ep0106"
	"github.com/MGough/sensorhub/internal/reading"
	"periph.io/x/conn/v3/physic"
)

// Hub returns its fields from the getters. Errs, keyed by reading.Sensor*
// names, overrides a getter with an error.
type Hub struct {
	sync.Mutex
	Temp         physic.Temperature
	OffBoardTemp physic.Temperature
	RH           physic.RelativeHumidity
	Motion       bool
	Light        ep0106.Lux
	BaroTemp     physic.Temperature
	Pressure     physic.Pressure
	Errs         map[string]error

	// Passes counts Temperature calls, which is one per reading.Collect.
	Passes int
}

// Celsius is a convenience to build temperatures.
func Celsius(c float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin))
}

// Set updates the hub under its lock.
func (h *Hub) Set(fn func(h *Hub)) {
	h.Lock()
	defer h.Unlock()
	fn(h)
}

// Count returns Passes under the lock.
func (h *Hub) Count() int {
	h.Lock()
	defer h.Unlock()
	return h.Passes
}

func (h *Hub) Temperature() (physic.Temperature, error) {
	h.Lock()
	defer h.Unlock()
	h.Passes++
	return h.Temp, h.Errs[reading.SensorTemperature]
}

func (h *Hub) OffBoardTemperature() (physic.Temperature, error) {
	h.Lock()
	defer h.Unlock()
	return h.OffBoardTemp, h.Errs[reading.SensorOffBoardTemperature]
}

func (h *Hub) Humidity() (physic.RelativeHumidity, error) {
	h.Lock()
	defer h.Unlock()
	return h.RH, h.Errs[reading.SensorHumidity]
}

func (h *Hub) MotionDetected() (bool, error) {
	h.Lock()
	defer h.Unlock()
	return h.Motion, h.Errs[reading.SensorMotion]
}

func (h *Hub) Brightness() (ep0106.Lux, error) {
	h.Lock()
	defer h.Unlock()
	return h.Light, h.Errs[reading.SensorBrightness]
}

func (h *Hub) BarometerTemperature() (physic.Temperature, error) {
	h.Lock()
	defer h.Unlock()
	return h.BaroTemp, h.Errs[reading.SensorBarometerTemperature]
}

func (h *Hub) BarometerPressure() (physic.Pressure, error) {
	h.Lock()
	defer h.Unlock()
	return h.Pressure, h.Errs[reading.SensorBarometerPressure]
}

var _ reading.Hub = &Hub{}
