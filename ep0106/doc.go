// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ep0106 reads the DockerPi SensorHub (EP-0106) expansion board.
//
// The board exposes every sensor through a single I²C slave at address 0x17
// backed by an STM32 that refreshes a small register file. Each read is a
// register-select write followed by a one byte read:
//
//   - on-board temperature and humidity (DHT11 class sensor)
//   - external NTC temperature probe
//   - brightness (lux)
//   - barometer temperature and pressure (BMP280)
//   - PIR motion
//
// Dev does no locking. Callers that share one Dev between goroutines must
// serialize calls themselves.
//
// # Datasheet
//
// https://wiki.52pi.com/index.php/DockerPi_Sensor_Hub_Development_Board_SKU:_EP-0106
//
// # Examples
//
// https://github.com/geeekpi/dockerpi
package ep0106
