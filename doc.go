// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensorhub is a container for the DockerPi SensorHub (EP-0106)
// driver and its tools.
//
// The driver lives in package ep0106. cmd/sensorhub prints the readings and
// cmd/sensorhubd exports them to Prometheus, InfluxDB, MQTT and HTTP.
package sensorhub
