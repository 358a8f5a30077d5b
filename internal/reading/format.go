// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reading

import "strconv"

// Labels are short human readable sensor names.
var Labels = map[string]string{
	SensorTemperature:          "Temp",
	SensorOffBoardTemperature:  "Probe",
	SensorHumidity:             "Humidity",
	SensorMotion:               "Motion",
	SensorBrightness:           "Light",
	SensorBarometerTemperature: "Baro temp",
	SensorBarometerPressure:    "Pressure",
}

var units = map[string]string{
	SensorTemperature:          "°C",
	SensorOffBoardTemperature:  "°C",
	SensorHumidity:             "%RH",
	SensorBrightness:           "lx",
	SensorBarometerTemperature: "°C",
	SensorBarometerPressure:    "hPa",
}

// Text formats one sensor of the snapshot, e.g. "22°C", "yes" or
// "disconnected".
func (s Snapshot) Text(name string) string {
	v, ok := s.Sensors[name]
	switch {
	case !ok:
		return "n/a"
	case !v.OK():
		return string(v.Status)
	case name == SensorMotion:
		if v.Value != 0 {
			return "yes"
		}
		return "no"
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64) + units[name]
}
