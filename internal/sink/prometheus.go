// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sink

import (
	"net/http"

	"github.com/MGough/sensorhub/internal/reading"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var gaugeHelp = map[string]string{
	reading.SensorTemperature:          "On-board temperature (units: degrees Celsius)",
	reading.SensorOffBoardTemperature:  "External probe temperature (units: degrees Celsius)",
	reading.SensorHumidity:             "On-board humidity (units: % of relative humidity)",
	reading.SensorMotion:               "Motion detected by the PIR sensor (1 or 0)",
	reading.SensorBrightness:           "Brightness (units: lux)",
	reading.SensorBarometerTemperature: "Barometer temperature (units: degrees Celsius)",
	reading.SensorBarometerPressure:    "Atmospheric pressure (units: hPa)",
}

// Prometheus keeps one gauge per sensor in its own registry.
type Prometheus struct {
	registry *prometheus.Registry
	gauges   map[string]prometheus.Gauge
	up       *prometheus.GaugeVec
	errors   *prometheus.CounterVec
	lastRead prometheus.Gauge
}

// NewPrometheus registers the sensorhub metrics and the Go runtime and build
// info collectors in a new registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		gauges:   map[string]prometheus.Gauge{},
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sensorhub_sensor_up",
			Help: "Whether the last read of the sensor succeeded (1 or 0)",
		}, []string{"sensor"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorhub_read_errors_total",
			Help: "Failed sensor reads by outcome",
		}, []string{"sensor", "status"}),
		lastRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorhub_last_read_timestamp_seconds",
			Help: "Unix time of the last snapshot",
		}),
	}
	for _, name := range reading.Sensors {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorhub_" + name,
			Help: gaugeHelp[name],
		})
		p.gauges[name] = g
		p.registry.MustRegister(g)
	}
	p.registry.MustRegister(p.up, p.errors, p.lastRead)
	p.registry.MustRegister(collectors.NewGoCollector())
	p.registry.MustRegister(collectors.NewBuildInfoCollector())
	return p
}

func (p *Prometheus) Name() string {
	return "prometheus"
}

// Write updates the gauges of the sensors read successfully. Gauges of
// failed sensors keep their previous value, sensorhub_sensor_up tells them
// apart.
func (p *Prometheus) Write(s reading.Snapshot) error {
	for _, name := range reading.Sensors {
		v, ok := s.Sensors[name]
		if !ok {
			continue
		}
		if v.OK() {
			p.gauges[name].Set(v.Value)
			p.up.WithLabelValues(name).Set(1)
			continue
		}
		p.up.WithLabelValues(name).Set(0)
		p.errors.WithLabelValues(name, string(v.Status)).Inc()
	}
	p.lastRead.Set(float64(s.Time.Unix()) + float64(s.Time.Nanosecond())/1e9)
	return nil
}

func (p *Prometheus) Close() error {
	return nil
}

// Registry returns the registry holding the metrics.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		// Opt into OpenMetrics to support exemplars.
		EnableOpenMetrics: true,
	})
}
