// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefaults(t *testing.T) {
	c, err := Load(nil, missingEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Bus:        "1",
		Interval:   10 * time.Second,
		ListenAddr: ":8080",
		LogLevel:   log.InfoLevel,
		Influx:     Influx{Bucket: "sensorhub"},
		MQTT:       MQTT{Topic: "sensorhub", ClientID: "sensorhubd"},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if c.Influx.Enabled() || c.MQTT.Enabled() {
		t.Fatal("sinks should be disabled by default")
	}
}

func TestEnvironmentAndFlags(t *testing.T) {
	t.Setenv(EnvBus, "2")
	t.Setenv(EnvInterval, "1m")
	t.Setenv(EnvMQTTBroker, "tcp://broker:1883")
	c, err := Load([]string{"-interval", "5s", "-log-level", "debug"}, missingEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}
	if c.Bus != "2" {
		t.Errorf("bus %q, want %q", c.Bus, "2")
	}
	if c.Interval != 5*time.Second {
		t.Errorf("flag did not override environment: %s", c.Interval)
	}
	if c.LogLevel != log.DebugLevel {
		t.Errorf("log level %s", c.LogLevel)
	}
	if !c.MQTT.Enabled() || c.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("mqtt %+v", c.MQTT)
	}
}

func TestEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "INFLUX_URL=http://influx:8086\nINFLUX_ORG=home\nINFLUX_TOKEN=secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvInfluxURL)
		os.Unsetenv(EnvInfluxOrg)
		os.Unsetenv(EnvInfluxToken)
	})
	c, err := Load(nil, path)
	if err != nil {
		t.Fatal(err)
	}
	want := Influx{URL: "http://influx:8086", Token: "secret", Org: "home", Bucket: "sensorhub"}
	if diff := cmp.Diff(want, c.Influx); diff != "" {
		t.Fatalf("influx mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalid(t *testing.T) {
	tests := map[string][]string{
		"interval":      {"-interval", "soon"},
		"zero interval": {"-interval", "0s"},
		"log level":     {"-log-level", "loud"},
		"unknown flag":  {"-nope"},
		"influx org":    {"-influx-url", "http://influx:8086"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(args, missingEnvFile(t)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
