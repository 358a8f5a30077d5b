// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the sensorhubd configuration.
//
// Values come from, in increasing precedence: built-in defaults, a .env
// file, the process environment, command line flags.
package config

import (
	"flag"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Environment keys.
const (
	EnvBus          = "SENSORHUB_BUS"
	EnvInterval     = "SENSORHUB_INTERVAL"
	EnvListenAddr   = "LISTEN_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
	EnvInfluxURL    = "INFLUX_URL"
	EnvInfluxToken  = "INFLUX_TOKEN"
	EnvInfluxOrg    = "INFLUX_ORG"
	EnvInfluxBucket = "INFLUX_BUCKET"
	EnvMQTTBroker   = "MQTT_BROKER"
	EnvMQTTTopic    = "MQTT_TOPIC"
	EnvMQTTClientID = "MQTT_CLIENT_ID"
)

// Influx configures the InfluxDB sink. It is disabled when URL is empty.
type Influx struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Enabled reports whether points should be written.
func (i Influx) Enabled() bool {
	return i.URL != ""
}

// MQTT configures the MQTT sink. It is disabled when Broker is empty.
type MQTT struct {
	Broker   string
	Topic    string
	ClientID string
}

// Enabled reports whether snapshots should be published.
func (m MQTT) Enabled() bool {
	return m.Broker != ""
}

// Config is the daemon configuration.
type Config struct {
	// Bus is the periph I²C bus name, "1" on a Raspberry Pi.
	Bus        string
	Interval   time.Duration
	ListenAddr string
	LogLevel   log.Level
	Influx     Influx
	MQTT       MQTT
}

// Load reads envFiles (".env" when none is given; missing files are
// ignored) and then parses args.
func Load(args []string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "loading env file")
		}
		log.Debug("no .env file found, using environment variables")
	}

	c := &Config{}
	set := flag.NewFlagSet("sensorhubd", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.StringVar(&c.Bus, "bus", getEnv(EnvBus, "1"), "I²C bus the board is attached to")
	interval := set.String("interval", getEnv(EnvInterval, "10s"), "time between two reads of the board")
	set.StringVar(&c.ListenAddr, "listen-address", getEnv(EnvListenAddr, ":8080"), "address to serve HTTP on")
	level := set.String("log-level", getEnv(EnvLogLevel, "info"), "logrus level")
	set.StringVar(&c.Influx.URL, "influx-url", getEnv(EnvInfluxURL, ""), "InfluxDB URL, empty to disable")
	set.StringVar(&c.Influx.Token, "influx-token", getEnv(EnvInfluxToken, ""), "InfluxDB token")
	set.StringVar(&c.Influx.Org, "influx-org", getEnv(EnvInfluxOrg, ""), "InfluxDB organization")
	set.StringVar(&c.Influx.Bucket, "influx-bucket", getEnv(EnvInfluxBucket, "sensorhub"), "InfluxDB bucket")
	set.StringVar(&c.MQTT.Broker, "mqtt-broker", getEnv(EnvMQTTBroker, ""), "MQTT broker URL, empty to disable")
	set.StringVar(&c.MQTT.Topic, "mqtt-topic", getEnv(EnvMQTTTopic, "sensorhub"), "MQTT topic prefix")
	set.StringVar(&c.MQTT.ClientID, "mqtt-client-id", getEnv(EnvMQTTClientID, "sensorhubd"), "MQTT client id")
	if err := set.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parsing flags")
	}

	var err error
	if c.Interval, err = time.ParseDuration(*interval); err != nil {
		return nil, errors.Wrapf(err, "invalid interval %q", *interval)
	}
	if c.Interval <= 0 {
		return nil, errors.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.LogLevel, err = log.ParseLevel(*level); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	if c.Influx.Enabled() && (c.Influx.Org == "" || c.Influx.Bucket == "") {
		return nil, errors.New("influx org and bucket are required when influx url is set")
	}
	return c, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
