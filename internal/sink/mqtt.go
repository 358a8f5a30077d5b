// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sink

import (
	"encoding/json"
	"time"

	"github.com/MGough/sensorhub/internal/config"
	"github.com/MGough/sensorhub/internal/reading"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const mqttTimeout = 10 * time.Second

// publisher is the part of mqtt.Client the sink uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes every snapshot as retained JSON on <topic>/state.
type MQTT struct {
	client publisher
	topic  string
}

// NewMQTT connects to the broker in cfg.
func NewMQTT(cfg config.MQTT) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warnf("mqtt connection lost: %s", err)
		})
	client := mqtt.NewClient(opts)
	if err := wait(client.Connect()); err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", cfg.Broker)
	}
	return &MQTT{client: client, topic: cfg.Topic}, nil
}

func (m *MQTT) Name() string {
	return "mqtt"
}

// StateTopic is where snapshots are published.
func (m *MQTT) StateTopic() string {
	return m.topic + "/state"
}

func (m *MQTT) Write(s reading.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return errors.Wrap(wait(m.client.Publish(m.StateTopic(), 0, true, payload)), "publishing snapshot")
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}

func wait(t mqtt.Token) error {
	if !t.WaitTimeout(mqttTimeout) {
		return errors.New("mqtt operation timed out")
	}
	return t.Error()
}
