// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sink

import (
	"context"
	"time"

	"github.com/MGough/sensorhub/internal/config"
	"github.com/MGough/sensorhub/internal/reading"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
)

const influxMeasurement = "sensorhub"

// Influx writes one point per snapshot.
type Influx struct {
	client  influxdb2.Client
	write   api.WriteAPIBlocking
	board   string
	timeout time.Duration
}

// NewInflux returns a sink writing to the bucket in cfg. board is used as
// the "board" tag.
func NewInflux(cfg config.Influx, board string) *Influx {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &Influx{
		client:  client,
		write:   client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		board:   board,
		timeout: 10 * time.Second,
	}
}

func (i *Influx) Name() string {
	return "influx"
}

// Point converts a snapshot. It returns nil when no sensor could be read.
func (i *Influx) Point(s reading.Snapshot) *write.Point {
	fields := s.Fields()
	if len(fields) == 0 {
		return nil
	}
	p := influxdb2.NewPointWithMeasurement(influxMeasurement).
		AddTag("board", i.board).
		SetTime(s.Time)
	for key, value := range fields {
		p.AddField(key, value)
	}
	return p
}

func (i *Influx) Write(s reading.Snapshot) error {
	p := i.Point(s)
	if p == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()
	return errors.Wrap(i.write.WritePoint(ctx, p), "writing influx point")
}

func (i *Influx) Close() error {
	i.client.Close()
	return nil
}
