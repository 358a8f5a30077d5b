// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sensorhubd polls a DockerPi SensorHub and exports the readings to
// Prometheus, InfluxDB, MQTT and an HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MGough/sensorhub/ep0106"
	"github.com/MGough/sensorhub/internal/config"
	"github.com/MGough/sensorhub/internal/poller"
	"github.com/MGough/sensorhub/internal/server"
	"github.com/MGough/sensorhub/internal/sink"
	"github.com/pkg/errors"
	"github.com/prometheus/common/version"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}

func mainImpl() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)
	log.Infof("starting sensorhubd %s", version.Info())

	dev, err := ep0106.Open(cfg.Bus)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Errorf("failed to close the bus: %s", err)
		}
	}()

	prom := sink.NewPrometheus()
	sinks := []sink.Sink{prom}
	if cfg.Influx.Enabled() {
		sinks = append(sinks, sink.NewInflux(cfg.Influx, "ep0106"))
	}
	if cfg.MQTT.Enabled() {
		m, err := sink.NewMQTT(cfg.MQTT)
		if err != nil {
			log.Errorf("mqtt disabled: %s", err)
		} else {
			sinks = append(sinks, m)
		}
	}

	p := poller.New(dev, cfg.Interval, sinks...)
	defer func() {
		if err := p.Close(); err != nil {
			log.Errorf("failed to close sinks: %s", err)
		}
	}()
	srv := server.New(p, prom.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx, cfg.ListenAddr) })

	log.WithFields(log.Fields{
		"bus":      cfg.Bus,
		"interval": cfg.Interval,
		"sinks":    len(sinks),
	}).Infof("polling %s", dev)
	return errors.Wrap(g.Wait(), "sensorhubd")
}
