// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sensorhub prints the readings of a DockerPi SensorHub once, or
// continuously with -watch.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MGough/sensorhub/ep0106"
	"github.com/MGough/sensorhub/internal/console"
	"github.com/MGough/sensorhub/internal/reading"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func mainImpl() error {
	bus := flag.String("bus", "1", "I²C bus the board is attached to")
	watch := flag.Duration("watch", 0, "read continuously at this interval")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.Errorf("unexpected argument: %s", flag.Args())
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	dev, err := ep0106.Open(*bus)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Debugf("opened %s on bus %q", dev, *bus)

	fd := os.Stdout.Fd()
	out := console.New(nil, &console.Opts{NoColor: !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)})
	defer out.Halt()

	if *watch <= 0 {
		return out.Write(reading.Collect(dev, time.Now()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	t := time.NewTicker(*watch)
	defer t.Stop()
	for {
		if err := out.Write(reading.Collect(dev, time.Now())); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sensorhub: %s.\n", err)
		os.Exit(1)
	}
}
