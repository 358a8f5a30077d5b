// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MGough/sensorhub/ep0106"
	"github.com/MGough/sensorhub/internal/reading"
	"github.com/MGough/sensorhub/internal/reading/readingtest"
	"periph.io/x/conn/v3/physic"
)

type recordSink struct {
	name   string
	err    error
	got    []reading.Snapshot
	closed bool
}

func (r *recordSink) Name() string { return r.name }

func (r *recordSink) Write(s reading.Snapshot) error {
	r.got = append(r.got, s)
	return r.err
}

func (r *recordSink) Close() error {
	r.closed = true
	return r.err
}

func TestPollFansOut(t *testing.T) {
	hub := &readingtest.Hub{Temp: readingtest.Celsius(21), Pressure: 1000 * physic.Pascal}
	failing := &recordSink{name: "failing", err: errors.New("unreachable")}
	ok := &recordSink{name: "ok"}
	p := New(hub, time.Second, failing, ok)

	if _, ok := p.Latest(); ok {
		t.Fatal("snapshot available before the first poll")
	}
	s := p.Poll()
	if len(failing.got) != 1 || len(ok.got) != 1 {
		t.Fatalf("sinks got %d and %d snapshots", len(failing.got), len(ok.got))
	}
	latest, found := p.Latest()
	if !found {
		t.Fatal("no snapshot after poll")
	}
	if v, _ := latest.Get(reading.SensorTemperature); v != 21 {
		t.Fatalf("temperature %v", v)
	}
	if !latest.Time.Equal(s.Time) {
		t.Fatal("latest is not the polled snapshot")
	}
	if err := p.Close(); err == nil || !failing.closed || !ok.closed {
		t.Fatalf("close: %v", err)
	}
}

func TestPollReadsFreshValues(t *testing.T) {
	hub := &readingtest.Hub{Temp: readingtest.Celsius(20)}
	p := New(hub, time.Second)
	p.Poll()
	hub.Set(func(h *readingtest.Hub) { h.Temp = readingtest.Celsius(25) })
	p.Poll()
	latest, _ := p.Latest()
	if v, _ := latest.Get(reading.SensorTemperature); v != 25 {
		t.Fatalf("temperature %v, want 25", v)
	}
	if n := hub.Count(); n != 2 {
		t.Fatalf("%d passes over the hub, want 2", n)
	}
}

func TestSubscribe(t *testing.T) {
	hub := &readingtest.Hub{
		Errs: map[string]error{reading.SensorOffBoardTemperature: ep0106.ErrSensorDisconnected},
	}
	p := New(hub, time.Second)
	c, unsubscribe := p.Subscribe()
	p.Poll()
	p.Poll()
	s := <-c
	if s.Sensors[reading.SensorOffBoardTemperature].Status != reading.Disconnected {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	select {
	case <-c:
		t.Fatal("slow subscriber should only see the latest snapshot")
	default:
	}
	unsubscribe()
	unsubscribe()
	if _, open := <-c; open {
		t.Fatal("channel not closed")
	}
	p.Poll()
}

func TestRun(t *testing.T) {
	hub := &readingtest.Hub{}
	p := New(hub, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- p.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for hub.Count() < 3 {
		select {
		case <-deadline:
			t.Fatal("poller did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
