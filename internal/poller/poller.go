// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package poller reads the board on an interval and fans snapshots out.
//
// The hub is only called from the goroutine running Run, which serializes
// bus access without locking inside the driver.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/MGough/sensorhub/internal/reading"
	"github.com/MGough/sensorhub/internal/sink"
	log "github.com/sirupsen/logrus"
)

// Poller owns a hub and the latest snapshot taken from it.
type Poller struct {
	hub      reading.Hub
	interval time.Duration
	sinks    []sink.Sink
	now      func() time.Time

	mu     sync.Mutex
	latest *reading.Snapshot
	subs   map[chan reading.Snapshot]struct{}
}

// New returns a Poller reading h every interval.
func New(h reading.Hub, interval time.Duration, sinks ...sink.Sink) *Poller {
	return &Poller{
		hub:      h,
		interval: interval,
		sinks:    sinks,
		now:      time.Now,
		subs:     map[chan reading.Snapshot]struct{}{},
	}
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.Poll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll takes one snapshot, stores it, notifies subscribers and writes it to
// every sink. A failing sink is logged and does not affect the others.
func (p *Poller) Poll() reading.Snapshot {
	s := reading.Collect(p.hub, p.now())

	p.mu.Lock()
	prev := p.latest
	p.latest = &s
	for c := range p.subs {
		select {
		case <-c:
		default:
		}
		c <- s
	}
	p.mu.Unlock()

	logTransitions(prev, s)
	for _, k := range p.sinks {
		if err := k.Write(s); err != nil {
			log.WithField("sink", k.Name()).Errorf("failed to write snapshot: %s", err)
		}
	}
	return s
}

// Latest returns the last snapshot, false before the first poll.
func (p *Poller) Latest() (reading.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return reading.Snapshot{}, false
	}
	return *p.latest, true
}

// Subscribe returns a channel receiving every new snapshot. Slow readers
// only see the most recent one. The returned func unsubscribes and closes
// the channel.
func (p *Poller) Subscribe() (<-chan reading.Snapshot, func()) {
	c := make(chan reading.Snapshot, 1)
	p.mu.Lock()
	p.subs[c] = struct{}{}
	p.mu.Unlock()
	var once sync.Once
	return c, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, c)
			p.mu.Unlock()
			close(c)
		})
	}
}

// Close closes every sink.
func (p *Poller) Close() error {
	var first error
	for _, k := range p.sinks {
		if err := k.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// logTransitions logs sensors changing status, not every failed read.
func logTransitions(prev *reading.Snapshot, s reading.Snapshot) {
	for _, name := range reading.Sensors {
		v := s.Sensors[name]
		was := reading.OK
		if prev != nil {
			was = prev.Sensors[name].Status
		}
		if v.Status == was {
			continue
		}
		entry := log.WithField("sensor", name)
		if v.OK() {
			entry.Infof("sensor recovered from %s", was)
		} else {
			entry.Warnf("sensor read failed: %s", v.Err)
		}
	}
}
