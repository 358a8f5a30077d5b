// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sink exports snapshots to monitoring systems.
package sink

import "github.com/MGough/sensorhub/internal/reading"

// Sink consumes snapshots. Write is called from a single goroutine.
type Sink interface {
	Name() string
	Write(s reading.Snapshot) error
	Close() error
}
