// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console renders a snapshot as a single terminal line using ANSI
// colors: one colored block per sensor followed by the values.
package console

import (
	"bytes"
	"image/color"
	"io"
	"strings"

	"github.com/MGough/sensorhub/internal/reading"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the console.
type Opts struct {
	Palette *ansi256.Palette
	// NoColor disables the blocks, for output that is not a terminal.
	NoColor bool

	_ struct{}
}

// Dev writes snapshots to a terminal.
type Dev struct {
	w       io.Writer
	palette *ansi256.Palette
	noColor bool

	buf bytes.Buffer
}

// New returns a Dev writing to w, or to a colorable stdout when w is nil.
func New(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, palette: p, noColor: opts.NoColor}
}

func (d *Dev) String() string {
	return "Console"
}

// Halt implements conn.Resource.
//
// It terminates the line and resets the colors.
func (d *Dev) Halt() error {
	end := "\n"
	if !d.noColor {
		end = "\n\033[0m"
	}
	_, err := io.WriteString(d.w, end)
	return err
}

// Write overwrites the current line with s.
func (d *Dev) Write(s reading.Snapshot) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r")
	if !d.noColor {
		_, _ = d.buf.WriteString("\033[0m")
		for _, name := range reading.Sensors {
			_, _ = d.buf.WriteString(d.palette.Block(Color(s, name)))
		}
		_, _ = d.buf.WriteString("\033[0m ")
	}
	_, _ = d.buf.WriteString(Line(s))
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Line is the text part of the output.
func Line(s reading.Snapshot) string {
	parts := make([]string, 0, len(reading.Sensors))
	for _, name := range reading.Sensors {
		parts = append(parts, reading.Labels[name]+" "+s.Text(name))
	}
	return strings.Join(parts, "  ")
}

var (
	failed   = color.NRGBA{R: 0x80, B: 0x80, A: 255}
	idle     = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 255}
	detected = color.NRGBA{G: 0xff, A: 255}
)

// Color maps a sensor value to the color of its block.
func Color(s reading.Snapshot, name string) color.NRGBA {
	v, ok := s.Get(name)
	if !ok {
		return failed
	}
	switch name {
	case reading.SensorTemperature, reading.SensorOffBoardTemperature, reading.SensorBarometerTemperature:
		// Blue at 0°C to red at 40°C.
		f := clamp(v / 40)
		return color.NRGBA{R: byte(f * 255), B: byte((1 - f) * 255), A: 255}
	case reading.SensorHumidity:
		f := clamp(v / 100)
		return color.NRGBA{R: byte((1 - f) * 255), G: byte((1 - f) * 255), B: 255, A: 255}
	case reading.SensorMotion:
		if v != 0 {
			return detected
		}
		return idle
	case reading.SensorBrightness:
		// Logarithmic-ish: 1000lx and more is full yellow.
		f := clamp(v / 1000)
		return color.NRGBA{R: byte(f * 255), G: byte(f * 255), A: 255}
	case reading.SensorBarometerPressure:
		// Low pressure darker, 950..1050hPa.
		f := clamp((v - 950) / 100)
		g := byte(0x40 + f*0xbf)
		return color.NRGBA{R: g, G: g, B: g, A: 255}
	}
	return idle
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
