// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package card

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/MGough/sensorhub/internal/reading"
)

func snapshot() reading.Snapshot {
	return reading.Snapshot{
		Time: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Sensors: map[string]reading.Value{
			reading.SensorTemperature:         {Value: 22, Status: reading.OK},
			reading.SensorOffBoardTemperature: {Status: reading.Disconnected},
		},
	}
}

func countInked(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				n++
			}
		}
	}
	return n
}

func TestRender(t *testing.T) {
	img, err := Render(snapshot(), 250, 122)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 122 {
		t.Fatalf("bounds %v", b)
	}
	if countInked(img) == 0 {
		t.Fatal("no text drawn")
	}
	if c := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background %v", c)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := Render(snapshot(), 0, 64); err == nil {
		t.Fatal("expected an error")
	}
}

type fakeDrawer struct {
	img *image.RGBA
}

func (f *fakeDrawer) String() string { return "fake" }

func (f *fakeDrawer) Halt() error { return nil }

func (f *fakeDrawer) ColorModel() color.Model { return color.RGBAModel }

func (f *fakeDrawer) Bounds() image.Rectangle { return f.img.Bounds() }

func (f *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(f.img, r, src, sp, draw.Src)
	return nil
}

func TestDraw(t *testing.T) {
	d := &fakeDrawer{img: image.NewRGBA(image.Rect(0, 0, 128, 64))}
	if err := Draw(d, snapshot()); err != nil {
		t.Fatal(err)
	}
	if countInked(d.img) == 0 {
		t.Fatal("nothing drawn on the display")
	}
}
