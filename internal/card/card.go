// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package card renders a snapshot as a small status card, for the HTTP API
// or for an attached display such as an SSD1306 or an e-paper panel.
package card

import (
	"image"
	"image/draw"
	"sync"

	"github.com/MGough/sensorhub/internal/reading"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
)

var (
	fontOnce sync.Once
	goFont   *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// Render draws black text on white, one line per sensor. The font size
// follows the height so that every sensor fits.
func Render(s reading.Snapshot, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid card size %dx%d", width, height)
	}
	f, err := loadFont()
	if err != nil {
		return nil, errors.Wrap(err, "parsing font")
	}
	lineHeight := float64(height) / float64(len(reading.Sensors)+1)
	face := truetype.NewFace(f, &truetype.Options{Size: lineHeight * 0.8})
	defer face.Close()

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)

	padding := lineHeight / 2
	dc.DrawString(s.Time.Format("2006-01-02 15:04:05"), padding, lineHeight)
	for i, name := range reading.Sensors {
		y := lineHeight * float64(i+2)
		dc.DrawString(reading.Labels[name], padding, y)
		dc.DrawStringAnchored(s.Text(name), float64(width)-padding, y, 1, 0)
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Bounds(), dc.Image(), image.Point{}, draw.Src)
		img = rgba
	}
	return img, nil
}

// Draw renders s at the size of dst and draws it.
func Draw(dst display.Drawer, s reading.Snapshot) error {
	b := dst.Bounds()
	img, err := Render(s, b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	return dst.Draw(b, img, image.Point{})
}
