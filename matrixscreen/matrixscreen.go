// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package matrixscreen implements a 2D grayscale display.Drawer that
// renders an LED matrix to the terminal using ANSI color codes.
//
// Useful to preview lp586x display output, like scrolling text, without the
// hardware wired up.
package matrixscreen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the emulated matrix dimensions in dots.
	W int
	H int
	// Palette for ANSI color mapping; ansi256.Default when nil.
	Palette *ansi256.Palette
	// Writer receiving the ANSI stream; a colorable stdout when nil.
	Writer io.Writer

	_ struct{}
}

// Dev is a 2D LED matrix emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette

	pixels []byte // one luminance byte per dot
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of matrix animations.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		palette: *p,
		pixels:  make([]byte, opts.W*opts.H),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("MatrixScreen{%s}", d.rect.Max)
}

// Halt implements conn.Resource.
//
// It resets the terminal color state so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.GrayModel.Convert(src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)).(color.Gray)
			d.pixels[y*d.rect.Dx()+x] = c.Y
		}
	}
	_, err := d.refresh()
	return err
}

// Write accepts a stream of raw luminance dots, one byte each, row by row,
// and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.pixels) {
		return 0, errors.New("invalid luminance stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per
	// call. After the frame, the cursor is moved back up so the next frame
	// overwrites this one.
	w := d.rect.Dx()
	h := d.rect.Dy()
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := d.pixels[y*w+x]
			c := color.NRGBA{R: l, G: l, B: l, A: 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	fmt.Fprintf(&d.buf, "\033[%dA\r", h)
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
