// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// vsyncPulse is how long the VSYNC line is held high to latch a frame. The
// chip samples the line, so the pulse must have a guaranteed minimum width;
// an explicit delay is used rather than counting line writes.
const vsyncPulse = 100 * time.Microsecond

// Display composites two LP586x controllers of the same variant, stacked
// vertically, into one grayscale display twice as tall as either chip.
//
// The two chips are mounted mirrored relative to the logical coordinate
// space, so every x coordinate is flipped (x' = width-1-x) before it is
// mapped to a controller. This is a fixed property of the hardware
// topology, not an option.
//
// Both controllers must be configured for data refresh mode 2 so that
// frames are latched by the shared VSYNC line.
type Display struct {
	upper *Dev8
	lower *Dev8
	vsync gpio.PinOut
	rect  image.Rectangle
}

// NewDisplay returns a Display composed of the two controllers and the
// VSYNC pin latching their frames.
//
// upper drives the top half of the virtual surface. Both controllers must
// be the same size.
func NewDisplay(upper, lower *Dev8, vsync gpio.PinOut) (*Display, error) {
	if upper.Variant() != lower.Variant() {
		return nil, fmt.Errorf("%w: %s and %s", ErrSizeMismatch, upper.Variant(), lower.Variant())
	}
	if err := vsync.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &Display{
		upper: upper,
		lower: lower,
		vsync: vsync,
		rect:  image.Rect(0, 0, upper.Variant().Sinks(), 2*upper.Variant().Lines()),
	}, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("lp586x.Display{%s, %s, %s}", d.upper.Variant(), d.vsync, d.rect.Max)
}

// ColorModel implements display.Drawer. The display is single-channel
// grayscale.
func (d *Display) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Display) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// Pixels are written one dot at a time and the frame is latched with a
// VSYNC pulse once all of them are sent. For full-frame animation consider
// writing batches directly with Dev8.SetPWM.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)
			if err := d.SetPixel(image.Pt(x, y), c); err != nil {
				return err
			}
		}
	}
	return d.Sync()
}

// SetPixel immediately writes a single pixel. Pixels outside the display
// bounds are silently dropped.
//
// The write lands in the chip's shadow frame buffer; it becomes visible at
// the next Sync.
func (d *Display) SetPixel(p image.Point, c color.Color) error {
	luma := color.GrayModel.Convert(c).(color.Gray).Y
	ctrl, offset, ok := d.controllerAndOffset(p)
	if !ok {
		return nil
	}
	if ctrl == 0 {
		return d.upper.SetPWM(offset, []byte{luma})
	}
	return d.lower.SetPWM(offset, []byte{luma})
}

// controllerAndOffset maps a point of the virtual surface to a controller
// index and the dot offset within that controller. ok is false for points
// outside the surface.
func (d *Display) controllerAndOffset(p image.Point) (ctrl, offset int, ok bool) {
	w := d.rect.Dx()
	h := d.rect.Dy() / 2
	x := w - 1 - p.X
	if x < 0 || x >= w || p.Y < 0 || p.Y >= 2*h {
		return 0, 0, false
	}
	if p.Y < h {
		return 0, p.Y*w + x, true
	}
	return 1, (p.Y-h)*w + x, true
}

// Sync pulses the VSYNC line, swapping the chips' shadow and active frame
// buffers. Call it after a batch of pixel writes to display the frame.
func (d *Display) Sync() error {
	if err := d.vsync.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(vsyncPulse)
	return d.vsync.Out(gpio.Low)
}

// Configure writes the configuration to both controllers.
func (d *Display) Configure(cfg *Config) error {
	if err := d.upper.Configure(cfg); err != nil {
		return err
	}
	return d.lower.Configure(cfg)
}

// ChipEnable enables or disables both controllers.
func (d *Display) ChipEnable(enable bool) error {
	if err := d.upper.ChipEnable(enable); err != nil {
		return err
	}
	return d.lower.ChipEnable(enable)
}

// SetGlobalBrightness scales the brightness of both controllers.
func (d *Display) SetGlobalBrightness(brightness uint8) error {
	if err := d.upper.SetGlobalBrightness(brightness); err != nil {
		return err
	}
	return d.lower.SetGlobalBrightness(brightness)
}

// Upper returns the controller driving the top half.
func (d *Display) Upper() *Dev8 {
	return d.upper
}

// Lower returns the controller driving the bottom half.
func (d *Display) Lower() *Dev8 {
	return d.lower
}

// Halt implements conn.Resource. It blanks the display and disables both
// controllers.
func (d *Display) Halt() error {
	blank := make([]byte, d.upper.Dots())
	if err := d.upper.SetPWM(0, blank); err != nil {
		return err
	}
	if err := d.lower.SetPWM(0, blank); err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		return err
	}
	return d.ChipEnable(false)
}

var _ display.Drawer = &Display{}
