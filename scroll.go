// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text styles used by the scroller. Erasing is an explicit second draw in
// the dark style since there is no frame buffer to clear.
var (
	textLit  = color.Gray{Y: 0xFF}
	textDark = color.Gray{Y: 0x00}
)

// TextScroller animates text scrolling horizontally across a Display: the
// text enters at the right edge and leaves past the left edge.
//
// It is a lazy, finite, non-restartable sequence of frames in the style of
// bufio.Scanner: every call to Scan renders one frame. Abandoning the
// scroller between frames simply leaves the last frame on screen.
type TextScroller struct {
	d    *Display
	face font.Face
	text string

	x    int // next offset to render
	min  int // final offset, -textWidth
	y    int // text baseline
	err  error
	done bool
}

// NewTextScroller returns a scroller rendering text with the default 7x13
// font.
func NewTextScroller(d *Display, text string) *TextScroller {
	return NewTextScrollerFace(d, text, basicfont.Face7x13)
}

// NewTextScrollerFace returns a scroller rendering text with the given
// font face.
//
// The offsets run from the display width down to the negative text width,
// both inclusive, so the text starts and ends fully off-screen.
func NewTextScrollerFace(d *Display, text string, face font.Face) *TextScroller {
	return &TextScroller{
		d:    d,
		face: face,
		text: text,
		x:    d.Bounds().Dx(),
		min:  -font.MeasureString(face, text).Ceil(),
		// The face's line height overshoots the matrix slightly; the -2 is
		// an empirical baseline correction.
		y: face.Metrics().Height.Ceil() - 2,
	}
}

// Scan renders the next frame of the animation. It returns false once the
// text has scrolled past the left edge or rendering failed; see Err.
func (s *TextScroller) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.x < s.min {
		s.done = true
		return false
	}
	if err := s.drawFrame(s.x); err != nil {
		s.err = err
		return false
	}
	s.x--
	return true
}

// Offset returns the horizontal offset of the frame rendered by the last
// call to Scan.
func (s *TextScroller) Offset() int {
	return s.x + 1
}

// Err returns the first error encountered while rendering, if any.
func (s *TextScroller) Err() error {
	return s.err
}

// drawFrame draws the text lit, latches the frame, then redraws it dark so
// the next frame starts from an empty shadow buffer.
func (s *TextScroller) drawFrame(x int) error {
	if err := s.drawText(x, textLit); err != nil {
		return err
	}
	if err := s.d.Sync(); err != nil {
		return err
	}
	return s.drawText(x, textDark)
}

// drawText rasterizes the text at offset x, writing every glyph pixel with
// at least half coverage in the given shade. Pixels outside the display are
// dropped by SetPixel.
func (s *TextScroller) drawText(x int, shade color.Gray) error {
	dot := fixed.P(x, s.y)
	prev := rune(-1)
	for _, r := range s.text {
		if prev >= 0 {
			dot.X += s.face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := s.face.Glyph(dot, r)
		if !ok {
			prev = -1
			continue
		}
		for yy := dr.Min.Y; yy < dr.Max.Y; yy++ {
			for xx := dr.Min.X; xx < dr.Max.X; xx++ {
				_, _, _, ma := mask.At(maskp.X+xx-dr.Min.X, maskp.Y+yy-dr.Min.Y).RGBA()
				if ma < 0x8000 {
					continue
				}
				if err := s.d.SetPixel(image.Pt(xx, yy), shade); err != nil {
					return err
				}
			}
		}
		dot.X += advance
		prev = r
	}
	return nil
}

// TrueTypeFace parses TTF font data and returns a face sized for the given
// point size at 72 DPI, for use with NewTextScrollerFace.
func TrueTypeFace(ttf []byte, points float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("lp586x: parsing font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
