// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// The offset sequence runs from the surface width down to the negative
// text width, both inclusive.
func TestScrollOffsets(t *testing.T) {
	d, _, _, _ := newTestDisplay(t, LP5862)
	const text = "Hi"
	textWidth := font.MeasureString(basicfont.Face7x13, text).Ceil()

	s := NewTextScroller(d, text)
	var offsets []int
	for s.Scan() {
		offsets = append(offsets, s.Offset())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	surfaceWidth := d.Bounds().Dx()
	wantLen := surfaceWidth + textWidth + 1
	if len(offsets) != wantLen {
		t.Fatalf("len(offsets) = %d, want %d", len(offsets), wantLen)
	}
	if offsets[0] != surfaceWidth {
		t.Errorf("offsets[0] = %d, want %d", offsets[0], surfaceWidth)
	}
	if offsets[len(offsets)-1] != -textWidth {
		t.Errorf("last offset = %d, want %d", offsets[len(offsets)-1], -textWidth)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] != offsets[i-1]-1 {
			t.Fatalf("offsets not descending by one at %d: %v", i, offsets[i-1:i+1])
		}
	}

	// The sequence is finite and does not restart.
	if s.Scan() {
		t.Error("Scan() returned true after the sequence ended")
	}
}

// Every frame is a draw-then-erase double pass with a sync pulse between
// the passes, so each Scan toggles the VSYNC line exactly once.
func TestScrollSyncPerFrame(t *testing.T) {
	d, _, _, pin := newTestDisplay(t, LP5862)
	s := NewTextScroller(d, "x")
	pin.levels = nil
	frames := 0
	for s.Scan() {
		frames++
	}
	if got, want := len(pin.levels), 2*frames; got != want {
		t.Errorf("VSYNC transitions = %d, want %d (%d frames)", got, want, frames)
	}
}

func TestScrollDrawErase(t *testing.T) {
	d, upper, lower, _ := newTestDisplay(t, LP5860)
	s := NewTextScroller(d, "II")

	lit := func() int {
		n := 0
		for i := 0; i < 198; i++ {
			if upper.regs[int(regPWMBrightBase)+i] != 0 {
				n++
			}
			if lower.regs[int(regPWMBrightBase)+i] != 0 {
				n++
			}
		}
		return n
	}

	// The lit pass is visible in the shadow registers before the erase
	// pass runs.
	if err := s.drawText(2, textLit); err != nil {
		t.Fatalf("drawText() failed: %v", err)
	}
	if lit() == 0 {
		t.Fatal("lit pass wrote no pixels")
	}
	if err := s.drawText(2, textDark); err != nil {
		t.Fatalf("drawText() failed: %v", err)
	}
	if n := lit(); n != 0 {
		t.Fatalf("erase pass left %d pixels lit", n)
	}
}

// Abandoning the scroller between frames is the only cancellation there
// is; it leaves the last frame's erase pass in the shadow buffer.
func TestScrollAbandon(t *testing.T) {
	d, _, _, _ := newTestDisplay(t, LP5862)
	s := NewTextScroller(d, "abc")
	for i := 0; i < 3; i++ {
		if !s.Scan() {
			t.Fatal("Scan() ended early")
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestScrollBaseline(t *testing.T) {
	d, _, _, _ := newTestDisplay(t, LP5860)
	s := NewTextScroller(d, "x")
	want := basicfont.Face7x13.Metrics().Height.Ceil() - 2
	if s.y != want {
		t.Errorf("baseline = %d, want %d", s.y, want)
	}
}

func TestTrueTypeFace(t *testing.T) {
	face, err := TrueTypeFace(goregular.TTF, 13)
	if err != nil {
		t.Fatalf("TrueTypeFace() failed: %v", err)
	}
	if w := font.MeasureString(face, "scroll").Ceil(); w <= 0 {
		t.Errorf("MeasureString() = %d, want > 0", w)
	}
	if _, err := TrueTypeFace([]byte("not a font"), 13); err == nil {
		t.Error("TrueTypeFace() accepted invalid font data")
	}
}
