// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"errors"
	"testing"
)

func TestPWM8(t *testing.T) {
	ra := &recordRA{reads: map[uint16][]byte{regPWMBrightBase + 7: {0x55}}}
	d, err := New(ra, LP5860)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d8 := d.To8BitMode()

	ra.writes = nil
	if err := d8.SetPWM(2, []byte{1, 2, 3}); err != nil {
		t.Fatalf("SetPWM() failed: %v", err)
	}
	checkWrites(t, ra.writes, []regWrite{
		{start: regPWMBrightBase + 2, data: []byte{1, 2, 3}},
	})

	v, err := d8.GetPWM(7)
	if err != nil {
		t.Fatalf("GetPWM() failed: %v", err)
	}
	if v != 0x55 {
		t.Errorf("GetPWM() = %#x, want 0x55", v)
	}
}

func TestPWM8Range(t *testing.T) {
	d, err := New(&recordRA{}, LP5861)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d8 := d.To8BitMode()
	// 18 dots: a write of 4 values starting at dot 15 would address dot 18.
	if err := d8.SetPWM(15, make([]byte, 4)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPWM() error = %v, want ErrOutOfRange", err)
	}
	if err := d8.SetPWM(-1, make([]byte, 1)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPWM(-1) error = %v, want ErrOutOfRange", err)
	}
	if err := d8.SetPWM(15, make([]byte, 3)); err != nil {
		t.Errorf("SetPWM() failed: %v", err)
	}
	if _, err := d8.GetPWM(18); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetPWM(18) error = %v, want ErrOutOfRange", err)
	}
}

func TestPWM16RoundTrip(t *testing.T) {
	ra := &memRA{}
	d, err := New(ra, LP5860)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d16 := d.To16BitMode()

	if err := d16.SetPWM(0, []uint16{300, 1000}); err != nil {
		t.Fatalf("SetPWM() failed: %v", err)
	}
	// Little-endian pairs on the wire.
	want := []byte{0x2C, 0x01, 0xE8, 0x03}
	for i, b := range want {
		if got := ra.regs[int(regPWMBrightBase)+i]; got != b {
			t.Errorf("register %#x = %#x, want %#x", int(regPWMBrightBase)+i, got, b)
		}
	}

	for dot, want := range map[int]uint16{0: 300, 1: 1000} {
		got, err := d16.GetPWM(dot)
		if err != nil {
			t.Fatalf("GetPWM(%d) failed: %v", dot, err)
		}
		if got != want {
			t.Errorf("GetPWM(%d) = %d, want %d", dot, got, want)
		}
	}
}

func TestPWM16Offset(t *testing.T) {
	ra := &recordRA{}
	d, err := New(ra, LP5860)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d16 := d.To16BitMode()
	ra.writes = nil
	if err := d16.SetPWM(5, []uint16{0x1234}); err != nil {
		t.Fatalf("SetPWM() failed: %v", err)
	}
	// Dot 5 starts two registers per dot into the PWM block.
	checkWrites(t, ra.writes, []regWrite{
		{start: regPWMBrightBase + 10, data: []byte{0x34, 0x12}},
	})
}

func TestPWM16Range(t *testing.T) {
	d, err := New(&recordRA{}, LP5862)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d16 := d.To16BitMode()
	if err := d16.SetPWM(0, make([]uint16, 37)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPWM() error = %v, want ErrOutOfRange", err)
	}
	if err := d16.SetPWM(36, []uint16{1}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPWM() error = %v, want ErrOutOfRange", err)
	}
	if _, err := d16.GetPWM(36); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetPWM(36) error = %v, want ErrOutOfRange", err)
	}
}
