// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestSPIHeader(t *testing.T) {
	for _, tc := range []struct {
		register uint16
		write    bool
		want     [2]byte
	}{
		{0x38B, true, [2]byte{0xE2, 0xE0}},
		{0x38B, false, [2]byte{0xE2, 0xC0}},
		{0x0A9, true, [2]byte{0x2A, 0x60}},
		{0x000, true, [2]byte{0x00, 0x20}},
		{0x000, false, [2]byte{0x00, 0x00}},
	} {
		if got := spiHeader(tc.register, tc.write); got != tc.want {
			t.Errorf("spiHeader(%#x, %v) = %#x, want %#x", tc.register, tc.write, got, tc.want)
		}
	}
}

func TestSPIHardwareCS(t *testing.T) {
	port := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// Write 0xFF to the reset register.
				{W: []byte{0x2A, 0x60, 0xFF}},
				// Read one byte from 0x38B; the first two received bytes
				// clock in while the header still goes out.
				{W: []byte{0xE2, 0xC0, 0x00}, R: []byte{0x00, 0x00, 0xAB}},
			},
		},
	}
	ra, err := NewSPI(port, nil)
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	if err := writeRegister(ra, regReset, 0xFF); err != nil {
		t.Fatalf("writeRegister() failed: %v", err)
	}
	v, err := readRegister(ra, 0x38B)
	if err != nil {
		t.Fatalf("readRegister() failed: %v", err)
	}
	if v != 0xAB {
		t.Errorf("readRegister() = %#x, want 0xAB", v)
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSPIExplicitCS(t *testing.T) {
	cs := &gpiotest.Pin{N: "CS"}
	port := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// Write: header, then payload, in two transfers bracketed
				// by the chip-select line.
				{W: []byte{0xE2, 0xA0}},
				{W: []byte{0x12, 0x34}},
				// Read: header, then the payload is clocked in.
				{W: []byte{0xE2, 0x80}},
				{W: []byte{0x00, 0x00}, R: []byte{0xCD, 0xEF}},
			},
		},
	}
	ra, err := NewSPI(port, cs)
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	if cs.L != gpio.High {
		t.Error("chip-select must idle high")
	}
	if err := ra.WriteRegisters(0x38A, []byte{0x12, 0x34}); err != nil {
		t.Fatalf("WriteRegisters() failed: %v", err)
	}
	if cs.L != gpio.High {
		t.Error("chip-select left asserted after write")
	}
	got := make([]byte, 2)
	if err := ra.ReadRegisters(0x38A, got); err != nil {
		t.Fatalf("ReadRegisters() failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0xCD, 0xEF}) {
		t.Errorf("ReadRegisters() = %#x, want [0xCD 0xEF]", got)
	}
	if cs.L != gpio.High {
		t.Error("chip-select left asserted after read")
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSPIBufferOverrun(t *testing.T) {
	ra, err := NewSPI(&spitest.Playback{}, nil)
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	if err := ra.WriteRegisters(0x3FF, []byte{1, 2}); !errors.Is(err, ErrBufferOverrun) {
		t.Errorf("WriteRegisters() error = %v, want ErrBufferOverrun", err)
	}
	if err := ra.ReadRegisters(0x3FF, make([]byte, 2)); !errors.Is(err, ErrBufferOverrun) {
		t.Errorf("ReadRegisters() error = %v, want ErrBufferOverrun", err)
	}
}
