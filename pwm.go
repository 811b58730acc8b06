// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"
)

// Dev8 is a Dev locked to 8 bit PWM data (data refresh modes 1 and 2). It
// is the only way to reach the 8 bit brightness operations.
type Dev8 struct {
	*Dev
}

// Dev16 is a Dev locked to 16 bit PWM data (data refresh mode 3). It is the
// only way to reach the 16 bit brightness operations.
type Dev16 struct {
	*Dev
}

// To8BitMode converts the driver to 8 bit PWM access. The chip must be
// configured for data refresh mode 1 or 2 (see Config.DataRefMode).
//
// The conversion is one-way; the original Dev must not be converted again.
func (d *Dev) To8BitMode() *Dev8 {
	return &Dev8{Dev: d}
}

// To16BitMode converts the driver to 16 bit PWM access. The chip must be
// configured for data refresh mode 3 (see Config.DataRefMode).
//
// The conversion is one-way; the original Dev must not be converted again.
func (d *Dev) To16BitMode() *Dev16 {
	return &Dev16{Dev: d}
}

// SetPWM sets the brightness of len(values) dots, starting from dot start,
// in a single multi-register write.
func (d *Dev8) SetPWM(start int, values []byte) error {
	if start < 0 || start+len(values) > d.Dots() {
		return fmt.Errorf("%w: %d PWM values at %d on %s", ErrOutOfRange, len(values), start, d.variant)
	}
	return d.ra.WriteRegisters(regPWMBrightBase+uint16(start), values)
}

// GetPWM returns the brightness of a single dot.
func (d *Dev8) GetPWM(dot int) (uint8, error) {
	if dot < 0 || dot >= d.Dots() {
		return 0, fmt.Errorf("%w: dot %d on %s", ErrOutOfRange, dot, d.variant)
	}
	return readRegister(d.ra, regPWMBrightBase+uint16(dot))
}

// SetPWM sets the brightness of len(values) dots, starting from dot start.
// Every value occupies two consecutive registers, little-endian; the whole
// run is sent as a single multi-register write.
func (d *Dev16) SetPWM(start int, values []uint16) error {
	if start < 0 || start+len(values) > d.Dots() {
		return fmt.Errorf("%w: %d PWM values at %d on %s", ErrOutOfRange, len(values), start, d.variant)
	}
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		buf[2*i] = byte(v)
		buf[2*i+1] = byte(v >> 8)
	}
	return d.ra.WriteRegisters(regPWMBrightBase+uint16(2*start), buf)
}

// GetPWM returns the brightness of a single dot.
func (d *Dev16) GetPWM(dot int) (uint16, error) {
	if dot < 0 || dot >= d.Dots() {
		return 0, fmt.Errorf("%w: dot %d on %s", ErrOutOfRange, dot, d.variant)
	}
	return readRegisterWide(d.ra, regPWMBrightBase+uint16(2*dot))
}
