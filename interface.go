// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"errors"
)

// Errors returned by this package. Transport errors from the underlying bus
// are returned verbatim and are not retried; retry policy belongs to the
// caller.
var (
	// ErrBufferOverrun is returned when a write would exceed the chip's
	// addressable register space.
	ErrBufferOverrun = errors.New("lp586x: write exceeds addressable register space")

	// ErrSizeMismatch is returned when a Display is built from two
	// controllers of different sizes.
	ErrSizeMismatch = errors.New("lp586x: display controllers differ in size")

	// ErrOutOfRange is returned when a dot index or slice length addresses
	// dots beyond the device variant's capability.
	ErrOutOfRange = errors.New("lp586x: dot index out of range for device variant")
)

// RegisterAccess gives byte-level access to consecutive device registers,
// independent of the serial bus carrying the transfer.
//
// Implementations own their transport; a RegisterAccess must be used by at
// most one Dev at a time.
type RegisterAccess interface {
	// ReadRegisters reads len(data) consecutive registers starting at
	// start, one byte per register, into data in order.
	ReadRegisters(start uint16, data []byte) error
	// WriteRegisters writes data to consecutive registers starting at
	// start.
	WriteRegisters(start uint16, data []byte) error
}

// readRegister reads a single register.
func readRegister(ra RegisterAccess, reg uint16) (byte, error) {
	var buf [1]byte
	if err := ra.ReadRegisters(reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// writeRegister writes a single register.
func writeRegister(ra RegisterAccess, reg uint16, value byte) error {
	return ra.WriteRegisters(reg, []byte{value})
}

// readRegisterWide reads a 16 bit value from two consecutive registers,
// little-endian.
func readRegisterWide(ra RegisterAccess, reg uint16) (uint16, error) {
	var buf [2]byte
	if err := ra.ReadRegisters(reg, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}
