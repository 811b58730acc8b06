// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// I2CRegisterAccess accesses LP586x registers over I²C.
//
// The chip's register space is 10 bits wide but the register pointer on the
// wire is a single byte, so the two topmost address bits are carried in the
// two lowest bits of the device address:
//
//	effective address = (base &^ 0b11) | address[9:8]
//	pointer byte      = address[7:0]
//
// This means one chip occupies four consecutive I²C addresses.
type I2CRegisterAccess struct {
	bus  i2c.Bus
	addr uint16
	w    []byte // scratch for pointer byte + payload
}

// NewI2C returns a RegisterAccess that communicates over the given bus.
//
// addr is the chip's base 7 bit address as set by the ADDR pins; its two
// lowest bits are overwritten per transfer (see type doc).
func NewI2C(b i2c.Bus, addr uint16) (*I2CRegisterAccess, error) {
	if addr > 0x7F {
		return nil, fmt.Errorf("lp586x: invalid I²C address %#x", addr)
	}
	return &I2CRegisterAccess{bus: b, addr: addr}, nil
}

func (i *I2CRegisterAccess) String() string {
	return fmt.Sprintf("lp586x.I2C{%s, %#x}", i.bus, i.addr)
}

func (i *I2CRegisterAccess) addressFor(register uint16) uint16 {
	return (i.addr &^ 0b11) | (register>>8)&0b11
}

// ReadRegisters implements RegisterAccess.
//
// The register pointer write and the payload read are issued as one
// combined transaction.
func (i *I2CRegisterAccess) ReadRegisters(start uint16, data []byte) error {
	if int(start)+len(data) > maxRegister+1 {
		return ErrBufferOverrun
	}
	return i.bus.Tx(i.addressFor(start), []byte{byte(start)}, data)
}

// WriteRegisters implements RegisterAccess.
//
// The register pointer byte and the payload are concatenated and sent as a
// single write.
func (i *I2CRegisterAccess) WriteRegisters(start uint16, data []byte) error {
	if int(start)+len(data) > maxRegister+1 {
		return ErrBufferOverrun
	}
	i.w = append(i.w[:0], byte(start))
	i.w = append(i.w, data...)
	return i.bus.Tx(i.addressFor(start), i.w, nil)
}

var _ RegisterAccess = &I2CRegisterAccess{}
