// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Every SPI transfer starts with a two byte header carrying the 10 bit
// register address and the transfer direction:
//
//	byte0 = address[9:2]
//	byte1 = address[1:0]<<6 | rw<<5     (rw: 1=write, 0=read)
func spiHeader(register uint16, write bool) [2]byte {
	h := [2]byte{byte(register >> 2), byte(register << 6)}
	if write {
		h[1] |= 1 << 5
	}
	return h
}

// SPIRegisterAccess accesses LP586x registers over SPI.
type SPIRegisterAccess struct {
	c  conn.Conn
	cs gpio.PinOut // nil when the port handles chip-select itself
	// Scratch buffers, so steady-state transfers do not allocate.
	w []byte
	r []byte
}

// NewSPI returns a RegisterAccess that communicates over SPI.
//
// The LP586x supports clocks up to 10MHz; the port is connected at 8MHz,
// mode 0.
//
// Pass nil for cs when the port asserts the chip-select line itself for the
// duration of a transaction (the common case). Pass a gpio.PinOut when
// chip-select is wired to a plain GPIO; the pin is then driven low around
// every register transfer and left high when idle.
func NewSPI(p spi.Port, cs gpio.PinOut) (*SPIRegisterAccess, error) {
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("lp586x: connecting SPI port: %w", err)
	}
	if cs != nil {
		if err := cs.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	return &SPIRegisterAccess{c: c, cs: cs}, nil
}

func (s *SPIRegisterAccess) String() string {
	return fmt.Sprintf("lp586x.SPI{%s}", s.c)
}

// ReadRegisters implements RegisterAccess.
func (s *SPIRegisterAccess) ReadRegisters(start uint16, data []byte) error {
	if int(start)+len(data) > maxRegister+1 {
		return ErrBufferOverrun
	}
	h := spiHeader(start, false)
	if s.cs != nil {
		if err := s.cs.Out(gpio.Low); err != nil {
			return err
		}
		if err := s.c.Tx(h[:], nil); err != nil {
			s.deassert()
			return err
		}
		// Clock the payload in while keeping MOSI idle.
		s.grow(len(data))
		if err := s.c.Tx(s.w[:len(data)], data); err != nil {
			s.deassert()
			return err
		}
		return s.cs.Out(gpio.High)
	}
	// Single full-duplex transaction: the first two received bytes are
	// clocked out while the header is still being sent and carry nothing.
	s.grow(len(data) + 2)
	w := s.w[:len(data)+2]
	r := s.r[:len(data)+2]
	copy(w, h[:])
	if err := s.c.Tx(w, r); err != nil {
		return err
	}
	copy(data, r[2:])
	return nil
}

// WriteRegisters implements RegisterAccess.
func (s *SPIRegisterAccess) WriteRegisters(start uint16, data []byte) error {
	if int(start)+len(data) > maxRegister+1 {
		return ErrBufferOverrun
	}
	h := spiHeader(start, true)
	if s.cs != nil {
		if err := s.cs.Out(gpio.Low); err != nil {
			return err
		}
		if err := s.c.Tx(h[:], nil); err != nil {
			s.deassert()
			return err
		}
		if err := s.c.Tx(data, nil); err != nil {
			s.deassert()
			return err
		}
		return s.cs.Out(gpio.High)
	}
	s.grow(len(data) + 2)
	w := s.w[:len(data)+2]
	copy(w, h[:])
	copy(w[2:], data)
	return s.c.Tx(w, nil)
}

// deassert releases the chip-select line after a failed transfer. The
// transfer error takes precedence over any pin error.
func (s *SPIRegisterAccess) deassert() {
	_ = s.cs.Out(gpio.High)
}

func (s *SPIRegisterAccess) grow(n int) {
	if len(s.w) < n {
		s.w = make([]byte, n)
		s.r = make([]byte, n)
	}
	for i := 0; i < n; i++ {
		s.w[i] = 0
	}
}

var _ RegisterAccess = &SPIRegisterAccess{}
