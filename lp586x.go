// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

import (
	"fmt"
	"time"
)

// Variant identifies the LP586x device on the bus. The variants differ only
// in their number of scan lines.
type Variant int

// Supported device variants.
const (
	LP5860 Variant = iota // 11 scan lines, 198 dots
	LP5861                // 1 scan line, 18 dots
	LP5862                // 2 scan lines, 36 dots
	LP5864                // 4 scan lines, 72 dots
	LP5868                // 8 scan lines, 144 dots
)

// numSinks is the number of current sinks per scan line, common to the
// whole family.
const numSinks = 18

func (v Variant) String() string {
	switch v {
	case LP5860:
		return "LP5860"
	case LP5861:
		return "LP5861"
	case LP5862:
		return "LP5862"
	case LP5864:
		return "LP5864"
	case LP5868:
		return "LP5868"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Set sets the Variant to a value represented by the string s. Set
// implements the flag.Value interface.
func (v *Variant) Set(s string) error {
	switch s {
	case "LP5860":
		*v = LP5860
	case "LP5861":
		*v = LP5861
	case "LP5862":
		*v = LP5862
	case "LP5864":
		*v = LP5864
	case "LP5868":
		*v = LP5868
	default:
		return fmt.Errorf("unknown variant %q: expected LP5860, LP5861, LP5862, LP5864 or LP5868", s)
	}
	return nil
}

// Lines returns the number of scan lines of this variant.
func (v Variant) Lines() int {
	switch v {
	case LP5861:
		return 1
	case LP5862:
		return 2
	case LP5864:
		return 4
	case LP5868:
		return 8
	default:
		return 11
	}
}

// Sinks returns the number of current sinks per scan line.
func (v Variant) Sinks() int {
	return numSinks
}

// Dots returns the total number of addressable LED dots.
func (v Variant) Dots() int {
	return v.Lines() * numSinks
}

// Dot addresses a single LED in the matrix. A Dot is only ever constructed
// in range for its variant.
type Dot struct {
	index int
}

// MakeDot validates index against the variant's dot space and returns the
// corresponding Dot.
func MakeDot(v Variant, index int) (Dot, error) {
	if index < 0 || index >= v.Dots() {
		return Dot{}, fmt.Errorf("%w: dot %d on %s", ErrOutOfRange, index, v)
	}
	return Dot{index: index}, nil
}

// Index returns the dot's offset in the flattened line×sink address space.
func (d Dot) Index() int {
	return d.index
}

// Line returns the dot's scan line.
func (d Dot) Line() int {
	return d.index / numSinks
}

// CurrentSink returns the dot's current sink channel within its line.
func (d Dot) CurrentSink() int {
	return d.index % numSinks
}

// DotGroup is the group a single dot is assigned to, packed as a 2 bit code
// in the dot-group-select registers. Unassigned dots do not follow any
// group-wide dimming.
type DotGroup uint8

// Valid DotGroup values.
const (
	GroupNone DotGroup = 0b00
	GroupDot0 DotGroup = 0b01
	GroupDot1 DotGroup = 0b10
	GroupDot2 DotGroup = 0b11
)

// Group selects one of the three group-wide dimming channels.
type Group int

// Valid Group values.
const (
	Group0 Group = iota
	Group1
	Group2
)

func (g Group) brightnessReg() uint16 {
	switch g {
	case Group1:
		return regGroup1Bright
	case Group2:
		return regGroup2Bright
	default:
		return regGroup0Bright
	}
}

func (g Group) currentReg() uint16 {
	switch g {
	case Group1:
		return regGroup1Current
	case Group2:
		return regGroup2Current
	default:
		return regGroup0Current
	}
}

// FaultState is a snapshot of the chip-wide fault register.
type FaultState struct {
	ledOpen  bool
	ledShort bool
}

// LEDOpen is true if any LED in the matrix is detected open.
//
// Open detection is only performed while the dot's PWM is at least 25 (8 bit
// modes) or 6400 (16 bit mode).
func (f FaultState) LEDOpen() bool {
	return f.ledOpen
}

// LEDShort is true if any LED in the matrix is detected shorted.
//
// Short detection is only performed while the dot's PWM is at least 25 (8
// bit modes) or 6400 (16 bit mode).
func (f FaultState) LEDShort() bool {
	return f.ledShort
}

// TChipEnable is the settle time after enabling the chip (t_chip_en).
// Callers must not issue register traffic for this long after ChipEnable;
// the driver does not block on their behalf.
const TChipEnable = 100 * time.Microsecond

// Dev is an open handle to an LP586x.
//
// A fresh Dev has no data mode selected and therefore exposes no PWM
// brightness operations; convert it with To8BitMode or To16BitMode once the
// matching data-refresh mode has been configured.
type Dev struct {
	ra      RegisterAccess
	variant Variant
}

// New returns a Dev wrapping ra, after resetting and enabling the chip.
//
// The chip needs TChipEnable to reach normal operation after New returns;
// register traffic issued earlier is undefined.
func New(ra RegisterAccess, variant Variant) (*Dev, error) {
	d := &Dev{ra: ra, variant: variant}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	if err := d.ChipEnable(true); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("lp586x.Dev{%s}", d.variant)
}

// Variant returns the device variant this Dev was created for.
func (d *Dev) Variant() Variant {
	return d.variant
}

// Lines returns the number of scan lines of the device.
func (d *Dev) Lines() int {
	return d.variant.Lines()
}

// Dots returns the total number of dots of the device.
func (d *Dev) Dots() int {
	return d.variant.Dots()
}

// Reset restores all registers to their default values.
func (d *Dev) Reset() error {
	return writeRegister(d.ra, regReset, resetKey)
}

// ChipEnable enables or disables the chip. See TChipEnable for the settle
// time after enabling.
func (d *Dev) ChipEnable(enable bool) error {
	var v byte
	if enable {
		v = bitChipEnable
	}
	return writeRegister(d.ra, regChipEnable, v)
}

// Configure writes the four device configuration registers.
//
// The configuration is not retained by the driver.
func (d *Dev) Configure(cfg *Config) error {
	v := cfg.registerValues(d.variant)
	return d.ra.WriteRegisters(regDevInitial, v[:])
}

// SetDotGroups assigns dots to dimming groups, starting at dot L0-CS0. At
// least one and at most Dots() assignments must be given; only the register
// bytes covering the supplied prefix are transmitted.
func (d *Dev) SetDotGroups(groups []DotGroup) error {
	if len(groups) == 0 || len(groups) > d.Dots() {
		return fmt.Errorf("%w: %d dot group assignments on %s", ErrOutOfRange, len(groups), d.variant)
	}
	// 2 bits per dot, 4 dots per byte, 5 bytes per line of 18 sinks.
	var buf [5 * 11]byte
	for i, g := range groups {
		line, sink := i/numSinks, i%numSinks
		buf[line*5+sink/4] |= byte(g&0b11) << (uint(sink%4) * 2)
	}
	last := (len(groups)-1)/numSinks*5 + (len(groups)-1)%numSinks/4
	return d.ra.WriteRegisters(regDotGroupBase, buf[:last+1])
}

// SetDotsOn switches individual dots on or off, starting at dot L0-CS0.
// Dots are on after reset. Only the register bytes covering the supplied
// prefix are transmitted.
func (d *Dev) SetDotsOn(on []bool) error {
	if len(on) == 0 || len(on) > d.Dots() {
		return fmt.Errorf("%w: %d dot on/off values on %s", ErrOutOfRange, len(on), d.variant)
	}
	var buf [3 * 11]byte
	for i, v := range on {
		if v {
			line, sink := i/numSinks, i%numSinks
			buf[line*3+sink/8] |= 1 << uint(sink%8)
		}
	}
	last := (len(on)-1)/numSinks*3 + (len(on)-1)%numSinks/8
	return d.ra.WriteRegisters(regDotOnOffBase, buf[:last+1])
}

// SetDotCurrent sets the per-dot current scale of len(current) dots,
// starting from dot start.
func (d *Dev) SetDotCurrent(start int, current []byte) error {
	if start < 0 || len(current) == 0 || start+len(current) > d.Dots() {
		return fmt.Errorf("%w: %d dot currents at %d on %s", ErrOutOfRange, len(current), start, d.variant)
	}
	return d.ra.WriteRegisters(regDotCurrentBase+uint16(start), current)
}

// SetGlobalBrightness scales the brightness of all dots.
func (d *Dev) SetGlobalBrightness(brightness uint8) error {
	return writeRegister(d.ra, regMasterBright, brightness)
}

// SetGroupBrightness scales the brightness of all dots assigned to group.
//
// Dots are not assigned to any group by default; see SetDotGroups.
func (d *Dev) SetGroupBrightness(group Group, brightness uint8) error {
	return writeRegister(d.ra, group.brightnessReg(), brightness)
}

// SetGroupCurrent sets the current scale (0..127) of all dots assigned to
// group. Larger values are clamped to 127.
func (d *Dev) SetGroupCurrent(group Group, current uint8) error {
	if current > 0x7F {
		current = 0x7F
	}
	return writeRegister(d.ra, group.currentReg(), current)
}

// FaultState reads the chip-wide open/short fault summary.
func (d *Dev) FaultState() (FaultState, error) {
	v, err := readRegister(d.ra, regFaultState)
	if err != nil {
		return FaultState{}, err
	}
	return FaultState{
		ledOpen:  v&bitGlobalLOD != 0,
		ledShort: v&bitGlobalLSD != 0,
	}, nil
}

// LEDOpenStates reads the per-dot LED-open fault bitmap. The returned slice
// holds one entry per dot, indexed like Dot.Index.
func (d *Dev) LEDOpenStates() ([]bool, error) {
	return d.faultStates(regDotLODBase)
}

// LEDShortStates reads the per-dot LED-short fault bitmap. The returned
// slice holds one entry per dot, indexed like Dot.Index.
func (d *Dev) LEDShortStates() ([]bool, error) {
	return d.faultStates(regDotLSDBase)
}

// faultStates decodes one of the two per-dot fault bitmaps: 1 bit per dot,
// 3 bytes per scan line, the top 6 bits of every third byte unused.
func (d *Dev) faultStates(base uint16) ([]bool, error) {
	buf := make([]byte, d.Lines()*3)
	if err := d.ra.ReadRegisters(base, buf); err != nil {
		return nil, err
	}
	dots := make([]bool, d.Dots())
	for i := range dots {
		line, sink := i/numSinks, i%numSinks
		dots[i] = buf[line*3+sink/8]&(1<<uint(sink%8)) != 0
	}
	return dots, nil
}

// ClearLEDOpenFault clears all per-dot LED-open indication bits.
func (d *Dev) ClearLEDOpenFault() error {
	return writeRegister(d.ra, regLODClear, faultClearKey)
}

// ClearLEDShortFault clears all per-dot LED-short indication bits.
func (d *Dev) ClearLEDShortFault() error {
	return writeRegister(d.ra, regLSDClear, faultClearKey)
}

// Release returns the underlying register access. The Dev must not be used
// afterwards.
func (d *Dev) Release() RegisterAccess {
	ra := d.ra
	d.ra = nil
	return ra
}
