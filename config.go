// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

// PWMFrequency selects the output PWM frequency.
type PWMFrequency uint8

// Valid PWMFrequency values.
const (
	PWM125kHz  PWMFrequency = 0
	PWM62_5kHz PWMFrequency = 1
)

// DataRefMode selects the data refresh mode.
type DataRefMode uint8

// Valid DataRefMode values.
const (
	// Mode1 is 8 bit PWM, updated instantly, no external VSYNC.
	Mode1 DataRefMode = 0
	// Mode2 is 8 bit PWM, updated by frame on external VSYNC.
	Mode2 DataRefMode = 1
	// Mode3 is 16 bit PWM, updated by frame on external VSYNC.
	Mode3 DataRefMode = 2
)

// LineBlankingTime selects the blanking time between line switches.
type LineBlankingTime uint8

// Valid LineBlankingTime values.
const (
	Blank1us   LineBlankingTime = 0
	Blank0_5us LineBlankingTime = 1
)

// ScaleMode selects the dimming curve of the final PWM generator.
type ScaleMode uint8

// Valid ScaleMode values.
const (
	ScaleLinear      ScaleMode = 0
	ScaleExponential ScaleMode = 1
)

// DownDeghost selects the downside deghosting level.
type DownDeghost uint8

// Valid DownDeghost values.
const (
	DeghostNone   DownDeghost = 0
	DeghostWeak   DownDeghost = 1
	DeghostMedium DownDeghost = 2
	DeghostStrong DownDeghost = 3
)

// UpDeghost selects the scan line clamp voltage of upside deghosting.
type UpDeghost uint8

// Valid UpDeghost values.
const (
	VledMinus2V   UpDeghost = 0
	VledMinus2_5V UpDeghost = 1
	VledMinus3V   UpDeghost = 2
	VledGnd       UpDeghost = 3
)

// CurrentSetting selects the maximum current sink current.
type CurrentSetting uint8

// Valid CurrentSetting values.
const (
	Max3mA  CurrentSetting = 0
	Max5mA  CurrentSetting = 1
	Max10mA CurrentSetting = 2
	Max15mA CurrentSetting = 3
	Max20mA CurrentSetting = 4
	Max30mA CurrentSetting = 5
	Max40mA CurrentSetting = 6
	Max50mA CurrentSetting = 7
)

// DefaultConfig matches the chip's register defaults, except for MaxCurrent
// which is lowered to the safest setting.
var DefaultConfig = Config{
	DataRefMode:  Mode1,
	PWMFrequency: PWM125kHz,
	MaxCurrent:   Max3mA,
}

// Config is the value object written to the four consecutive device
// configuration registers (Dev_initial, Dev_config1..3). Field placement
// follows the register map in SNVU786.
//
// The zero value is a usable configuration for data refresh mode 1.
type Config struct {
	// MaxLines limits scanning to the first MaxLines scan lines. 0 means
	// all lines of the device variant.
	MaxLines int
	// DataRefMode selects PWM width and frame latching; it must agree with
	// the data mode the driver is converted to (To8BitMode for Mode1 and
	// Mode2, To16BitMode for Mode3).
	DataRefMode DataRefMode
	// PWMFrequency of the current sink outputs.
	PWMFrequency PWMFrequency

	// LineBlanking is the dead time between scan line switches.
	LineBlanking LineBlankingTime
	// ScaleMode is the dimming curve.
	ScaleMode ScaleMode
	// PWMPhaseShift staggers the sink phases to reduce peak current.
	PWMPhaseShift bool
	// CSTurnOnDelay delays sink turn-on to reduce ghosting.
	CSTurnOnDelay bool

	// CompGroup1..3 set the low-brightness compensation clamp (0..3) per
	// group.
	CompGroup1 uint8
	CompGroup2 uint8
	CompGroup3 uint8

	// DownDeghost and UpDeghost configure ghost suppression.
	DownDeghost DownDeghost
	UpDeghost   UpDeghost
	// MaxCurrent is the full-scale sink current.
	MaxCurrent CurrentSetting
	// LEDOpenRemoval removes dots detected open from scanning.
	LEDOpenRemoval bool
}

// registerValues encodes the configuration into the byte values of
// Dev_initial, Dev_config1, Dev_config2 and Dev_config3, in register order.
func (c *Config) registerValues(v Variant) [4]byte {
	lines := c.MaxLines
	if lines <= 0 || lines > v.Lines() {
		lines = v.Lines()
	}
	devInitial := byte(lines-1)<<3 | byte(c.DataRefMode&0b11)<<1 | byte(c.PWMFrequency&0b1)

	devConfig1 := byte(c.LineBlanking&0b1) << 4
	devConfig1 |= byte(c.ScaleMode&0b1) << 3
	if c.PWMPhaseShift {
		devConfig1 |= 1 << 2
	}
	if c.CSTurnOnDelay {
		devConfig1 |= 1 << 1
	}

	devConfig2 := byte(c.CompGroup3&0b11)<<4 | byte(c.CompGroup2&0b11)<<2 | byte(c.CompGroup1&0b11)

	devConfig3 := byte(c.DownDeghost&0b11) << 6
	devConfig3 |= byte(c.UpDeghost&0b11) << 4
	devConfig3 |= byte(c.MaxCurrent&0b111) << 1
	if c.LEDOpenRemoval {
		devConfig3 |= 1
	}

	return [4]byte{devInitial, devConfig1, devConfig2, devConfig3}
}
