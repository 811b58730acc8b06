// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lp586x

// Register map of the LP586x family, from TI SNVU786. Registers are 8 bit
// wide with a 10 bit address space, so a full address does not fit the
// single pointer byte of the serial protocols; see spi.go and i2c.go for how
// the upper address bits travel.
const (
	regChipEnable     uint16 = 0x000
	regDevInitial     uint16 = 0x001
	regDevConfig1     uint16 = 0x002
	regDevConfig2     uint16 = 0x003
	regDevConfig3     uint16 = 0x004
	regMasterBright   uint16 = 0x005
	regGroup0Bright   uint16 = 0x006
	regGroup1Bright   uint16 = 0x007
	regGroup2Bright   uint16 = 0x008
	regGroup0Current  uint16 = 0x009
	regGroup1Current  uint16 = 0x00A
	regGroup2Current  uint16 = 0x00B
	regDotGroupBase   uint16 = 0x00C // ..0x042, 2 bits per dot, 5 bytes per line
	regDotOnOffBase   uint16 = 0x043 // ..0x063, 1 bit per dot, 3 bytes per line
	regFaultState     uint16 = 0x064
	regDotLODBase     uint16 = 0x065 // ..0x085, 1 bit per dot, 3 bytes per line
	regDotLSDBase     uint16 = 0x086 // ..0x0A6, 1 bit per dot, 3 bytes per line
	regLODClear       uint16 = 0x0A7
	regLSDClear       uint16 = 0x0A8
	regReset          uint16 = 0x0A9
	regDotCurrentBase uint16 = 0x100 // ..0x1C5, 1 byte per dot
	regPWMBrightBase  uint16 = 0x200 // ..0x38B, 1 or 2 bytes per dot
)

const (
	// regChipEnable
	bitChipEnable = 0x01

	// regFaultState
	bitGlobalLOD = 0x01
	bitGlobalLSD = 0x02

	// Writing resetKey to regReset restores all registers to their default
	// values.
	resetKey = 0xFF

	// Writing faultClearKey to regLODClear or regLSDClear clears the
	// corresponding per-dot fault bitmap.
	faultClearKey = 0x0F
)

// maxRegister is the last addressable register. The 10 bit address space
// bounds every multi-register transfer.
const maxRegister = 0x3FF
