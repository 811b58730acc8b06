// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lp586x controls a Texas Instruments LP586x LED-matrix driver via
// SPI or I²C. The LP5860, LP5861, LP5862, LP5864 and LP5868 variants are
// supported; they differ only in the number of time-multiplexed scan lines
// (11, 1, 2, 4 and 8 respectively), each driving 18 constant-current sinks.
//
// The driver exposes the chip's register protocol behind a small
// RegisterAccess interface with SPI and I²C bindings, per-dot PWM brightness
// in either 8 or 16 bit resolution, dot grouping for group-wide dimming, and
// per-dot LED open/short fault reporting.
//
// PWM access is gated on an explicit data-mode selection: a freshly created
// *Dev exposes no brightness operations until it is converted with
// To8BitMode or To16BitMode, matching the chip's data-refresh-mode
// configuration.
//
// The Display type composites two controllers of the same variant, stacked
// vertically, into a single grayscale display.Drawer with an external VSYNC
// line to latch frames, and TextScroller animates horizontally scrolling
// text on such a display without a frame buffer.
//
// The matrixscreen subpackage emulates the matrix on an ANSI terminal for
// development without hardware.
//
// # Datasheets
//
// https://www.ti.com/lit/ds/symlink/lp5864.pdf
//
// Register map:
//
// https://www.ti.com/lit/ug/snvu786/snvu786.pdf
package lp586x
