// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package dsp implements the signal engine behind the preprocessing
// helpers: IIR filtering, detrending, spectral estimation and gap
// interpolation, all operating on single-channel sample slices.
package dsp

import (
	"fmt"
	"math"

	"github.com/openeeg/eegproc/recording"
)

// notchQ sets the notch bandwidth (centerFreq/Q); 35 gives the narrow
// mains-hum band customary in EEG cleaning.
const notchQ = 35.0

// biquad is a second-order IIR section with a0 normalized to 1.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// apply runs the section over x in place, direct form II transposed.
func (f *biquad) apply(x []float64) {
	var z1, z2 float64
	for i, v := range x {
		out := f.b0*v + z1
		z1 = f.b1*v - f.a1*out + z2
		z2 = f.b2*v - f.a2*out
		x[i] = out
	}
}

// applyZeroPhase runs the section forward and then backward, cancelling the
// phase shift at the cost of squaring the magnitude response.
func (f *biquad) applyZeroPhase(x []float64) {
	f.apply(x)
	reverse(x)
	f.apply(x)
	reverse(x)
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func notchBiquad(freq, rate, q float64) *biquad {
	w := 2 * math.Pi * freq / rate
	alpha := math.Sin(w) / (2 * q)
	cosw := math.Cos(w)
	a0 := 1 + alpha
	return &biquad{
		b0: 1 / a0,
		b1: -2 * cosw / a0,
		b2: 1 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func lowpassBiquad(freq, rate float64) *biquad {
	w := 2 * math.Pi * freq / rate
	alpha := math.Sin(w) / math.Sqrt2
	cosw := math.Cos(w)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func highpassBiquad(freq, rate float64) *biquad {
	w := 2 * math.Pi * freq / rate
	alpha := math.Sin(w) / math.Sqrt2
	cosw := math.Cos(w)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

// Notch suppresses a narrow band around each target frequency, in place,
// with zero phase shift. Each frequency must lie strictly between 0 and the
// Nyquist frequency.
func Notch(x []float64, rate float64, freqs []float64) error {
	nyquist := rate / 2
	for _, f := range freqs {
		if f <= 0 || f >= nyquist {
			return fmt.Errorf("notch frequency %v Hz outside (0, %v): %w", f, nyquist, recording.ErrFilter)
		}
	}
	for _, f := range freqs {
		notchBiquad(f, rate, notchQ).applyZeroPhase(x)
	}
	return nil
}

// Bandpass attenuates content outside [low, high], in place, with zero
// phase shift. Requires 0 <= low < high <= rate/2. A low of 0 degenerates
// to a pure low-pass.
func Bandpass(x []float64, rate, low, high float64) error {
	nyquist := rate / 2
	if low < 0 || low >= high || high > nyquist {
		return fmt.Errorf("band [%v, %v] Hz with Nyquist %v: %w", low, high, nyquist, recording.ErrFilter)
	}
	if low > 0 {
		highpassBiquad(low, rate).applyZeroPhase(x)
	}
	if high < nyquist {
		lowpassBiquad(high, rate).applyZeroPhase(x)
	}
	return nil
}
