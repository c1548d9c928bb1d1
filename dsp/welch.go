// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/openeeg/eegproc/recording"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// DefaultSegmentLength is the Welch segment size used when the caller
// passes a non-positive one.
const DefaultSegmentLength = 256

// Welch estimates the one-sided power spectral density of x by averaging
// Hann-windowed periodograms with 50% overlap. It returns the frequency
// axis in Hz and the density in x²/Hz. Segments longer than the signal are
// shrunk to fit.
func Welch(x []float64, rate float64, segLen int) (freqs, psd []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("empty signal: %w", recording.ErrInsufficientData)
	}
	if segLen <= 0 {
		segLen = DefaultSegmentLength
	}
	if segLen > len(x) {
		segLen = len(x)
	}

	window := make([]float64, segLen)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(segLen)))
	}
	if segLen == 1 {
		window[0] = 1
	}
	windowPower := floats.Dot(window, window)

	nBins := segLen/2 + 1
	fft := fourier.NewFFT(segLen)
	psd = make([]float64, nBins)
	buf := make([]float64, segLen)
	coeffs := make([]complex128, nBins)

	step := segLen / 2
	if step == 0 {
		step = 1
	}
	segments := 0
	for start := 0; start+segLen <= len(x); start += step {
		copy(buf, x[start:start+segLen])
		floats.Mul(buf, window)
		fft.Coefficients(coeffs, buf)
		for i, c := range coeffs {
			psd[i] += cmplx.Abs(c) * cmplx.Abs(c)
		}
		segments++
	}

	scale := 1 / (rate * windowPower * float64(segments))
	for i := range psd {
		psd[i] *= scale
		// One-sided density: fold the negative frequencies in.
		if i > 0 && i < nBins-1 {
			psd[i] *= 2
		}
	}

	freqs = make([]float64, nBins)
	for i := range freqs {
		freqs[i] = float64(i) * rate / float64(segLen)
	}
	return freqs, psd, nil
}
