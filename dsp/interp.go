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

	"github.com/openeeg/eegproc/recording"
)

// InterpolateNaNs replaces every NaN in x, in place, with the linear
// interpolation between its nearest valid neighbors by sample index.
// Leading and trailing gaps are held constant at the nearest valid sample;
// no extrapolation is performed. A slice with no valid samples fails with
// ErrInsufficientData.
func InterpolateNaNs(x []float64) error {
	first, last := -1, -1
	for i, v := range x {
		if !math.IsNaN(v) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return fmt.Errorf("no valid samples to interpolate from: %w", recording.ErrInsufficientData)
	}

	for i := 0; i < first; i++ {
		x[i] = x[first]
	}
	for i := last + 1; i < len(x); i++ {
		x[i] = x[last]
	}

	prev := first
	for i := first + 1; i <= last; i++ {
		if math.IsNaN(x[i]) {
			continue
		}
		if i > prev+1 {
			step := (x[i] - x[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				x[j] = x[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	return nil
}
