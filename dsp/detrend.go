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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Detrend removes the least-squares straight line from x in place.
func Detrend(x []float64) {
	if len(x) < 2 {
		// A single sample carries no trend beyond its own value.
		for i := range x {
			x[i] = 0
		}
		return
	}

	idx := make([]float64, len(x))
	floats.Span(idx, 0, float64(len(x)-1))

	alpha, beta := stat.LinearRegression(idx, x, nil, false)
	for i := range x {
		x[i] -= alpha + beta*idx[i]
	}
}
