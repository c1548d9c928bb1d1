// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package recording

import "errors"

var (
	// ErrFormat indicates an input table that could not be parsed into a
	// rectangular numeric matrix.
	ErrFormat = errors.New("malformed table")
	// ErrUnsupportedFormat indicates a filename suffix or checkpoint kind
	// that the loaders do not recognize.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrUnknownLayout indicates a montage name missing from the catalog.
	ErrUnknownLayout = errors.New("unknown montage")
	// ErrDimensionMismatch indicates disagreement between the data matrix
	// and the channel metadata describing it.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrLayoutMismatch indicates a channel with no position in the
	// attached montage.
	ErrLayoutMismatch = errors.New("montage does not cover channel")
	// ErrFilter indicates filter parameters outside the valid range for
	// the recording's sampling rate.
	ErrFilter = errors.New("invalid filter parameters")
	// ErrOutOfRange indicates an epoch window extending past the end of
	// the recording.
	ErrOutOfRange = errors.New("epoch window out of range")
	// ErrInsufficientData indicates an operation with too few valid
	// samples to produce a result.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUnknownChannel indicates a channel name not present in the
	// recording.
	ErrUnknownChannel = errors.New("unknown channel")
)
