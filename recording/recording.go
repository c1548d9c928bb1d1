// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package recording defines the in-memory representation of an EEG
// recording: a channels-by-samples matrix together with its sampling rate,
// channel metadata and electrode montage.
package recording

import (
	"fmt"
)

// Kind distinguishes continuous recordings from epoched ones.
type Kind string

const (
	// Continuous represents a single unbroken time axis.
	Continuous Kind = "raw"
	// Segmented represents a collection of fixed-length epochs cut from a
	// continuous recording.
	Segmented Kind = "epochs"
)

// ChannelType tags what a channel measures.
type ChannelType string

// ChannelEEG is the only channel type produced by the loaders.
const ChannelEEG ChannelType = "eeg"

// ChannelDescriptor identifies one channel of a recording. Identity is the
// name; the descriptor order must align with the data matrix's channel axis.
type ChannelDescriptor struct {
	Name string      // Channel name (e.g., Cz)
	Type ChannelType // What the channel measures (usually "eeg")
}

// Event marks the source-sample onset of one epoch.
type Event struct {
	Onset int    // Sample index in the source recording
	Label string // Event category
}

// Recording is a fully materialized EEG recording. Data is laid out
// channels x samples; for Segmented recordings the sample axis is the
// concatenation of the epochs, each EpochLength samples long. Channel count,
// channel order and sampling rate are fixed for the life of the container.
type Recording struct {
	Kind        Kind
	SampleRate  float64 // Samples per second
	Channels    []ChannelDescriptor
	Montage     *Montage // Optional electrode layout
	Data        [][]float64
	EpochLength int     // Samples per epoch, Segmented only
	Events      []Event // One per epoch, Segmented only
}

// New builds a Continuous recording from a samples-by-channels matrix, as
// produced by the table loader. The matrix is transposed internally to
// channels x samples. The descriptor count must equal the matrix's channel
// dimension, and every channel name must have a position in the montage.
func New(data [][]float64, channels []ChannelDescriptor, montage *Montage, sampleRate float64) (*Recording, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", sampleRate)
	}

	cols := 0
	if len(data) > 0 {
		cols = len(data[0])
	}
	for i, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), cols, ErrFormat)
		}
	}
	if len(channels) != cols {
		return nil, fmt.Errorf("%d channel descriptors for %d data columns: %w", len(channels), cols, ErrDimensionMismatch)
	}

	if montage != nil {
		for _, ch := range channels {
			if _, ok := montage.Positions[ch.Name]; !ok {
				return nil, fmt.Errorf("channel %q has no position in montage %q: %w", ch.Name, montage.Name, ErrLayoutMismatch)
			}
		}
	}

	transposed := make([][]float64, cols)
	for c := range transposed {
		transposed[c] = make([]float64, len(data))
		for s := range data {
			transposed[c][s] = data[s][c]
		}
	}

	return &Recording{
		Kind:       Continuous,
		SampleRate: sampleRate,
		Channels:   append([]ChannelDescriptor(nil), channels...),
		Montage:    montage,
		Data:       transposed,
	}, nil
}

// Samples reports the total length of the sample axis. For Segmented
// recordings this is EpochCount * EpochLength.
func (r *Recording) Samples() int {
	if len(r.Data) == 0 {
		return 0
	}
	return len(r.Data[0])
}

// Duration reports the recording's length in seconds.
func (r *Recording) Duration() float64 {
	return float64(r.Samples()) / r.SampleRate
}

// ChannelNames returns the channel names in data order.
func (r *Recording) ChannelNames() []string {
	names := make([]string, len(r.Channels))
	for i, ch := range r.Channels {
		names[i] = ch.Name
	}
	return names
}

// EpochCount reports the number of epochs in a Segmented recording, or 0
// for a Continuous one.
func (r *Recording) EpochCount() int {
	if r.Kind != Segmented || r.EpochLength == 0 {
		return 0
	}
	return r.Samples() / r.EpochLength
}

// Epoch returns the i'th epoch as a channels x EpochLength matrix. The
// returned slices alias the recording's data.
func (r *Recording) Epoch(i int) ([][]float64, error) {
	if r.Kind != Segmented {
		return nil, fmt.Errorf("recording is not segmented: %w", ErrUnsupportedFormat)
	}
	if i < 0 || i >= r.EpochCount() {
		return nil, fmt.Errorf("epoch %d of %d: %w", i, r.EpochCount(), ErrOutOfRange)
	}
	epoch := make([][]float64, len(r.Data))
	for c, row := range r.Data {
		epoch[c] = row[i*r.EpochLength : (i+1)*r.EpochLength]
	}
	return epoch, nil
}

// Clone returns an independent deep copy. Transformations operate on clones
// so callers may retain and compare pre/post states.
func (r *Recording) Clone() *Recording {
	data := make([][]float64, len(r.Data))
	for c, row := range r.Data {
		data[c] = append([]float64(nil), row...)
	}
	return &Recording{
		Kind:        r.Kind,
		SampleRate:  r.SampleRate,
		Channels:    append([]ChannelDescriptor(nil), r.Channels...),
		Montage:     r.Montage,
		Data:        data,
		EpochLength: r.EpochLength,
		Events:      append([]Event(nil), r.Events...),
	}
}

// Crop returns a Continuous copy restricted to the sample range [from, to).
func (r *Recording) Crop(from, to int) (*Recording, error) {
	if r.Kind != Continuous {
		return nil, fmt.Errorf("cannot crop a segmented recording: %w", ErrUnsupportedFormat)
	}
	if from < 0 || to > r.Samples() || from > to {
		return nil, fmt.Errorf("crop [%d, %d) of %d samples: %w", from, to, r.Samples(), ErrOutOfRange)
	}
	data := make([][]float64, len(r.Data))
	for c, row := range r.Data {
		data[c] = append([]float64(nil), row[from:to]...)
	}
	return &Recording{
		Kind:       Continuous,
		SampleRate: r.SampleRate,
		Channels:   append([]ChannelDescriptor(nil), r.Channels...),
		Montage:    r.Montage,
		Data:       data,
	}, nil
}
