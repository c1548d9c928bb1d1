// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package recording_test

import (
	"testing"

	"github.com/openeeg/eegproc/recording"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannels(names ...string) []recording.ChannelDescriptor {
	channels := make([]recording.ChannelDescriptor, len(names))
	for i, name := range names {
		channels[i] = recording.ChannelDescriptor{Name: name, Type: recording.ChannelEEG}
	}
	return channels
}

func TestNew(t *testing.T) {
	montage, err := recording.BuildMontage("standard_1020")
	require.NoError(t, err)

	// Samples x channels, as the table loader produces it.
	data := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
	}

	rec, err := recording.New(data, testChannels("Cz", "Pz"), montage, 100)
	require.NoError(t, err)

	assert.Equal(t, recording.Continuous, rec.Kind)
	assert.Equal(t, 3, rec.Samples())
	assert.InDelta(t, 0.03, rec.Duration(), 1e-12)
	assert.Equal(t, []string{"Cz", "Pz"}, rec.ChannelNames())

	// Transposed to channels x samples.
	assert.Equal(t, []float64{1, 2, 3}, rec.Data[0])
	assert.Equal(t, []float64{10, 20, 30}, rec.Data[1])
}

func TestNewDimensionMismatch(t *testing.T) {
	data := [][]float64{
		{1, 10, 100},
		{2, 20, 200},
	}

	_, err := recording.New(data, testChannels("Cz", "Pz"), nil, 100)
	require.ErrorIs(t, err, recording.ErrDimensionMismatch)
}

func TestNewLayoutMismatch(t *testing.T) {
	montage, err := recording.BuildMontage("standard_1020")
	require.NoError(t, err)

	data := [][]float64{{1, 10}}

	_, err = recording.New(data, testChannels("Cz", "NotAnElectrode"), montage, 100)
	require.ErrorIs(t, err, recording.ErrLayoutMismatch)
}

func TestNewRaggedMatrix(t *testing.T) {
	data := [][]float64{
		{1, 10},
		{2},
	}

	_, err := recording.New(data, testChannels("Cz", "Pz"), nil, 100)
	require.ErrorIs(t, err, recording.ErrFormat)
}

func TestCloneIsIndependent(t *testing.T) {
	rec, err := recording.New([][]float64{{1, 10}, {2, 20}}, testChannels("Cz", "Pz"), nil, 100)
	require.NoError(t, err)

	clone := rec.Clone()
	clone.Data[0][0] = 42

	assert.Equal(t, 1.0, rec.Data[0][0])
	assert.Equal(t, 42.0, clone.Data[0][0])
}

func TestCrop(t *testing.T) {
	rec, err := recording.New([][]float64{{0}, {1}, {2}, {3}, {4}}, testChannels("Cz"), nil, 100)
	require.NoError(t, err)

	head, err := rec.Crop(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, head.Data[0])

	tail, err := rec.Crop(2, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, tail.Data[0])

	_, err = rec.Crop(0, 6)
	require.ErrorIs(t, err, recording.ErrOutOfRange)
}

func TestEpochAccess(t *testing.T) {
	rec := &recording.Recording{
		Kind:        recording.Segmented,
		SampleRate:  10,
		Channels:    testChannels("Cz"),
		Data:        [][]float64{{0, 1, 2, 3, 4, 5}},
		EpochLength: 3,
		Events: []recording.Event{
			{Onset: 0, Label: "start"},
			{Onset: 3, Label: "start"},
		},
	}

	require.Equal(t, 2, rec.EpochCount())

	first, err := rec.Epoch(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, first[0])

	second, err := rec.Epoch(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, second[0])

	_, err = rec.Epoch(2)
	require.ErrorIs(t, err, recording.ErrOutOfRange)
}
