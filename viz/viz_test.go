// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package viz_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/openeeg/eegproc/preprocess"
	"github.com/openeeg/eegproc/recording"
	"github.com/openeeg/eegproc/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sineRecording(t *testing.T) *recording.Recording {
	t.Helper()
	rate := 250.0
	data := make([][]float64, 2500)
	for s := range data {
		tt := float64(s) / rate
		data[s] = []float64{
			math.Sin(2 * math.Pi * 10 * tt),
			math.Sin(2 * math.Pi * 22 * tt),
		}
	}
	rec, err := recording.New(data, []recording.ChannelDescriptor{
		{Name: "Cz", Type: recording.ChannelEEG},
		{Name: "Pz", Type: recording.ChannelEEG},
	}, nil, rate)
	require.NoError(t, err)
	return rec
}

func TestRenderTimeseriesContinuous(t *testing.T) {
	rec := sineRecording(t)

	var buf bytes.Buffer
	require.NoError(t, viz.RenderTimeseries(&buf, rec, "sub-01", "Original", 5))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderTimeseriesSegmented(t *testing.T) {
	rec := sineRecording(t)
	epochs, err := preprocess.CreateEpochs(rec, []float64{0, 2, 4}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, viz.RenderTimeseries(&buf, epochs, "sub-01", "Filtered", 0))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderPSD(t *testing.T) {
	rec := sineRecording(t)

	var buf bytes.Buffer
	require.NoError(t, viz.RenderPSD(&buf, rec, "sub-01", "Original"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderEmptyRecording(t *testing.T) {
	rec := &recording.Recording{Kind: recording.Continuous, SampleRate: 100}

	var buf bytes.Buffer
	require.ErrorIs(t, viz.RenderTimeseries(&buf, rec, "sub-01", "Original", 5), recording.ErrInsufficientData)
	require.ErrorIs(t, viz.RenderPSD(&buf, rec, "sub-01", "Original"), recording.ErrInsufficientData)
}
