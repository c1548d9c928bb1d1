// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dataio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/openeeg/eegproc/dataio"
	"github.com/openeeg/eegproc/recording"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func continuousFixture(t *testing.T) *recording.Recording {
	t.Helper()
	montage, err := recording.BuildMontage("standard_1020")
	require.NoError(t, err)

	rec, err := recording.New(
		[][]float64{
			{1.25, -10.5},
			{2.5, -20.25},
			{3.75, -30.125},
			{5.0, -40.0},
		},
		[]recording.ChannelDescriptor{
			{Name: "Cz", Type: recording.ChannelEEG},
			{Name: "Pz", Type: recording.ChannelEEG},
		},
		montage, 250,
	)
	require.NoError(t, err)
	return rec
}

func TestCheckpointRoundTrip(t *testing.T) {
	rec := continuousFixture(t)

	var buf bytes.Buffer
	require.NoError(t, dataio.WriteCheckpoint(&buf, rec))

	got, err := dataio.ReadCheckpoint(&buf)
	require.NoError(t, err)

	assert.Equal(t, rec.Kind, got.Kind)
	assert.Equal(t, rec.SampleRate, got.SampleRate)
	assert.Equal(t, rec.Channels, got.Channels)
	assert.Equal(t, rec.Data, got.Data)
	require.NotNil(t, got.Montage)
	assert.Equal(t, "standard_1020", got.Montage.Name)
}

func TestCheckpointRoundTripSegmented(t *testing.T) {
	rec := &recording.Recording{
		Kind:        recording.Segmented,
		SampleRate:  100,
		Channels:    []recording.ChannelDescriptor{{Name: "Cz", Type: recording.ChannelEEG}},
		Data:        [][]float64{{0, 1, 2, 3, 4, 5}},
		EpochLength: 3,
		Events: []recording.Event{
			{Onset: 0, Label: "start"},
			{Onset: 100, Label: "start"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, dataio.WriteCheckpoint(&buf, rec))

	got, err := dataio.ReadCheckpoint(&buf)
	require.NoError(t, err)

	assert.Equal(t, recording.Segmented, got.Kind)
	assert.Equal(t, 3, got.EpochLength)
	assert.Equal(t, rec.Events, got.Events)
	assert.Equal(t, rec.Data, got.Data)
	assert.Equal(t, 2, got.EpochCount())
}

func TestReadCheckpointBadMagic(t *testing.T) {
	_, err := dataio.ReadCheckpoint(bytes.NewReader(bytes.Repeat([]byte{'x'}, 256)))
	require.ErrorIs(t, err, recording.ErrUnsupportedFormat)
}

func TestSaveAndLoadRecording(t *testing.T) {
	rec := continuousFixture(t)

	// Intermediate directories are created as needed.
	dir := filepath.Join(t.TempDir(), "derivatives", "sub-01")
	require.NoError(t, dataio.SaveRecording(rec, dir, "sub-01_raw.eeg"))

	got, err := dataio.LoadRecording(dir, "sub-01_raw.eeg")
	require.NoError(t, err)
	assert.Equal(t, rec.Data, got.Data)
	assert.Equal(t, rec.Channels, got.Channels)

	// Saving again overwrites without complaint.
	require.NoError(t, dataio.SaveRecording(rec, dir, "sub-01_raw.eeg"))
}

func TestLoadRecordingBadSuffix(t *testing.T) {
	_, err := dataio.LoadRecording(t.TempDir(), "sub-01.edf")
	require.ErrorIs(t, err, recording.ErrUnsupportedFormat)
}

func TestSaveRecordingSuffixKindMismatch(t *testing.T) {
	rec := continuousFixture(t)

	err := dataio.SaveRecording(rec, t.TempDir(), "sub-01_epo.eeg")
	require.ErrorIs(t, err, recording.ErrUnsupportedFormat)
}

func TestLoadRecordingSuffixKindMismatch(t *testing.T) {
	rec := continuousFixture(t)

	dir := t.TempDir()
	require.NoError(t, dataio.SaveRecording(rec, dir, "sub-01_raw.eeg"))

	// Rename the file so the suffix lies about the contents.
	require.NoError(t, os.Rename(
		filepath.Join(dir, "sub-01_raw.eeg"),
		filepath.Join(dir, "sub-01_epo.eeg")))

	_, err := dataio.LoadRecording(dir, "sub-01_epo.eeg")
	require.ErrorIs(t, err, recording.ErrUnsupportedFormat)
}
