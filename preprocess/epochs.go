// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package preprocess

import (
	"fmt"
	"math"

	"github.com/openeeg/eegproc/log"
	"github.com/openeeg/eegproc/recording"
	"go.uber.org/zap"
)

// EpochLabel tags every window cut by CreateEpochs.
const EpochLabel = "start"

// CreateEpochs segments a continuous recording into fixed-length windows,
// one per start time (in seconds). Each window spans
// round(duration*rate) samples beginning at the start time, so windows cut
// at multiples of the duration never share a boundary sample. A window
// extending past the end of the recording fails with ErrOutOfRange.
func CreateEpochs(rec *recording.Recording, startTimes []float64, duration float64) (*recording.Recording, error) {
	if rec.Kind != recording.Continuous {
		return nil, fmt.Errorf("cannot epoch a segmented recording: %w", recording.ErrUnsupportedFormat)
	}

	windowLen := int(math.Round(duration * rec.SampleRate))
	if windowLen <= 0 {
		return nil, fmt.Errorf("duration %v s at %v Hz yields an empty window: %w", duration, rec.SampleRate, recording.ErrOutOfRange)
	}

	events := make([]recording.Event, len(startTimes))
	for i, t := range startTimes {
		onset := int(t * rec.SampleRate)
		if onset < 0 || onset+windowLen > rec.Samples() {
			return nil, fmt.Errorf("window [%v s, %v s) spans samples [%d, %d) of %d: %w",
				t, t+duration, onset, onset+windowLen, rec.Samples(), recording.ErrOutOfRange)
		}
		events[i] = recording.Event{Onset: onset, Label: EpochLabel}
	}

	data := make([][]float64, len(rec.Data))
	for c, row := range rec.Data {
		data[c] = make([]float64, 0, len(events)*windowLen)
		for _, ev := range events {
			data[c] = append(data[c], row[ev.Onset:ev.Onset+windowLen]...)
		}
	}

	log.L().Debug("created epochs",
		zap.Int("count", len(events)),
		zap.Int("samples", windowLen))
	return &recording.Recording{
		Kind:        recording.Segmented,
		SampleRate:  rec.SampleRate,
		Channels:    append([]recording.ChannelDescriptor(nil), rec.Channels...),
		Montage:     rec.Montage,
		Data:        data,
		EpochLength: windowLen,
		Events:      events,
	}, nil
}

// RealignFinalSession repairs a ragged session list by splitting the last
// session at its halfway sample: the last entry is replaced with the first
// half and the second half is appended as a new final session. The input
// slice is not modified. A final session shorter than 2 samples cannot be
// split and fails with ErrInsufficientData.
func RealignFinalSession(sessions []*recording.Recording) ([]*recording.Recording, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions to realign: %w", recording.ErrInsufficientData)
	}

	last := sessions[len(sessions)-1]
	n := last.Samples()
	if n < 2 {
		return nil, fmt.Errorf("final session has %d samples, cannot split: %w", n, recording.ErrInsufficientData)
	}

	mid := n / 2
	firstHalf, err := last.Crop(0, mid)
	if err != nil {
		return nil, fmt.Errorf("splitting final session: %w", err)
	}
	secondHalf, err := last.Crop(mid, n)
	if err != nil {
		return nil, fmt.Errorf("splitting final session: %w", err)
	}

	out := make([]*recording.Recording, 0, len(sessions)+1)
	out = append(out, sessions[:len(sessions)-1]...)
	out = append(out, firstHalf, secondHalf)

	log.L().Debug("realigned final session",
		zap.Int("samples", n),
		zap.Int("midpoint", mid))
	return out, nil
}
