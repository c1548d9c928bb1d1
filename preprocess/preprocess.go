// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package preprocess provides the standard EEG cleaning transforms:
// filtering, re-referencing, detrending, epoching and gap repair. Every
// transform returns a new recording and leaves its input untouched.
package preprocess

import (
	"fmt"

	"github.com/openeeg/eegproc/dsp"
	"github.com/openeeg/eegproc/log"
	"github.com/openeeg/eegproc/recording"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// segments returns the contiguous sample runs a channel transform may
// legally operate on: the whole channel for a continuous recording, each
// epoch separately for a segmented one.
func segments(rec *recording.Recording, channel int) [][]float64 {
	row := rec.Data[channel]
	if rec.Kind != recording.Segmented || rec.EpochLength == 0 {
		return [][]float64{row}
	}
	segs := make([][]float64, 0, rec.EpochCount())
	for i := 0; i < rec.EpochCount(); i++ {
		segs = append(segs, row[i*rec.EpochLength:(i+1)*rec.EpochLength])
	}
	return segs
}

// NotchFilter suppresses narrow bands centered at each target frequency,
// typically for mains-hum removal.
func NotchFilter(rec *recording.Recording, freqs []float64) (*recording.Recording, error) {
	out := rec.Clone()
	for c := range out.Data {
		for _, seg := range segments(out, c) {
			if err := dsp.Notch(seg, out.SampleRate, freqs); err != nil {
				return nil, fmt.Errorf("notch filter on channel %q: %w", out.Channels[c].Name, err)
			}
		}
	}
	log.L().Debug("applied notch filter", zap.Float64s("freqs", freqs))
	return out, nil
}

// BandpassFilter attenuates content outside [low, high] Hz. Requires
// 0 <= low < high <= Nyquist.
func BandpassFilter(rec *recording.Recording, low, high float64) (*recording.Recording, error) {
	out := rec.Clone()
	for c := range out.Data {
		for _, seg := range segments(out, c) {
			if err := dsp.Bandpass(seg, out.SampleRate, low, high); err != nil {
				return nil, fmt.Errorf("bandpass filter on channel %q: %w", out.Channels[c].Name, err)
			}
		}
	}
	log.L().Debug("applied bandpass filter", zap.Float64("low", low), zap.Float64("high", high))
	return out, nil
}

// ReReference recomputes every channel against a new baseline. With no
// reference, or "average", the cross-channel mean is subtracted from every
// channel at every sample; otherwise the arguments name the channels whose
// mean becomes the reference.
func ReReference(rec *recording.Recording, reference ...string) (*recording.Recording, error) {
	out := rec.Clone()
	if out.Samples() == 0 || len(out.Data) == 0 {
		return out, nil
	}

	var refChannels []int
	if len(reference) == 0 || (len(reference) == 1 && reference[0] == "average") {
		for c := range out.Data {
			refChannels = append(refChannels, c)
		}
	} else {
		byName := make(map[string]int, len(out.Channels))
		for i, ch := range out.Channels {
			byName[ch.Name] = i
		}
		for _, name := range reference {
			c, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("reference channel %q: %w", name, recording.ErrUnknownChannel)
			}
			refChannels = append(refChannels, c)
		}
	}

	ref := make([]float64, out.Samples())
	for _, c := range refChannels {
		floats.Add(ref, rec.Data[c])
	}
	floats.Scale(1/float64(len(refChannels)), ref)

	for _, row := range out.Data {
		floats.Sub(row, ref)
	}

	log.L().Debug("re-referenced recording", zap.Strings("reference", reference))
	return out, nil
}

// SignalDetrend removes the least-squares linear trend from every channel
// tagged "eeg", independently per channel (and per epoch for segmented
// recordings).
func SignalDetrend(rec *recording.Recording) (*recording.Recording, error) {
	out := rec.Clone()
	for c := range out.Data {
		if out.Channels[c].Type != recording.ChannelEEG {
			continue
		}
		for _, seg := range segments(out, c) {
			dsp.Detrend(seg)
		}
	}
	return out, nil
}

// InterpolateNaNs returns a copy of the channels-by-samples matrix with
// every NaN replaced by the linear interpolation between its nearest valid
// neighbors, per channel. A channel with no valid samples fails with
// ErrInsufficientData.
func InterpolateNaNs(data [][]float64) ([][]float64, error) {
	out := make([][]float64, len(data))
	for c, row := range data {
		out[c] = append([]float64(nil), row...)
		if err := dsp.InterpolateNaNs(out[c]); err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}
	return out, nil
}
