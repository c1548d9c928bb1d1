// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dataio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/openeeg/eegproc/recording"
)

// Checkpoint layout: a fixed-width ASCII header (space-padded fields, in
// the order written below) followed by the sample payload as little-endian
// float64 values, one channel after another. Segmented checkpoints carry
// their epoch geometry and event records between header and payload.
const checkpointMagic = "EEGPROC1"

// Filename suffixes selecting the continuous and segmented variants.
const (
	SuffixContinuous = "_raw.eeg"
	SuffixSegmented  = "_epo.eeg"
)

func writeField(w *bufio.Writer, width int, format string, args ...interface{}) error {
	s := fmt.Sprintf(format, args...)
	if len(s) > width {
		return fmt.Errorf("field %q exceeds %d bytes", s, width)
	}
	_, err := w.WriteString(fmt.Sprintf("%-*s", width, s))
	return err
}

// WriteCheckpoint writes rec to w in the checkpoint format.
func WriteCheckpoint(w io.Writer, rec *recording.Recording) error {
	bw := bufio.NewWriter(w)

	montageName := ""
	if rec.Montage != nil {
		montageName = rec.Montage.Name
	}

	if err := writeField(bw, 8, "%s", checkpointMagic); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 8, "%s", rec.Kind); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 16, "%g", rec.SampleRate); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 16, "%s", montageName); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 8, "%d", len(rec.Channels)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 16, "%d", rec.Samples()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 8, "%d", rec.EpochLength); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeField(bw, 8, "%d", len(rec.Events)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, ch := range rec.Channels {
		if err := writeField(bw, 16, "%s", ch.Name); err != nil {
			return fmt.Errorf("writing channel %q: %w", ch.Name, err)
		}
		if err := writeField(bw, 8, "%s", ch.Type); err != nil {
			return fmt.Errorf("writing channel %q: %w", ch.Name, err)
		}
	}

	for i, ev := range rec.Events {
		if err := writeField(bw, 16, "%d", ev.Onset); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
		if err := writeField(bw, 16, "%s", ev.Label); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}

	for c, row := range rec.Data {
		if err := binary.Write(bw, binary.LittleEndian, row); err != nil {
			return fmt.Errorf("writing samples for channel %d: %w", c, err)
		}
	}

	return bw.Flush()
}

func readField(r io.Reader, width int) (string, error) {
	b := make([]byte, width)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readIntField(r io.Reader, width int) (int, error) {
	s, err := readField(r, width)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

// ReadCheckpoint reads a recording from r. Streams that do not start with
// the checkpoint magic fail with ErrUnsupportedFormat.
func ReadCheckpoint(r io.Reader) (*recording.Recording, error) {
	br := bufio.NewReader(r)

	magic, err := readField(br, 8)
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	if magic != checkpointMagic {
		return nil, fmt.Errorf("bad magic %q: %w", magic, recording.ErrUnsupportedFormat)
	}

	kindStr, err := readField(br, 8)
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	kind := recording.Kind(kindStr)
	if kind != recording.Continuous && kind != recording.Segmented {
		return nil, fmt.Errorf("checkpoint kind %q: %w", kindStr, recording.ErrUnsupportedFormat)
	}

	rateStr, err := readField(br, 16)
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing sample rate: %w", err)
	}

	montageName, err := readField(br, 16)
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	channelCount, err := readIntField(br, 8)
	if err != nil {
		return nil, fmt.Errorf("error parsing channel count: %w", err)
	}
	samples, err := readIntField(br, 16)
	if err != nil {
		return nil, fmt.Errorf("error parsing sample count: %w", err)
	}
	epochLength, err := readIntField(br, 8)
	if err != nil {
		return nil, fmt.Errorf("error parsing epoch length: %w", err)
	}
	eventCount, err := readIntField(br, 8)
	if err != nil {
		return nil, fmt.Errorf("error parsing event count: %w", err)
	}

	channels := make([]recording.ChannelDescriptor, channelCount)
	for i := range channels {
		name, err := readField(br, 16)
		if err != nil {
			return nil, fmt.Errorf("error reading channel headers: %w", err)
		}
		typ, err := readField(br, 8)
		if err != nil {
			return nil, fmt.Errorf("error reading channel headers: %w", err)
		}
		channels[i] = recording.ChannelDescriptor{Name: name, Type: recording.ChannelType(typ)}
	}

	events := make([]recording.Event, eventCount)
	for i := range events {
		onset, err := readIntField(br, 16)
		if err != nil {
			return nil, fmt.Errorf("error reading event records: %w", err)
		}
		label, err := readField(br, 16)
		if err != nil {
			return nil, fmt.Errorf("error reading event records: %w", err)
		}
		events[i] = recording.Event{Onset: onset, Label: label}
	}

	var montage *recording.Montage
	if montageName != "" {
		montage, err = recording.BuildMontage(montageName)
		if err != nil {
			return nil, fmt.Errorf("resolving checkpoint montage: %w", err)
		}
	}

	data := make([][]float64, channelCount)
	for c := range data {
		data[c] = make([]float64, samples)
		if err := binary.Read(br, binary.LittleEndian, data[c]); err != nil {
			return nil, fmt.Errorf("error reading samples for channel %d: %w", c, err)
		}
	}

	return &recording.Recording{
		Kind:        kind,
		SampleRate:  rate,
		Channels:    channels,
		Montage:     montage,
		Data:        data,
		EpochLength: epochLength,
		Events:      events,
	}, nil
}
