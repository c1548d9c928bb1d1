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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openeeg/eegproc/log"
	"github.com/openeeg/eegproc/recording"
	"go.uber.org/zap"
)

func kindForFilename(filename string) (recording.Kind, error) {
	switch {
	case strings.HasSuffix(filename, SuffixContinuous):
		return recording.Continuous, nil
	case strings.HasSuffix(filename, SuffixSegmented):
		return recording.Segmented, nil
	default:
		return "", fmt.Errorf("%s: expected %s or %s suffix: %w", filename, SuffixContinuous, SuffixSegmented, recording.ErrUnsupportedFormat)
	}
}

// LoadRecording loads a checkpoint file, dispatching on the filename
// suffix: "_raw.eeg" for continuous recordings, "_epo.eeg" for segmented
// ones. Any other suffix fails with ErrUnsupportedFormat. The recording is
// fully materialized in memory.
func LoadRecording(dir, filename string) (*recording.Recording, error) {
	kind, err := kindForFilename(filename)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rec, err := ReadCheckpoint(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if rec.Kind != kind {
		return nil, fmt.Errorf("%s holds a %q checkpoint: %w", path, rec.Kind, recording.ErrUnsupportedFormat)
	}

	log.L().Debug("loaded recording",
		zap.String("path", path),
		zap.String("kind", string(rec.Kind)),
		zap.Int("channels", len(rec.Channels)),
		zap.Int("samples", rec.Samples()))
	return rec, nil
}

// SaveRecording writes rec to dir/filename in the checkpoint format,
// creating intermediate directories as needed and overwriting any existing
// file. The filename suffix must match the recording's kind.
func SaveRecording(rec *recording.Recording, dir, filename string) error {
	kind, err := kindForFilename(filename)
	if err != nil {
		return err
	}
	if rec.Kind != kind {
		return fmt.Errorf("cannot save %q recording as %s: %w", rec.Kind, filename, recording.ErrUnsupportedFormat)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCheckpoint(f, rec); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	log.L().Debug("saved recording", zap.String("path", path))
	return nil
}
