// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package dataio loads tabular sensor files into numeric matrices and
// persists recordings in the library's checkpoint format.
package dataio

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openeeg/eegproc/log"
	"github.com/openeeg/eegproc/recording"
	"go.uber.org/zap"
)

// LoadTable reads a headerless whitespace/tab-delimited text file into a
// rows-by-columns matrix. Every cell is coerced to a float64; non-numeric
// cells become NaN. Column positions listed in dropColumns are removed.
// Orientation of the result is the caller's to interpret.
func LoadTable(dir, filename string, dropColumns ...int) ([][]float64, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	drop := make(map[int]bool, len(dropColumns))
	for _, c := range dropColumns {
		drop[c] = true
	}

	var data [][]float64
	width := -1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if width < 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("%s line %d: %d columns, expected %d: %w", path, line, len(fields), width, recording.ErrFormat)
		}

		row := make([]float64, 0, width-len(drop))
		for col, field := range fields {
			if drop[col] {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = math.NaN()
			}
			row = append(row, v)
		}
		data = append(data, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	log.L().Debug("loaded table",
		zap.String("path", path),
		zap.Int("rows", len(data)))
	return data, nil
}

// LoadChannelDescriptors reads channel metadata from the same tabular
// format, taking the last column of each row as the channel name. Row order
// is preserved and every channel is tagged "eeg".
func LoadChannelDescriptors(dir, filename string) ([]recording.ChannelDescriptor, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var channels []recording.ChannelDescriptor
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		channels = append(channels, recording.ChannelDescriptor{
			Name: strings.TrimSpace(fields[len(fields)-1]),
			Type: recording.ChannelEEG,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return channels, nil
}
