// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package recording

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed montages/*.tsv
var montageFS embed.FS

// Montage is a named electrode layout: scalp positions in meters for each
// channel name. Montages are read-only once built.
type Montage struct {
	Name      string
	Positions map[string][3]float64
}

// BuildMontage looks up a standard electrode layout by name from the
// embedded catalog. It fails with ErrUnknownLayout for uncataloged names.
func BuildMontage(name string) (*Montage, error) {
	raw, err := montageFS.ReadFile("montages/" + name + ".tsv")
	if err != nil {
		return nil, fmt.Errorf("montage %q: %w", name, ErrUnknownLayout)
	}

	positions := make(map[string][3]float64)
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			return nil, fmt.Errorf("montage %q line %d: expected 4 fields, got %d: %w", name, line, len(fields), ErrFormat)
		}
		var pos [3]float64
		for i, f := range fields[1:] {
			pos[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("montage %q line %d: %w", name, line, err)
			}
		}
		positions[fields[0]] = pos
	}

	return &Montage{Name: name, Positions: positions}, nil
}

// MontageNames lists the cataloged layout names, sorted.
func MontageNames() []string {
	entries, err := montageFS.ReadDir("montages")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tsv"))
	}
	sort.Strings(names)
	return names
}
