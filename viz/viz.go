// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package viz renders diagnostic views of a recording: a stacked
// multi-channel time-series plot and a power-spectral-density plot, both as
// PNG images.
package viz

import (
	"fmt"
	"io"
	"math"
	"unicode"

	chart "github.com/wcharczuk/go-chart"

	"github.com/openeeg/eegproc/dsp"
	"github.com/openeeg/eegproc/recording"
)

// DefaultWindowSeconds is the span of the time-series view when the caller
// passes a non-positive window.
const DefaultWindowSeconds = 5.0

// maxPSDFreq caps the frequency axis of the PSD view, matching the usual
// EEG band of interest.
const maxPSDFreq = 100.0

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// RenderTimeseries writes a PNG time-series view of the recording to w. For
// a continuous recording the first windowSeconds are shown; for a segmented
// one every epoch is shown back to back. Channels are stacked with a
// vertical offset so each trace stays legible.
func RenderTimeseries(w io.Writer, rec *recording.Recording, subject, stage string, windowSeconds float64) error {
	if rec.Samples() == 0 || len(rec.Data) == 0 {
		return fmt.Errorf("nothing to plot: %w", recording.ErrInsufficientData)
	}
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}

	variant := "Continuous"
	samples := rec.Samples()
	if rec.Kind == recording.Segmented {
		variant = "Epoched"
	} else if n := int(windowSeconds * rec.SampleRate); n < samples {
		samples = n
	}

	// Offset step: the largest peak-to-peak swing of any channel, so no
	// two traces overlap.
	var step float64
	for _, row := range rec.Data {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range row[:samples] {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi > lo {
			step = math.Max(step, hi-lo)
		}
	}
	if step == 0 {
		step = 1
	}

	xs := make([]float64, samples)
	for i := range xs {
		xs[i] = float64(i) / rec.SampleRate
	}

	series := make([]chart.Series, len(rec.Data))
	for c, row := range rec.Data {
		offset := step * float64(len(rec.Data)-1-c)
		ys := make([]float64, samples)
		for i, v := range row[:samples] {
			ys[i] = v + offset
		}
		series[c] = chart.ContinuousSeries{
			Name:    rec.Channels[c].Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				Show:        true,
				StrokeColor: chart.GetAlternateColor(c),
			},
		}
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("%s %s %s EEG Recordings", capitalize(subject), stage, variant),
		TitleStyle: chart.StyleShow(),
		Width:      1280,
		Height:     720,
		XAxis: chart.XAxis{
			Name:      "Time (s)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Amplitude",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// RenderPSD writes a PNG power-spectral-density view of the recording to w:
// one Welch estimate per channel, in dB, over 0-100 Hz (clipped at the
// Nyquist frequency).
func RenderPSD(w io.Writer, rec *recording.Recording, subject, stage string) error {
	if rec.Samples() == 0 || len(rec.Data) == 0 {
		return fmt.Errorf("nothing to plot: %w", recording.ErrInsufficientData)
	}

	fmax := math.Min(maxPSDFreq, rec.SampleRate/2)

	series := make([]chart.Series, 0, len(rec.Data))
	for c, row := range rec.Data {
		freqs, psd, err := dsp.Welch(row, rec.SampleRate, 0)
		if err != nil {
			return fmt.Errorf("PSD for channel %q: %w", rec.Channels[c].Name, err)
		}

		var xs, ys []float64
		for i, f := range freqs {
			if f > fmax {
				break
			}
			xs = append(xs, f)
			ys = append(ys, 10*math.Log10(math.Max(psd[i], 1e-20)))
		}

		series = append(series, chart.ContinuousSeries{
			Name:    rec.Channels[c].Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				Show:        true,
				StrokeColor: chart.GetAlternateColor(c),
			},
		})
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("%s %s EEG Recordings PSD", capitalize(subject), stage),
		TitleStyle: chart.StyleShow(),
		Width:      1000,
		Height:     500,
		XAxis: chart.XAxis{
			Name:      "Frequency (Hz)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Power (dB)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
