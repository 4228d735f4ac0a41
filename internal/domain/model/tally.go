// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"

// Tally counts votes per choice. A tally built with NewTally always has an
// entry for every choice.
type Tally map[Choice]int

// NewTally returns a tally with every choice at zero.
func NewTally() Tally {
	t := make(Tally, len(Choices()))
	for _, c := range Choices() {
		t[c] = 0
	}
	return t
}

// Total returns the number of votes counted.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Bar is one bar of the tally chart.
type Bar struct {
	Choice Choice  `json:"choice"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// Bars returns the chart data in display order.
func (t Tally) Bars() []Bar {
	total := t.Total()
	bars := make([]Bar, 0, len(Choices()))
	for _, c := range Choices() {
		bars = append(bars, Bar{
			Choice: c,
			Count:  t[c],
			Share:  utils.Share(t[c], total),
		})
	}
	return bars
}
