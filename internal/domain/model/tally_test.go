// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTally(t *testing.T) {
	tally := NewTally()

	require.Len(t, tally, 3)
	for _, c := range Choices() {
		count, ok := tally[c]
		assert.True(t, ok, "missing %s", c)
		assert.Zero(t, count)
	}
	assert.Zero(t, tally.Total())
}

func TestTally_Bars(t *testing.T) {
	tally := Tally{ChoiceAgree: 2, ChoiceDisagree: 1, ChoiceIndifferent: 1}

	bars := tally.Bars()

	require.Len(t, bars, 3)
	assert.Equal(t, Bar{Choice: ChoiceAgree, Count: 2, Share: 0.5}, bars[0])
	assert.Equal(t, Bar{Choice: ChoiceDisagree, Count: 1, Share: 0.25}, bars[1])
	assert.Equal(t, Bar{Choice: ChoiceIndifferent, Count: 1, Share: 0.25}, bars[2])
	assert.Equal(t, 4, tally.Total())
}

func TestTally_BarsEmpty(t *testing.T) {
	for _, bar := range NewTally().Bars() {
		assert.Zero(t, bar.Count)
		assert.Zero(t, bar.Share)
	}
}
