// level_test.go: Level ordering, policy and parsing tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOrdering(t *testing.T) {
	ordered := []Level{
		LevelSystem, LevelCritical, LevelError, LevelWarning,
		LevelInfo, LevelDebug, LevelDeveloper,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1], ordered[i],
			"%s must be more restrictive than %s", ordered[i-1], ordered[i])
	}
	assert.Equal(t, Level(0), LevelSystem)
}

func TestShouldEmit_FullGrid(t *testing.T) {
	for threshold := LevelSystem; threshold <= LevelDeveloper; threshold++ {
		for level := LevelSystem; level <= LevelDeveloper; level++ {
			got := shouldEmit(threshold, level)
			want := threshold >= level
			assert.Equal(t, want, got, "threshold=%s level=%s", threshold, level)
		}
		// System passes every threshold by construction.
		assert.True(t, shouldEmit(threshold, LevelSystem))
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelSystem, "System"},
		{LevelCritical, "Critical"},
		{LevelError, "Error"},
		{LevelWarning, "Warning"},
		{LevelInfo, "Info"},
		{LevelDebug, "Debug"},
		{LevelDeveloper, "Developer"},
		{Level(-1), "Unknown"},
		{Level(42), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Level
	}{
		{"Canonical", "Warning", LevelWarning},
		{"Lowercase", "warning", LevelWarning},
		{"Uppercase", "WARNING", LevelWarning},
		{"MixedCase", "dEvEloPer", LevelDeveloper},
		{"System", "system", LevelSystem},
		{"Critical", "CRITICAL", LevelCritical},
		{"Error", "Error", LevelError},
		{"Info", "info", LevelInfo},
		{"Debug", "DEBUG", LevelDebug},
		{"SurroundingSpace", "  Info  ", LevelInfo},
		{"Unrecognized", "verbose", LevelWarning},
		{"Empty", "", LevelWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
