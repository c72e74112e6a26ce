// level.go: Severity levels and the emission policy
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import "strings"

// Level is the severity of a log record, ordered from most restrictive
// to most verbose. A record at level L is written iff the configured
// threshold T satisfies T >= L; since LevelSystem is the minimum,
// System records pass every threshold.
type Level int32

// Severity levels, most restrictive first.
const (
	LevelSystem Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelDeveloper
)

// levelNames is indexed by Level and holds the canonical names written
// into log lines. ParseLevel walks it in order, which keeps name
// matching deterministic.
var levelNames = [...]string{
	LevelSystem:    "System",
	LevelCritical:  "Critical",
	LevelError:     "Error",
	LevelWarning:   "Warning",
	LevelInfo:      "Info",
	LevelDebug:     "Debug",
	LevelDeveloper: "Developer",
}

// String returns the canonical level name as it appears in log lines.
func (l Level) String() string {
	if l < LevelSystem || l > LevelDeveloper {
		return "Unknown"
	}
	return levelNames[l]
}

// shouldEmit is the level policy. Pure and side-effect free; evaluated
// identically on every goroutine.
func shouldEmit(threshold, level Level) bool {
	return threshold >= level
}

// ParseLevel matches a level name case-insensitively against the
// canonical names. Unrecognized names fall back to LevelWarning.
func ParseLevel(name string) Level {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if strings.ToUpper(n) == upper {
			return Level(i)
		}
	}
	return LevelWarning
}
