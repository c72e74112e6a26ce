// config.go: Settings-driven construction and value parsing
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"strconv"
	"strings"
)

// Settings keys consumed by NewFromSettings. Reading and section-scoping
// the backing store (INI, TOML, whatever the application uses) is the
// configuration collaborator's concern; the logger only consumes the
// flattened key/value view.
const (
	SettingLogFolder     = "LogFolder"
	SettingLogFileName   = "LogFileName"
	SettingLogLevel      = "LogLevel"
	SettingMaxFileSize   = "MaxLogFileSize"
	SettingMaxFilesCount = "MaxFilesCount"
)

// NewFromSettings creates a Logger from a parsed configuration mapping.
// It fails only when LogFolder is absent or empty. An absent LogLevel
// defaults to System; an unrecognized one falls back to Warning. An
// absent or non-numeric MaxFilesCount selects trim-in-place mode.
func NewFromSettings(settings map[string]string) (*Logger, error) {
	folder := settings[SettingLogFolder]
	if folder == "" {
		return nil, ErrEmptyRootFolder
	}

	levelName, ok := settings[SettingLogLevel]
	if !ok {
		levelName = "System"
	}
	threshold := ParseLevel(levelName)

	maxFileSize := ParseMaxFileSize(settings[SettingMaxFileSize])

	maxFiles := TrimInPlace
	if raw, ok := settings[SettingMaxFilesCount]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			maxFiles = n
		}
	}

	return New(folder, settings[SettingLogFileName], threshold, maxFileSize, maxFiles)
}

// sizeUnits maps size suffixes to their 1024-based multipliers. The
// table is walked in order with HasSuffix, so the two-letter units can
// never be shadowed by a partial overlap.
var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KB", 1024},
	{"MB", 1024 * 1024},
	{"GB", 1024 * 1024 * 1024},
	{"TB", 1024 * 1024 * 1024 * 1024},
}

// ParseMaxFileSize converts values like "10Mb" or "512Kb" to bytes.
// Suffixes Kb/Mb/Gb/Tb in any letter case multiply a leading integer by
// the matching power of 1024; a bare integer is taken as bytes; any
// other content yields UnboundedFileSize.
func ParseMaxFileSize(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnboundedFileSize
	}

	// Plain numbers are bytes.
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return val
	}

	upper := strings.ToUpper(s)
	for _, unit := range sizeUnits {
		if !strings.HasSuffix(upper, unit.suffix) {
			continue
		}
		numStr := strings.TrimSpace(upper[:len(upper)-len(unit.suffix)])
		val, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return UnboundedFileSize
		}
		result := val * unit.multiplier
		if result/unit.multiplier != val { // overflow
			return UnboundedFileSize
		}
		return result
	}
	return UnboundedFileSize
}
