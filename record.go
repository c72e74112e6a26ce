// record.go: Log record construction and line rendering
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"fmt"
	"time"
)

// NoSourceLine marks a record that carries no source line number.
const NoSourceLine = -1

// timestampLayout renders the leading timestamp of every log line.
const timestampLayout = "02.01.2006 15:04:05"

// record is a single log entry. It is immutable once built and is
// rendered to its final line on the producer goroutine: the wall clock
// must be captured at emit time, not when the writer eventually drains
// the queue, or interleaved records could carry out-of-order timestamps.
type record struct {
	level      Level
	timestamp  time.Time
	text       string
	sourceFile string
	sourceLine int
}

// line renders the record into one of the four supported shapes,
// selected by the presence of the source file and line:
//
//	<ts> [<LEVEL>]: <text> [<file> (<line>)]
//	<ts> [<LEVEL>]: <text> [<file>]
//	<ts> [<LEVEL>]: <text> (<line>)
//	<ts> [<LEVEL>]: <text>
func (r record) line() string {
	ts := r.timestamp.Format(timestampLayout)
	switch {
	case r.sourceFile != "" && r.sourceLine != NoSourceLine:
		return fmt.Sprintf("%s [%s]: %s [%s (%d)]\n", ts, r.level, r.text, r.sourceFile, r.sourceLine)
	case r.sourceFile != "":
		return fmt.Sprintf("%s [%s]: %s [%s]\n", ts, r.level, r.text, r.sourceFile)
	case r.sourceLine != NoSourceLine:
		return fmt.Sprintf("%s [%s]: %s (%d)\n", ts, r.level, r.text, r.sourceLine)
	default:
		return fmt.Sprintf("%s [%s]: %s\n", ts, r.level, r.text)
	}
}
