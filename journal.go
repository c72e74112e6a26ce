// journal.go: Public API - Asynchronous rotating file logger
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
)

// Pre-allocated construction errors.
var (
	ErrEmptyRootFolder = errors.New("root folder cannot be empty")
)

// Logger is a leveled, asynchronous file logger. Producer goroutines
// render records and hand them to a synchronized queue; a single
// background writer drains the queue and keeps the file within its
// configured bounds, either by trimming it in place or by rotating it
// into a size-capped set of timestamped backups.
//
// A Logger is configured exactly once at construction and shut down
// exactly once with Close; there is no reconfiguration and no restart.
//
// Basic usage:
//
//	logger, err := journal.New("/var/log/myapp", "app.log",
//		journal.LevelInfo, 10*1024*1024, 5)
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	logger.Info("service started")
//	logger.ErrorAt("listen failed", "server.go", 42)
type Logger struct {
	threshold Level
	enabled   bool

	queue  *messageQueue
	worker *writer
	clock  *timecache.TimeCache

	// errorCallback stores a func(operation string, err error) invoked
	// on every non-fatal I/O failure.
	errorCallback atomic.Value

	closeOnce sync.Once

	// Telemetry counters, safe to read concurrently via Stats.
	enqueued   atomic.Uint64
	written    atomic.Uint64
	dropped    atomic.Uint64
	rotations  atomic.Uint64
	ioWarnings atomic.Uint64
	fileSize   atomic.Int64
}

// New creates a Logger and, unless it is disabled, starts its writer
// goroutine.
//
// Parameters:
//   - rootFolder: directory for the log files (required; created on
//     first write if missing)
//   - fileName: active log file name. An empty name produces a disabled
//     logger: no goroutine, no file, every emit a no-op. This is the
//     intended "no file name, no logging" switch, not an error.
//   - threshold: most verbose level still written (see Level)
//   - maxFileSize: size bound in bytes; UnboundedFileSize disables
//     rotation entirely
//   - maxFilesCount: TrimInPlace for in-place trimming, or N >= 0 to
//     keep at most N rotated backups (N == 0 keeps none)
//
// New fails only when rootFolder is empty. Writability is not checked
// here; the writer reports open and write failures through the error
// callback and keeps running in best-effort mode.
func New(rootFolder, fileName string, threshold Level, maxFileSize int64, maxFilesCount int) (*Logger, error) {
	if rootFolder == "" {
		return nil, ErrEmptyRootFolder
	}

	l := &Logger{
		threshold: threshold,
		enabled:   fileName != "",
	}
	if !l.enabled {
		return l, nil
	}

	l.clock = timecache.NewWithResolution(time.Millisecond)
	l.queue = newMessageQueue()
	rot := newFileRotator(rootFolder, fileName, maxFileSize, maxFilesCount,
		l.clock, l.reportError, func() { l.rotations.Add(1) })
	l.worker = newWriter(l, l.queue, rot)
	l.worker.start()
	return l, nil
}

// NewDefault creates a Logger with the conventional defaults: Warning
// threshold, unbounded file size, trim-in-place history.
func NewDefault(rootFolder, fileName string) (*Logger, error) {
	return New(rootFolder, fileName, LevelWarning, UnboundedFileSize, TrimInPlace)
}

// SetErrorCallback installs a callback invoked for every non-fatal I/O
// failure (directory creation, open, copy, rename, remove). The
// callback runs on the writer goroutine and must not block. Failures
// that occur before the callback is installed are still counted in
// Stats.IoWarnings.
func (l *Logger) SetErrorCallback(fn func(operation string, err error)) {
	l.errorCallback.Store(fn)
}

// reportError counts an I/O warning and forwards it to the callback.
// Nothing here is ever fatal: a failed operation is skipped for that
// cycle and the writer keeps running.
func (l *Logger) reportError(operation string, err error) {
	l.ioWarnings.Add(1)
	if fn, ok := l.errorCallback.Load().(func(string, error)); ok && fn != nil {
		fn(operation, err)
	}
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.CachedTime()
	}
	return time.Now()
}

// emit applies the level policy, renders the record on the calling
// goroutine and enqueues the finished line. Lines offered after Close
// are counted as dropped and otherwise ignored.
func (l *Logger) emit(level Level, text, sourceFile string, sourceLine int) {
	if !l.enabled || !shouldEmit(l.threshold, level) {
		return
	}
	rec := record{
		level:      level,
		timestamp:  l.now(),
		text:       text,
		sourceFile: sourceFile,
		sourceLine: sourceLine,
	}
	if l.queue.enqueue(rec.line()) {
		l.enqueued.Add(1)
	} else {
		l.dropped.Add(1)
	}
}

// System logs a message that is written for every threshold, since
// LevelSystem is the minimum of the level order.
func (l *Logger) System(message string) { l.emit(LevelSystem, message, "", NoSourceLine) }

// SystemAt is System with the originating source file and line.
func (l *Logger) SystemAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelSystem, message, sourceFile, sourceLine)
}

// Critical logs a message about data loss or an imminent stop of the
// system. Prefer CriticalAt: critical records should carry the source
// location of the failure.
func (l *Logger) Critical(message string) { l.emit(LevelCritical, message, "", NoSourceLine) }

// CriticalAt is Critical with the originating source file and line.
func (l *Logger) CriticalAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelCritical, message, sourceFile, sourceLine)
}

// Error logs a failure caused by a system or logic error. Prefer
// ErrorAt so the record carries the source location.
func (l *Logger) Error(message string) { l.emit(LevelError, message, "", NoSourceLine) }

// ErrorAt is Error with the originating source file and line.
func (l *Logger) ErrorAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelError, message, sourceFile, sourceLine)
}

// Warning logs a condition that degrades an operation without stopping
// the module, such as incomplete input data.
func (l *Logger) Warning(message string) { l.emit(LevelWarning, message, "", NoSourceLine) }

// WarningAt is Warning with the originating source file and line.
func (l *Logger) WarningAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelWarning, message, sourceFile, sourceLine)
}

// Info logs routine operational information.
func (l *Logger) Info(message string) { l.emit(LevelInfo, message, "", NoSourceLine) }

// InfoAt is Info with the originating source file and line.
func (l *Logger) InfoAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelInfo, message, sourceFile, sourceLine)
}

// Debug logs diagnostic detail intended for support and integration.
func (l *Logger) Debug(message string) { l.emit(LevelDebug, message, "", NoSourceLine) }

// DebugAt is Debug with the originating source file and line.
func (l *Logger) DebugAt(message, sourceFile string, sourceLine int) {
	l.emit(LevelDebug, message, sourceFile, sourceLine)
}

// Dev logs development-only detail. In builds without the "debug" tag
// the method body is compiled down to a constant-false check and the
// call is free, regardless of the configured threshold.
func (l *Logger) Dev(message string) {
	if !devEnabled {
		return
	}
	l.emit(LevelDeveloper, message, "", NoSourceLine)
}

// DevAt is Dev with the originating source file and line.
func (l *Logger) DevAt(message, sourceFile string, sourceLine int) {
	if !devEnabled {
		return
	}
	l.emit(LevelDeveloper, message, sourceFile, sourceLine)
}

// Threshold returns the configured level threshold.
func (l *Logger) Threshold() Level { return l.threshold }

// IsDeveloper reports whether the threshold admits Developer records.
func (l *Logger) IsDeveloper() bool { return l.threshold == LevelDeveloper }

// IsDebug reports whether the threshold admits Debug records.
func (l *Logger) IsDebug() bool { return shouldEmit(l.threshold, LevelDebug) }

// IsInfo reports whether the threshold admits Info records.
func (l *Logger) IsInfo() bool { return shouldEmit(l.threshold, LevelInfo) }

// IsWarning reports whether the threshold admits Warning records.
func (l *Logger) IsWarning() bool { return shouldEmit(l.threshold, LevelWarning) }

// Close shuts the logger down: the queue stops accepting lines, the
// writer drains everything already enqueued, syncs and closes the file,
// waits for deferred scratch deletions and exits. Close blocks until
// the writer goroutine has terminated.
//
// Close is idempotent and terminal. A second call does nothing, and a
// closed logger cannot be restarted; emit calls on it are silent
// no-ops counted as dropped.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.enabled {
			l.queue.close()
			<-l.worker.done
		}
		if l.clock != nil {
			l.clock.Stop()
		}
	})
	return nil
}

// Stats is a point-in-time snapshot of logger activity for telemetry.
type Stats struct {
	Enqueued   uint64 `json:"enqueued"`     // lines accepted into the queue
	Written    uint64 `json:"written"`      // lines that reached the file
	Dropped    uint64 `json:"dropped"`      // lines rejected after Close
	Rotations  uint64 `json:"rotations"`    // completed trim or backup cycles
	IoWarnings uint64 `json:"io_warnings"`  // non-fatal file operation failures
	FileSize   int64  `json:"file_size"`    // active file size after the last write
}

// Stats returns current counters. Safe to call concurrently; values
// are individually atomic snapshots.
func (l *Logger) Stats() Stats {
	return Stats{
		Enqueued:   l.enqueued.Load(),
		Written:    l.written.Load(),
		Dropped:    l.dropped.Load(),
		Rotations:  l.rotations.Load(),
		IoWarnings: l.ioWarnings.Load(),
		FileSize:   l.fileSize.Load(),
	}
}
