// rotation.go: Active-file ownership and the two rotation modes
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

const (
	// UnboundedFileSize disables size-based rotation.
	UnboundedFileSize int64 = -1

	// TrimInPlace selects in-place trimming of the active file instead
	// of timestamped backups. With any other count N >= 0 the rotator
	// keeps at most N rotated files; N == 0 intentionally retains no
	// history at all, every existing backup is deleted before the next
	// one is created.
	TrimInPlace = -1
)

// rotationSlack is subtracted from the size bound before a rotation
// fires, so the last write of a batch may slightly overshoot the
// nominal limit instead of forcing a rotation mid-line.
const rotationSlack = 80

// trimDivisor sets the share of the active file discarded by a trim:
// size/trimDivisor bytes from the head, snapped forward to a record
// boundary.
const trimDivisor = 4

// scratchSuffix names the temporary copy used by trim-in-place mode.
const scratchSuffix = "_scratch"

// backupTimestamp renders ddMMyyyy_hhmmss; the millisecond component is
// appended separately because Go layouts cannot express bare
// milliseconds without a leading dot.
const backupTimestamp = "02012006_150405"

const (
	retryAttempts = 3
	retryDelay    = 10 * time.Millisecond
)

// fileRotator owns the on-disk state of the active log file: the open
// handle, its running size, and the rotation policy. It is driven
// exclusively by the writer goroutine, so none of its state is locked.
type fileRotator struct {
	dir         string
	fileName    string
	maxFileSize int64
	maxFiles    int

	file *os.File
	size int64

	clock    *timecache.TimeCache
	onError  func(operation string, err error)
	onRotate func()

	// scratchWG tracks deferred scratch deletions so shutdown can wait
	// for them instead of leaving strays behind.
	scratchWG sync.WaitGroup
}

func newFileRotator(dir, fileName string, maxFileSize int64, maxFiles int,
	clock *timecache.TimeCache, onError func(string, error), onRotate func()) *fileRotator {
	return &fileRotator{
		dir:         dir,
		fileName:    fileName,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
		clock:       clock,
		onError:     onError,
		onRotate:    onRotate,
	}
}

func (fr *fileRotator) activePath() string {
	return filepath.Join(fr.dir, fr.fileName)
}

// stem is the active file name without its extension; rotated backups
// are named <stem>_<timestamp>.log.
func (fr *fileRotator) stem() string {
	return strings.TrimSuffix(fr.fileName, filepath.Ext(fr.fileName))
}

func (fr *fileRotator) now() time.Time {
	if fr.clock != nil {
		return fr.clock.CachedTime()
	}
	return time.Now()
}

// open prepares the log directory and the active file. A missing
// directory is created recursively; failure to create it is diagnostic
// only, the subsequent open reports the real error and the writer
// carries on in best-effort mode, retrying on later appends.
func (fr *fileRotator) open() {
	if err := retryFileOperation(func() error {
		return os.MkdirAll(fr.dir, 0o750)
	}); err != nil {
		fr.onError("directory_create", err)
	}
	fr.openActive(os.O_APPEND)
}

// openActive opens the active file with O_CREATE|O_WRONLY plus the
// given extra flag and refreshes the tracked size.
func (fr *fileRotator) openActive(extra int) {
	file, err := os.OpenFile(fr.activePath(), os.O_CREATE|os.O_WRONLY|extra, 0o644) // #nosec G304 -- path assembled from the logger's own configuration
	if err != nil {
		fr.onError("file_open", err)
		return
	}
	fr.file = file
	fr.size = 0
	if info, err := file.Stat(); err == nil {
		fr.size = info.Size()
	}
}

// appendLine rotates if the active file has reached its bound, then
// writes one rendered line and syncs it to disk. Returns true when the
// line actually reached the file.
func (fr *fileRotator) appendLine(line string) bool {
	fr.maybeRotate()
	if fr.file == nil {
		// A previous open failed; try again so logging resumes as soon
		// as the path becomes usable.
		fr.openActive(os.O_APPEND)
		if fr.file == nil {
			return false
		}
	}
	n, err := fr.file.WriteString(line)
	fr.size += int64(n)
	if err != nil {
		fr.onError("file_write", err)
		return false
	}
	if err := fr.file.Sync(); err != nil {
		fr.onError("file_sync", err)
	}
	return true
}

// maybeRotate fires when a size bound is configured and the active file
// is within rotationSlack of it. The mode is selected once at
// construction by maxFiles and never changes.
func (fr *fileRotator) maybeRotate() {
	if fr.maxFileSize == UnboundedFileSize || fr.file == nil {
		return
	}
	if fr.size < fr.maxFileSize-rotationSlack {
		return
	}
	if fr.maxFiles == TrimInPlace {
		fr.trimInPlace()
	} else {
		fr.rotateBackups()
	}
}

// trimInPlace shrinks the active file by discarding roughly its oldest
// quarter. The file's bytes are duplicated into a scratch copy, the
// retained tail is streamed back into the truncated active file, and
// the scratch is deleted in the background. The retained content always
// starts at the byte after a newline, so no partial record survives.
func (fr *fileRotator) trimInPlace() {
	if err := fr.file.Sync(); err != nil {
		fr.onError("trim_sync", err)
	}

	scratch := fr.activePath() + scratchSuffix
	// A scratch left behind by an earlier cycle whose deferred delete
	// never completed is removed here, which also bounds accumulation.
	if _, err := os.Stat(scratch); err == nil {
		if err := retryFileOperation(func() error { return os.Remove(scratch) }); err != nil {
			fr.onError("scratch_remove", err)
			return
		}
	}
	if err := copyFile(fr.activePath(), scratch); err != nil {
		fr.onError("trim_copy", err)
		return
	}

	trimPoint, err := findTrimPoint(scratch)
	if err != nil {
		fr.onError("trim_scan", err)
		fr.deleteScratch(scratch)
		return
	}

	if err := fr.file.Close(); err != nil {
		fr.onError("file_close", err)
	}
	fr.file = nil
	if err := restoreTail(scratch, fr.activePath(), trimPoint); err != nil {
		fr.onError("trim_rewrite", err)
	}
	// Reopen for appends whatever happened above; logging must go on.
	fr.openActive(os.O_APPEND)
	fr.deleteScratch(scratch)
	if fr.onRotate != nil {
		fr.onRotate()
	}
}

// findTrimPoint returns the offset of the first byte after the first
// newline at or after the 25% mark of the file. When no newline follows
// the mark, the raw offset is returned: at worst one record is split,
// the tail is never dropped wholesale.
func findTrimPoint(path string) (int64, error) {
	file, err := os.Open(path) // #nosec G304 -- internally generated scratch path
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	offset := info.Size() / trimDivisor
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	skipped, err := bufio.NewReader(file).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return offset, nil
		}
		return 0, err
	}
	return offset + int64(len(skipped)), nil
}

// restoreTail truncates dst and streams src's bytes from trimPoint to
// its end into it. Ordinary seek+read+write; no mapping tricks.
func restoreTail(src, dst string, trimPoint int64) error {
	in, err := os.Open(src) // #nosec G304 -- internally generated scratch path
	if err != nil {
		return err
	}
	defer in.Close()
	if _, err := in.Seek(trimPoint, io.SeekStart); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) // #nosec G304 -- the rotator's own active path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// deleteScratch removes the scratch copy in the background. Deletion
// may lag behind the trim but must eventually complete; once the
// retries run out the failure is reported and the file is left for the
// next trim cycle to clear.
func (fr *fileRotator) deleteScratch(path string) {
	fr.scratchWG.Add(1)
	go func() {
		defer fr.scratchWG.Done()
		err := retryFileOperation(func() error {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		})
		if err != nil {
			fr.onError("scratch_remove", err)
		}
	}()
}

// backupFile pairs a rotated file with its modification time for
// oldest-first ordering.
type backupFile struct {
	path    string
	modTime time.Time
}

// listBackups returns the existing rotated files, oldest first.
func (fr *fileRotator) listBackups() ([]backupFile, error) {
	pattern := filepath.Join(fr.dir, fr.stem()+"_*.log")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var backups []backupFile
	for _, match := range matches {
		if filepath.Base(match) == fr.fileName {
			continue
		}
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{path: match, modTime: info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})
	return backups, nil
}

// rotateBackups renames the active file to a timestamped backup and
// starts a fresh one. Oldest backups are deleted first so the count
// after rotation, including the file about to be created, stays within
// maxFiles.
func (fr *fileRotator) rotateBackups() {
	backups, err := fr.listBackups()
	if err != nil {
		fr.onError("backup_list", err)
		return
	}
	for fr.maxFiles-1 < len(backups) {
		oldest := backups[0]
		backups = backups[1:]
		if err := retryFileOperation(func() error { return os.Remove(oldest.path) }); err != nil {
			fr.onError("backup_remove", err)
		}
	}

	backupName, err := fr.nextBackupName()
	if err != nil {
		fr.onError("backup_name", err)
		return
	}
	if err := fr.file.Close(); err != nil {
		fr.onError("file_close", err)
	}
	fr.file = nil

	renameErr := retryFileOperation(func() error {
		return os.Rename(fr.activePath(), filepath.Join(fr.dir, backupName))
	})
	if renameErr != nil {
		// The active file still holds its content; reopen in append
		// mode rather than truncating it away, and skip this cycle.
		fr.onError("backup_rename", renameErr)
		fr.openActive(os.O_APPEND)
		return
	}

	fr.openActive(os.O_TRUNC)
	if fr.onRotate != nil {
		fr.onRotate()
	}
}

// nextBackupName generates <stem>_<ddMMyyyy_hhmmss_zzz>.log. On a
// sub-millisecond collision the timestamp is regenerated from a fresh
// wall-clock read until the name is free.
func (fr *fileRotator) nextBackupName() (string, error) {
	now := fr.now()
	for {
		name := fmt.Sprintf("%s_%s_%03d.log",
			fr.stem(), now.Format(backupTimestamp), now.Nanosecond()/int(time.Millisecond))
		_, err := os.Stat(filepath.Join(fr.dir, name))
		if os.IsNotExist(err) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		now = time.Now()
	}
}

// closeFile syncs and releases the active handle and waits for any
// deferred scratch deletions. Called only on writer shutdown.
func (fr *fileRotator) closeFile() {
	if fr.file != nil {
		if err := fr.file.Sync(); err != nil {
			fr.onError("file_sync", err)
		}
		if err := fr.file.Close(); err != nil {
			fr.onError("file_close", err)
		}
		fr.file = nil
	}
	fr.scratchWG.Wait()
}

// copyFile duplicates src into dst byte for byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- the rotator's own active path
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 -- internally generated scratch path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// retryFileOperation executes a file operation with retry logic.
// Antivirus scans, network mounts and overlay filesystems all produce
// transient failures that a short, bounded retry absorbs.
func retryFileOperation(operation func() error) error {
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		if lastErr = operation(); lastErr == nil {
			return nil
		}
		if i < retryAttempts-1 {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("operation failed after %d attempts: %w", retryAttempts, lastErr)
}
