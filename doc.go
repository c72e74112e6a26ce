// Package journal provides a leveled, asynchronous logger backed by a
// size-bounded rotating file.
//
// Application goroutines never touch the disk: each emit call applies
// the level policy, renders the record to its final line and hands it
// to a synchronized queue. A single background writer drains the queue,
// appends to the active file and keeps it within its configured bounds.
//
// # Quick Start
//
//	logger, err := journal.NewDefault("/var/log/myapp", "app.log")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer logger.Close()
//
//	logger.Warning("cache miss rate above 20%")
//	logger.ErrorAt("connection refused", "client.go", 87)
//
// # Levels
//
// Seven levels, most restrictive first: System, Critical, Error,
// Warning, Info, Debug, Developer. A record is written when the
// configured threshold is at least as verbose as its level, so System
// records are written for every threshold. Developer records are
// additionally gated behind the "debug" build tag: in release builds
// Dev and DevAt compile to no-ops whatever the threshold says.
//
// # Rotation
//
// When the active file reaches the size bound, the rotator runs in one
// of two modes selected once at construction:
//
//   - TrimInPlace: the file is shrunk in place by discarding roughly
//     its oldest quarter, snapped to a record boundary. No extra files
//     are produced and the file never resets to empty.
//   - N >= 0 backups: the active file is renamed to
//     <name>_<ddMMyyyy_hhmmss_zzz>.log and a fresh file is started;
//     the oldest backups are deleted so at most N remain. N == 0 keeps
//     no history at all.
//
// # Configuration
//
// Loggers are built either directly (New, NewDefault) or from a parsed
// settings mapping (NewFromSettings) with the keys LogFolder,
// LogFileName, LogLevel, MaxLogFileSize and MaxFilesCount. An empty
// LogFileName yields a disabled logger whose emit methods are no-ops.
//
// # Error Handling
//
// Nothing in this package aborts the process. Construction fails only
// on an empty root folder; every file operation failure after that is
// reported through SetErrorCallback, skipped for the cycle, and the
// writer keeps running in best-effort mode.
//
// # Shutdown
//
// Close is idempotent and terminal: it stops intake, drains every line
// already enqueued, syncs and closes the file and joins the writer
// goroutine. There is no reinitialization after Close.
package journal
