// example_test.go: Executable examples for godoc
//
// These examples appear in the generated documentation and are executable.
// Run with: go test -run Example

package journal_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/agilira/journal"
)

// ExampleNew demonstrates creating a logger with an explicit policy.
func ExampleNew() {
	dir, err := os.MkdirTemp("", "journal")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// Keep the file under 10 MB, retaining at most 5 rotated backups.
	logger, err := journal.New(dir, "app.log", journal.LevelInfo, 10*1024*1024, 5)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	logger.System("service started")
	logger.Info("listening on :8080")
	logger.ErrorAt("connection refused", "client.go", 42)

	fmt.Println("Logger created with bounded history")
	// Output: Logger created with bounded history
}

// ExampleNewDefault demonstrates the conventional defaults: Warning
// threshold, unbounded file size, trim-in-place history.
func ExampleNewDefault() {
	dir, err := os.MkdirTemp("", "journal")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	logger, err := journal.NewDefault(dir, "app.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	logger.Warning("disk space below 10%")
	logger.Info("filtered out at the default threshold")

	fmt.Println("Logger created with defaults")
	// Output: Logger created with defaults
}

// ExampleNewFromSettings demonstrates string-keyed configuration, as
// loaded from an INI or environment-backed settings store.
func ExampleNewFromSettings() {
	dir, err := os.MkdirTemp("", "journal")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	logger, err := journal.NewFromSettings(map[string]string{
		journal.SettingLogFolder:     dir,
		journal.SettingLogFileName:   "app.log",
		journal.SettingLogLevel:      "Debug",
		journal.SettingMaxFileSize:   "10Mb",
		journal.SettingMaxFilesCount: "5",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	logger.Debug("settings applied")

	fmt.Println("Logger created from settings")
	// Output: Logger created from settings
}

// ExampleLogger_SetErrorCallback demonstrates observing non-fatal I/O
// failures instead of letting them pass silently.
func ExampleLogger_SetErrorCallback() {
	dir, err := os.MkdirTemp("", "journal")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	logger, err := journal.NewDefault(dir, "app.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	logger.SetErrorCallback(func(operation string, err error) {
		fmt.Fprintf(os.Stderr, "journal %s failed: %v\n", operation, err)
	})

	logger.Warning("degraded mode")

	fmt.Println("Error callback installed")
	// Output: Error callback installed
}

// ExampleLogger_Stats demonstrates reading the telemetry counters.
func ExampleLogger_Stats() {
	dir, err := os.MkdirTemp("", "journal")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	logger, err := journal.New(dir, "app.log", journal.LevelDebug,
		journal.UnboundedFileSize, journal.TrimInPlace)
	if err != nil {
		log.Fatal(err)
	}

	logger.Info("one")
	logger.Info("two")
	if err := logger.Close(); err != nil {
		log.Fatal(err)
	}

	stats := logger.Stats()
	fmt.Printf("enqueued=%d written=%d\n", stats.Enqueued, stats.Written)

	if _, err := os.Stat(filepath.Join(dir, "app.log")); err != nil {
		log.Fatal(err)
	}
	// Output: enqueued=2 written=2
}
