package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/xmcda"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeParameters ChangeType = iota // method_parameters.xml
	ChangeTypeData                         // alternatives, relations and profiles
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTypeParameters:
		return "parameters"
	case ChangeTypeData:
		return "data"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// flushDelay batches the burst of events a single save produces
const flushDelay = 100 * time.Millisecond

// FileWatcher watches an XMCDA input directory for file changes
type FileWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	events  chan ChangeEvent
}

// NewFileWatcher creates a new file system watcher for an input directory
func NewFileWatcher(dir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		dir:     dir,
		events:  make(chan ChangeEvent, 100),
	}

	return fw, nil
}

// Start begins watching for file changes. Events stop and the events channel
// is closed when ctx is cancelled or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) error {
	// Watch the directory rather than the files, editors replace files on save
	if err := fw.watcher.Add(fw.dir); err != nil {
		fw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", fw.dir, err)
	}

	logging.Info("started watching input directory", "path", fw.dir)

	// Process events
	go fw.processEvents(ctx)

	return nil
}

// Classify returns the change type of an input file, or false for files
// that do not affect the result
func Classify(path string) (ChangeType, bool) {
	switch filepath.Base(path) {
	case xmcda.MethodParametersFile:
		return ChangeTypeParameters, true
	case xmcda.AlternativesFile, xmcda.OutrankingFile, xmcda.CredibilityFile, xmcda.CategoriesProfilesFile:
		return ChangeTypeData, true
	default:
		return 0, false
	}
}

// processEvents processes file system events and batches them by type
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	defer fw.watcher.Close()

	// Batch events to avoid sending one event per write
	pending := make(map[ChangeType][]string)

	flushTimer := time.NewTimer(flushDelay)
	flushTimer.Stop()

	flush := func() bool {
		for _, t := range []ChangeType{ChangeTypeParameters, ChangeTypeData} {
			if len(pending[t]) == 0 {
				continue
			}
			select {
			case fw.events <- ChangeEvent{Type: t, Paths: pending[t], Timestamp: time.Now()}:
			case <-ctx.Done():
				return false
			}
			delete(pending, t)
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			// Filter to only relevant input files
			t, relevant := Classify(event.Name)
			if !relevant {
				continue
			}
			logging.Trace("input file changed", "path", event.Name, "op", event.Op.String())
			pending[t] = append(pending[t], event.Name)
			flushTimer.Reset(flushDelay)

		case <-flushTimer.C:
			if !flush() {
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher. It is safe to call after ctx was cancelled.
func (fw *FileWatcher) Stop() error {
	return fw.watcher.Close()
}
