package watcher

import (
	"context"
	"slices"
	"time"

	"github.com/ritzau/electre-kernel/pkg/logging"
)

// Debouncer batches rapid file system events to avoid excessive re-runs.
// Every batch is released as a single merged ChangeAnalysis.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan *ChangeAnalysis
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer.
// Events are released after quietPeriod without new input, or after maxWait
// since the first held event, whichever comes first.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan *ChangeAnalysis, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run processes events and applies debouncing logic
func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quiet      <-chan time.Time
		deadline   <-chan time.Time
		pending    *ChangeAnalysis
		eventCount int
	)

	flush := func() {
		quiet, deadline = nil, nil
		if pending == nil {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount, "reload_config", pending.NeedReloadConfig)

		slices.Sort(pending.ChangedFiles)
		pending.ChangedFiles = slices.Compact(pending.ChangedFiles)
		select {
		case d.output <- pending:
		case <-ctx.Done():
		}

		pending = nil
		eventCount = 0
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			analysis := AnalyzeChanges(event)
			if pending == nil {
				pending = analysis
			} else {
				pending.Merge(analysis)
			}
			eventCount++

			// Restart the quiet period, start the deadline on the first event
			quiet = time.After(d.quietPeriod)
			if deadline == nil {
				deadline = time.After(d.maxWait)
			}

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}

// Output returns the channel of debounced change analyses
func (d *Debouncer) Output() <-chan *ChangeAnalysis {
	return d.output
}
