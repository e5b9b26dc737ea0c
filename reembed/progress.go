package reembed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports reembedding progress to a writer, printing a
// carriage-return line every reportInterval grants.
type ProgressTracker struct {
	mu sync.Mutex

	writer         io.Writer
	total          int
	done           int
	reportInterval int
	nextReport     int
	startTime      time.Time
	started        bool
}

// NewProgressTracker creates a tracker for total grants that reports every
// reportInterval grants. writer is typically os.Stderr.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start resets the tracker and records the start time.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.done = 0
	p.nextReport = p.reportInterval
}

// Update records that done grants have been processed so far. A report is
// printed when the count crosses the next interval boundary.
func (p *ProgressTracker) Update(done int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	if done > p.total {
		done = p.total
	}
	p.done = done

	if p.done >= p.nextReport {
		p.report()
		p.nextReport = p.done + p.reportInterval
	}
}

// Finish prints the final progress line and terminates it with a newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.done = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start. Zero if tracking never started.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report writes the progress line. Caller holds the lock.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.done) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f grants/s",
		p.done, p.total, percentage, rate)
}
