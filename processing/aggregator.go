package processing

import (
	"sort"
	"time"

	"logpulse/internal/models"
)

// Logger is the leveled logging capability injected into processing components.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// WindowConfig holds the fixed window parameters of an Aggregator
type WindowConfig struct {
	ShortWindow    time.Duration // Summary interval, also the lateness limit for a record
	LongWindow     time.Duration // Span of the volume alert window
	AlertThreshold int           // Alert when the long window holds more records than this
	TopSections    int           // Number of sections listed in a summary
}

// fifo is the queue behaviour the aggregator relies on. *Queue satisfies it.
type fifo[T any] interface {
	Push(v T)
	Peek() (T, bool)
	Pop() (T, bool)
	Len() int
	Walk(skip int, fn func(T) bool)
}

// Aggregator keeps two sliding windows over the parsed record stream.
//
// AddEntry is called from the ingestion goroutine only; GenerateSummary and GenerateAlert
// from the reporting goroutine only. The bookkeeping fields below belong to the reporting side.
type Aggregator struct {
	cfg    WindowConfig
	logger Logger

	shortQueue fifo[models.LogRecord] // Full records, drained by GenerateSummary
	longQueue  fifo[time.Time]        // Event times only, drained by GenerateAlert

	previousLongCount int  // Long window count at the end of the previous GenerateAlert
	alerting          bool // Whether the volume alert is active
}

// NewAggregator creates an Aggregator with empty windows
func NewAggregator(cfg WindowConfig, logger Logger) *Aggregator {
	if cfg.TopSections <= 0 {
		cfg.TopSections = 3
	}
	return &Aggregator{
		cfg:        cfg,
		logger:     logger,
		shortQueue: NewQueue[models.LogRecord](),
		longQueue:  NewQueue[time.Time](),
	}
}

// Config returns the window parameters
func (a *Aggregator) Config() WindowConfig {
	return a.cfg
}

// AddEntry appends a record to both windows. It never blocks on the reporting side
// beyond the queue's short critical section.
func (a *Aggregator) AddEntry(rec models.LogRecord) {
	a.shortQueue.Push(rec)
	a.longQueue.Push(rec.Time)
}

// GenerateSummary drains every record with an event time before current and summarises
// those in [previous, current). Records older than previous are dropped without being
// counted. Callers must pass previous < current.
func (a *Aggregator) GenerateSummary(previous, current time.Time) models.SummaryReport {
	sections := newTally[string]()
	codes := newTally[int]()
	report := models.SummaryReport{From: previous, To: current}

	for {
		rec, ok := a.shortQueue.Peek()
		if !ok {
			break
		}

		if !rec.Time.Before(current) {
			// Belongs to a future cycle
			break
		}

		if _, ok := a.shortQueue.Pop(); !ok {
			a.logger.Errorf("CRITICAL: short window head vanished between peek and dequeue (event time %s)", rec.Time)
			continue
		}

		if rec.Time.Before(previous) {
			if rec.Latency() > a.cfg.ShortWindow {
				report.LateRecords++
				a.logger.Warnf("Log item has time %s, but was processed at %s", rec.Time, rec.ReadAt)
			}
			continue
		}

		report.Processed++
		sections.add(rec.Section())
		if rec.IsError() {
			codes.add(rec.StatusCode)
		}
	}

	report.TopSections = sections.top(a.cfg.TopSections)
	report.ErrorCodes = codes.top(0)

	a.logger.Debugf("Read %d log lines in the interval %s to %s", report.Processed, previous, current)
	return report
}

// GenerateAlert counts the long window [previous, current) incrementally and applies the
// edge-triggered alert/recovery transition. Callers must pass previous < current.
//
// Only the elements leaving the window (before previous) and those entering it (between
// the end of the previously counted run and current) are inspected.
func (a *Aggregator) GenerateAlert(previous, current time.Time) models.AlertReport {
	removed := 0
	for {
		ts, ok := a.longQueue.Peek()
		if !ok || !ts.Before(previous) {
			break
		}
		if _, ok := a.longQueue.Pop(); !ok {
			a.logger.Errorf("CRITICAL: long window head vanished between peek and dequeue (event time %s)", ts)
			continue
		}
		removed++
	}

	// Elements counted last cycle and still in the window need no re-inspection
	skip := a.previousLongCount - removed
	if skip < 0 {
		skip = 0
	}

	fresh := 0
	a.longQueue.Walk(skip, func(ts time.Time) bool {
		if !ts.Before(current) {
			return false
		}
		fresh++
		return true
	})

	count := skip + fresh
	a.logger.Debugf("Long window: queue=%d prevCount=%d removed=%d new=%d prevInterval=%s current=%s",
		a.longQueue.Len(), a.previousLongCount, removed, fresh, previous, current)
	a.previousLongCount = count

	report := models.AlertReport{
		From:       previous,
		To:         current,
		Count:      count,
		Threshold:  a.cfg.AlertThreshold,
		Transition: models.TransitionNone,
	}

	switch {
	case count > a.cfg.AlertThreshold && !a.alerting:
		a.alerting = true
		report.Transition = models.TransitionAlert
	case count <= a.cfg.AlertThreshold && a.alerting:
		a.alerting = false
		report.Transition = models.TransitionRecovered
	}
	report.Alerting = a.alerting

	return report
}

// tally counts keys and remembers the order in which they were first seen
type tally[K comparable] struct {
	order  []K
	counts map[K]int
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(key K) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns up to limit entries by descending count, ties in first-seen order.
// limit <= 0 returns every entry.
func (t *tally[K]) top(limit int) []models.Count[K] {
	out := make([]models.Count[K], 0, len(t.order))
	for _, key := range t.order {
		out = append(out, models.Count[K]{Key: key, Count: t.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
