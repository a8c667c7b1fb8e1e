package service

import (
	"context"
	"sync/atomic"

	"logpulse/ingestion/parser"
	"logpulse/ingestion/tailer"
	"logpulse/internal/models"
)

// LineSource delivers raw lines. *tailer.Tailer satisfies it.
type LineSource interface {
	Run(ctx context.Context, emit func(tailer.Line)) error
}

// RecordSink accepts parsed records. *processing.Aggregator satisfies it.
type RecordSink interface {
	AddEntry(rec models.LogRecord)
}

// Logger is the logging capability used by the Service
type Logger interface {
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Stats is a snapshot of the ingestion counters
type Stats struct {
	LinesRead     int64 `json:"lines_read"`
	RecordsParsed int64 `json:"records_parsed"`
	LinesDropped  int64 `json:"lines_dropped"`
}

// Service moves lines from the source through the parser into the sink
type Service struct {
	source LineSource
	parser parser.Parser
	sink   RecordSink
	logger Logger

	linesRead     atomic.Int64
	recordsParsed atomic.Int64
	linesDropped  atomic.Int64
}

// NewService creates a new Service instance
func NewService(src LineSource, p parser.Parser, sink RecordSink, l Logger) *Service {
	return &Service{
		source: src,
		parser: p,
		sink:   sink,
		logger: l,
	}
}

// Run ingests until ctx is cancelled or the source fails. Malformed lines are logged and
// dropped; they never stop ingestion.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Infof("Ingestion started")
	err := s.source.Run(ctx, s.handleLine)
	st := s.Stats()
	s.logger.Infof("Ingestion stopped: read=%d parsed=%d dropped=%d", st.LinesRead, st.RecordsParsed, st.LinesDropped)
	return err
}

func (s *Service) handleLine(line tailer.Line) {
	s.linesRead.Add(1)

	rec, err := s.parser.Parse(line.Text, line.ReadAt)
	if err != nil {
		s.linesDropped.Add(1)
		s.logger.Warnf("Dropping line: %v", err)
		return
	}

	s.recordsParsed.Add(1)
	s.sink.AddEntry(rec)
}

// Stats returns the current counters
func (s *Service) Stats() Stats {
	return Stats{
		LinesRead:     s.linesRead.Load(),
		RecordsParsed: s.recordsParsed.Load(),
		LinesDropped:  s.linesDropped.Load(),
	}
}
