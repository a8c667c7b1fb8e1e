package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"logpulse/internal/models"
)

// ErrMalformedLine is returned for any line that does not match the Common Log Format
var ErrMalformedLine = errors.New("malformed log line")

// Sample input:
// 22.241.69.198 - - [4/Apr/2018:01:19:38 -0700] "GET /api/v1/Products HTTP/1.0" 400 256
//
// The request is split lazily on the first "/" after the path, so a path whose tail
// looks like "/XX" before the version is ambiguous. This is a known limitation.
var commonLogPattern = regexp.MustCompile(
	`^([\d.]+) (\S+) (\S+) \[([\w:/]+\s[+\-]\d{4})\] "(.+?) (.+?) (.+?)/(.+?)" (\d{3}) (\d+)`,
)

// Parser turns raw lines into LogRecords
type Parser interface {
	Parse(line string, readAt time.Time) (models.LogRecord, error)
}

// CommonLogParser parses lines in the Common Log Format
type CommonLogParser struct{}

// NewCommonLogParser creates a new CommonLogParser
func NewCommonLogParser() *CommonLogParser {
	return &CommonLogParser{}
}

// Parse converts a single line; the record is never partially filled on failure
func (p *CommonLogParser) Parse(line string, readAt time.Time) (models.LogRecord, error) {
	m := commonLogPattern.FindStringSubmatch(line)
	if m == nil {
		return models.LogRecord{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	eventTime, err := time.Parse(models.CommonLogTimeLayout, m[4])
	if err != nil {
		return models.LogRecord{}, fmt.Errorf("%w: bad timestamp %q in %q", ErrMalformedLine, m[4], line)
	}

	status, err := strconv.Atoi(m[9])
	if err != nil || status < 100 || status > 599 {
		return models.LogRecord{}, fmt.Errorf("%w: bad status %q in %q", ErrMalformedLine, m[9], line)
	}

	size, err := strconv.ParseInt(m[10], 10, 64)
	if err != nil {
		return models.LogRecord{}, fmt.Errorf("%w: bad size %q in %q", ErrMalformedLine, m[10], line)
	}

	// m[7] is the protocol name ("HTTP")
	return models.LogRecord{
		IPAddress:      m[1],
		ClientIdentity: m[2],
		UserID:         m[3],
		Time:           eventTime.UTC(),
		Method:         m[5],
		Path:           m[6],
		Version:        m[8],
		StatusCode:     status,
		ResponseSize:   size,
		ReadAt:         readAt,
	}, nil
}

var _ Parser = (*CommonLogParser)(nil)
