package models

import (
	"fmt"
	"strings"
	"time"
)

// CommonLogTimeLayout is the timestamp layout used inside the brackets of a Common Log Format line
const CommonLogTimeLayout = "2/Jan/2006:15:04:05 -0700"

// LogRecord is one parsed access-log line
// Used across ingestion, processing, and the generator
type LogRecord struct {
	IPAddress      string    `json:"ip_address"`
	ClientIdentity string    `json:"client_identity"` // "-" when absent
	UserID         string    `json:"user_id"`         // "-" when absent
	Time           time.Time `json:"time"`            // When the request happened (UTC)
	Method         string    `json:"method"`          // Kept as string, custom verbs are allowed
	Path           string    `json:"path"`
	Version        string    `json:"version"` // e.g. "1.0" in "HTTP/1.0"
	StatusCode     int       `json:"status_code"`
	ResponseSize   int64     `json:"response_size"`

	// ReadAt is when the tailer observed the line
	ReadAt time.Time `json:"read_at"`
}

// Section returns the first segment of the request path, or "/" when the path has none
func (r LogRecord) Section() string {
	for _, segment := range strings.Split(r.Path, "/") {
		if segment != "" {
			return segment
		}
	}
	return "/"
}

// IsError reports whether the status code is a client or server error
func (r LogRecord) IsError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 600
}

// Latency is the delay between the request and the moment its line was read
func (r LogRecord) Latency() time.Duration {
	return r.ReadAt.Sub(r.Time)
}

// String formats the record as a Common Log Format line
func (r LogRecord) String() string {
	return fmt.Sprintf("%s %s %s [%s] \"%s %s HTTP/%s\" %d %d",
		r.IPAddress,
		r.ClientIdentity,
		r.UserID,
		r.Time.Format(CommonLogTimeLayout),
		r.Method,
		r.Path,
		r.Version,
		r.StatusCode,
		r.ResponseSize,
	)
}
