// Package generator produces synthetic access-log records for exercising the monitor.
package generator

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"logpulse/internal/models"
)

var (
	users = []string{
		`page\jimmy`, `plant\robert`, `jones\john`, `bonham\john`,
		`mercury\freddie`, `may\brian`, `taylor\roger`, `deacon\john`,
	}
	methods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions,
	}
	knownPaths = []string{
		"/api/v1/Customers", "/api/v1/Orders", "/api/v1/Invoices", "/api/v1/Users", "/api/v1/Products",
		"/api/v2/Customers", "/api/v2/Orders", "/api/v2/Invoices", "/api/v2/Users", "/api/v2/Products",
	}
	versions = []string{"1.0", "1.1"}
)

const spamPath = "/xyzSPAMxyz"

// Factory builds random LogRecords. It is not safe for concurrent use.
type Factory struct {
	rnd *rand.Rand
}

// NewFactory creates a Factory drawing from rnd
func NewFactory(rnd *rand.Rand) *Factory {
	return &Factory{rnd: rnd}
}

// Next returns a random record stamped with now (truncated to the second, in UTC)
func (f *Factory) Next(now time.Time) models.LogRecord {
	ip := fmt.Sprintf("%d.%d.%d.%d", f.rnd.Intn(256), f.rnd.Intn(256), f.rnd.Intn(256), f.rnd.Intn(256))

	// Roughly half of the requests are authenticated
	user := "-"
	if f.rnd.Intn(100) > 50 {
		user = users[f.rnd.Intn(len(users))]
	}

	path := spamPath
	if f.rnd.Intn(100) < 90 {
		path = knownPaths[f.rnd.Intn(len(knownPaths))]
	}

	return models.LogRecord{
		IPAddress:      ip,
		ClientIdentity: "-",
		UserID:         user,
		Time:           now.UTC().Truncate(time.Second),
		Method:         methods[f.rnd.Intn(len(methods))],
		Path:           path,
		Version:        versions[f.rnd.Intn(len(versions))],
		StatusCode:     f.statusCode(),
		ResponseSize:   int64(f.rnd.Intn(4096)),
	}
}

// statusCode follows a mostly-healthy API: 75% 200, 20% 401, 1% each of 404, 400, 302, 500, 503
func (f *Factory) statusCode() int {
	v := f.rnd.Intn(100)
	switch {
	case v < 75:
		return http.StatusOK
	case v < 95:
		return http.StatusUnauthorized
	case v < 96:
		return http.StatusNotFound
	case v < 97:
		return http.StatusBadRequest
	case v < 98:
		return http.StatusFound
	case v < 99:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}
