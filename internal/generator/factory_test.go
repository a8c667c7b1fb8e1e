package generator

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFactory_NextIsWellFormed(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(1)))
	now := time.Date(2024, time.March, 1, 10, 0, 0, 500, time.UTC)

	for i := 0; i < 500; i++ {
		rec := f.Next(now)
		assert.Equal(t, now.Truncate(time.Second), rec.Time)
		assert.True(t, rec.StatusCode >= 200 && rec.StatusCode < 600)
		assert.True(t, strings.HasPrefix(rec.Path, "/"))
		assert.Equal(t, "-", rec.ClientIdentity)
		assert.NotEmpty(t, rec.UserID)
	}
}

func TestFactory_StatusDistribution(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(5)))
	const draws = 100000

	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		counts[f.statusCode()]++
	}

	expected := map[int]float64{
		200: 0.75, 401: 0.20,
		404: 0.01, 400: 0.01, 302: 0.01, 500: 0.01, 503: 0.01,
	}
	assert.Len(t, counts, len(expected))
	for code, share := range expected {
		assert.InDelta(t, share, float64(counts[code])/draws, 0.003, "status %d", code)
	}
}

func TestWriter_IntervalControls(t *testing.T) {
	w := NewWriter("unused", time.Second, NewFactory(rand.New(rand.NewSource(1))), zap.NewNop().Sugar())

	assert.Equal(t, 500*time.Millisecond, w.Faster())
	assert.Equal(t, time.Second, w.Slower())
	assert.Equal(t, 2*time.Second, w.Slower())
	assert.Equal(t, 2*time.Second, w.Interval())
}

func TestWriter_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "access.log")
	w := NewWriter(path, 5*time.Millisecond, NewFactory(rand.New(rand.NewSource(7))), zap.NewNop().Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Contains(t, line, "HTTP/")
	}
}
