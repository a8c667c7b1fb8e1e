package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, lvl, err := NewLogger("warn", &buf)
	require.NoError(t, err)

	log.Infof("hidden %d", 1)
	log.Warnf("shown %d", 2)
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "WARN")

	lvl.SetLevel(zapcore.DebugLevel)
	log.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, _, err := NewLogger("loud", &bytes.Buffer{})
	assert.Error(t, err)
}
