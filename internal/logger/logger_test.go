package logger_test

import (
	"bytes"
	"testing"

	"github.com/saadjs/healthy-cli/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestNewRespectsDebugLevel(t *testing.T) {
	t.Parallel()
	var quiet bytes.Buffer
	l := logger.New(&quiet, false)
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")
	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")
	assert.Contains(t, quiet.String(), "k=v")

	var verbose bytes.Buffer
	d := logger.New(&verbose, true)
	d.Debug().Msg("visible")
	assert.Contains(t, verbose.String(), "visible")
}
