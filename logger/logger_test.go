package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debugw("located files", "count", 3)
	log.Infow("scan done")
	assert.Empty(t, buf.String())

	log.Warnw("config ignored")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "config ignored")
}

func TestNew_VerboseWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debugw("located files", "count", 3)
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "check-style-tokens")
	assert.Contains(t, buf.String(), `"count": 3`)
}

func TestNew_ErrorsIncludeStacktrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Errorw("lint run aborted", "error", errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "logger_test.go")
}
