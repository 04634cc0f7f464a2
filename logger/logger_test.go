package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	lg, err := New(&buf, "warn")
	require.NoError(t, err)

	lg.Info("hidden")
	lg.Warn("shown", "file", "a.tsv")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "file=a.tsv")
}

func TestNewUnknownLevel(t *testing.T) {
	_, err := New(nil, "loud")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
