package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bins.db")

	p := &Pool{}
	require.NoError(t, p.Close())

	first, err := p.Open(path)
	require.NoError(t, err)
	again, err := p.Open(path)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = p.Open(filepath.Join(dir, "other.db"))
	assert.Error(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}
