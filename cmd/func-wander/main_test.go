package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreLocal(t *testing.T) {
	dir := t.TempDir()

	store, name, err := newStore(filepath.Join(dir, "alaw.state"))
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Equal(t, "alaw.state", name)
}

func TestNewStoreS3(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	store, name, err := newStore("s3://snapshots/searches/alaw.state")
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Equal(t, "alaw.state", name)
}

func TestNewStoreS3Errors(t *testing.T) {
	_, _, err := newStore("s3://bucket-without-key")
	assert.Error(t, err)

	t.Setenv("MINIO_ENDPOINT", "")
	_, _, err = newStore("s3://bucket/key")
	assert.Error(t, err)
}
