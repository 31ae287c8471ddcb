package lock

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, l.Path())

	// flock locks belong to the open file description, so a second
	// Acquire in the same process conflicts just like another process.
	_, err = Acquire(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyLocked))

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())

	l2, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, l2.Release())
}

func TestAcquire_NotADirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := Acquire(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = Acquire(file)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestReleaseLogs(t *testing.T) {
	t.Setenv(logging.EnvLogFile, "-")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	logging.SetupLoggerWithOutput(2, &console)

	l, err := Acquire(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, l.Release())

	assert.Contains(t, console.String(), "Store locked")
	assert.Contains(t, console.String(), "Store unlocked")
}
