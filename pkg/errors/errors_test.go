// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "store directory not found",
			wantStr: "[NOT_FOUND] store directory not found",
		},
		{
			name:    "already_locked",
			code:    errors.ErrAlreadyLocked,
			message: "package db already locked",
			wantStr: "[ALREADY_LOCKED] package db already locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrManifestRead, "reading"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrManifestRead, "reading %s", "foo"))
	})

	t.Run("wrapped error is reachable", func(t *testing.T) {
		err := errors.Wrapf(os.ErrNotExist, errors.ErrManifestRead, "cannot read %s", "foo#1.0")

		assert.Equal(t, "[MANIFEST_READ] cannot read foo#1.0: file does not exist", err.Error())
		assert.True(t, stderrors.Is(err, os.ErrNotExist))
	})
}

func TestIsMatchesByCode(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrLock, "flock")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrLock, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrAlreadyLocked, "")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrLock))
	assert.Equal(t, errors.ErrLock, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrMalformedManifest, "malformed pkg file").
		WithDetail("line", 3).
		WithDetails(map[string]interface{}{"path": "/var/pkg/foo"})

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 3, details["line"])
	assert.Equal(t, "/var/pkg/foo", details["path"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestNewCollision(t *testing.T) {
	t.Run("single path", func(t *testing.T) {
		err := errors.NewCollision("bar", []string{"bin/foo"})

		assert.Equal(t, errors.ErrCollision, err.Code)
		assert.Contains(t, err.Error(), "bin/foo")
		assert.Equal(t, []string{"bin/foo"}, errors.CollisionPaths(err))
	})

	t.Run("all paths kept and sorted", func(t *testing.T) {
		err := errors.NewCollision("bar", []string{"usr/lib/b", "bin/a", "etc/c"})

		assert.Equal(t, []string{"bin/a", "etc/c", "usr/lib/b"}, errors.CollisionPaths(err))
		assert.Contains(t, err.Error(), "3 existing file(s)")
	})

	t.Run("not a collision", func(t *testing.T) {
		assert.Nil(t, errors.CollisionPaths(errors.New(errors.ErrInternal, "x")))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, errors.ExitCode(nil))
	assert.Equal(t, 1, errors.ExitCode(errors.New(errors.ErrCollision, "x")))
}

func TestReport(t *testing.T) {
	err := errors.Newf(errors.ErrPackageNotFound, "package %s not installed", "foo").WithDetail("package", "foo")
	report := errors.Report(err)
	assert.Equal(t, errors.ErrPackageNotFound, report.Code)
	assert.Equal(t, "[PACKAGE_NOT_FOUND] package foo not installed", report.Message)
	assert.Equal(t, "foo", report.Details["package"])

	plain := errors.Report(stderrors.New("boom"))
	assert.Equal(t, errors.ErrUnknown, plain.Code)
	assert.Nil(t, plain.Details)
}
