package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// Exit codes for gomdsite.
const (
	// ExitSuccess indicates every page was built.
	ExitSuccess = 0

	// ExitBuildFailures indicates the build finished but some pages failed.
	ExitBuildFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or template errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrBuildFailed is returned when one or more pages failed to build.
	ErrBuildFailed = errors.New("build finished with failures")

	// ErrUsage marks bad flags, arguments or commands.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBuildFailed):
		return ExitBuildFailures
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig), errors.Is(err, site.ErrTemplate):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, build.ErrWriteFailure),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
