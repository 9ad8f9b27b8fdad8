package cli

import (
	"context"
	"errors"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// Exit statuses, following sysexits(3) where one applies.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 64  // EX_USAGE: unsupported output format
	ExitConfig      = 78  // EX_CONFIG: configuration could not be resolved or loaded
	ExitInterrupted = 130 // Standard shell convention for SIGINT
)

// ExitCode maps an error returned by the root command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}

	switch perrors.GetCode(err) {
	case perrors.ErrCodeInvalidFormat:
		return ExitUsage
	case perrors.ErrCodeInvalidConfig, perrors.ErrCodeInvalidPath, perrors.ErrCodeFileNotFound:
		return ExitConfig
	default:
		return ExitError
	}
}

// Details returns the lines to print on stderr for err, one per problem.
func Details(err error) []string {
	return perrors.Details(err)
}
