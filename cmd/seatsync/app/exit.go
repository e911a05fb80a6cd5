package app

import (
	"os"

	"github.com/agentstation/seatsync/pkg/errors"
)

// Exit codes returned by the CLI. Scripts key off these to distinguish a
// pass that ran but left records failed from configuration and transport
// problems.
const (
	// ExitOK means the command completed and every record succeeded.
	ExitOK = 0
	// ExitPartialFailure means the pass completed but some records failed.
	// It is also the fallback for errors no other code claims.
	ExitPartialFailure = 1
	// ExitInvalidInput means a malformed roster, bad flag, or other
	// invalid input stopped the command.
	ExitInvalidInput = 2
	// ExitAuth means the directory rejected or never received credentials.
	ExitAuth = 3
	// ExitTransport means an I/O or network problem: unreadable files,
	// unreachable endpoints, rate limits, server errors, timeouts.
	ExitTransport = 4
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var partial *errors.PartialFailureError
	if errors.As(err, &partial) {
		return ExitPartialFailure
	}

	// Auth is checked before transport: a rejected token surfaces from the
	// same HTTP layer as other request failures.
	if errors.IsAuthError(err) {
		return ExitAuth
	}

	var parseErr *errors.ParseError
	var validationErr *errors.ValidationError
	if errors.As(err, &parseErr) || errors.As(err, &validationErr) || errors.Is(err, errors.ErrInvalidInput) {
		return ExitInvalidInput
	}

	if errors.IsIOError(err) ||
		errors.IsDirectoryUnavailable(err) ||
		errors.IsRateLimited(err) ||
		errors.IsTimeout(err) {
		return ExitTransport
	}

	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		return ExitTransport
	}

	return ExitPartialFailure
}

// ExitOnError prints an error to stderr and exits with its mapped code.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(ExitCode(err))
	}
}
