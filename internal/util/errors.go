// Package util provides shared error handling and process exit helpers.
package util

import (
	"errors"
	"fmt"
	"os"

	"github.com/vault-cli/bwimport/internal/bitwarden"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitInvalidInput  = 2
	ExitWrongPassword = 3
)

// ExitWithCode exits the program with the specified code and message.
func ExitWithCode(code int, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	os.Exit(code)
}

// HandleError prints the error and exits with a code derived from its kind.
func HandleError(err error, context string) {
	if err == nil {
		return
	}

	code := ExitError
	switch {
	case errors.Is(err, bitwarden.ErrWrongPassword):
		code = ExitWrongPassword
	case errors.Is(err, bitwarden.ErrSourceUnavailable),
		errors.Is(err, bitwarden.ErrMalformedContainer),
		errors.Is(err, bitwarden.ErrUnprotectedExport):
		code = ExitInvalidInput
	}

	if context != "" {
		ExitWithCode(code, "Error: %s - %v", context, err)
	} else {
		ExitWithCode(code, "Error: %v", err)
	}
}

// WrapError wraps an error with additional context.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
