package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/vault-cli/bwimport/internal/bitwarden"
)

// PromptPassword prompts for a password without echoing to the terminal.
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// PromptPasswordConfirm prompts for a password and a confirmation.
func PromptPasswordConfirm(prompt string) (string, error) {
	password, err := PromptPassword(prompt)
	if err != nil {
		return "", err
	}
	confirm, err := PromptPassword("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", fmt.Errorf("passphrases do not match")
	}
	return password, nil
}

// readExport loads the export file, reporting a missing or unreadable file
// as a source-unavailable conversion error.
func readExport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bitwarden.ErrSourceUnavailable, err)
	}
	return data, nil
}

// exportPassword obtains the export password: from stdin when requested,
// otherwise via an interactive no-echo prompt. Only called for encrypted
// containers.
func exportPassword(fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	return PromptPassword("Export password: ")
}
