package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vault-cli/bwimport/internal/clipboard"
	"github.com/vault-cli/bwimport/internal/domain"
)

var (
	showSecret bool
	copySecret bool
)

var showCmd = &cobra.Command{
	Use:   "show <file> <title>",
	Short: "Show one converted entry",
	Long: `Convert an export and display a single entry by title, without
importing anything.

The password stays hidden unless --show is given. With --copy the password
goes to the clipboard instead and is cleared after the configured TTL.

Example:
  bwimport show export.json "GitHub"
  bwimport show export.json "GitHub" --copy`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(args[0], args[1])
	},
}

func init() {
	showCmd.Flags().BoolVar(&showSecret, "show", false, "Show the password in the terminal")
	showCmd.Flags().BoolVar(&copySecret, "copy", false, "Copy the password to the clipboard")
	showCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the export password from stdin")
}

func runShow(filePath, title string) error {
	tree, err := convertExport(filePath)
	if err != nil {
		return err
	}

	entry := tree.FindEntry(title)
	if entry == nil {
		return fmt.Errorf("entry %q not found in export", title)
	}

	printEntry(entry)

	if copySecret {
		if !clipboard.IsAvailable() {
			return fmt.Errorf("clipboard is not available")
		}
		if err := clipboard.CopyWithTimeout(entry.Password, cfg.ClipboardTTL); err != nil {
			return err
		}
		fmt.Printf("Password copied to clipboard, clearing in %s\n", cfg.ClipboardTTL)
	}
	return nil
}

func printEntry(entry *domain.Entry) {
	fmt.Printf("Title:    %s\n", entry.Title)
	if entry.Username != "" {
		fmt.Printf("Username: %s\n", entry.Username)
	}
	if entry.Password != "" {
		password := redacted
		if showSecret || cfg.ShowSecrets {
			password = entry.Password
		}
		fmt.Printf("Password: %s\n", password)
	}
	if entry.URL != "" {
		fmt.Printf("URL:      %s\n", entry.URL)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:     %v\n", entry.Tags)
	}
	if entry.Notes != "" {
		fmt.Printf("Notes:    %s\n", entry.Notes)
	}
	for _, attr := range entry.Attributes {
		value := attr.Value
		if attr.Protected && !showSecret && !cfg.ShowSecrets {
			value = redacted
		}
		fmt.Printf("%s: %s\n", attr.Key, value)
	}
	if entry.TOTP != nil {
		if code, err := entry.TOTP.GenerateCode(time.Now()); err == nil {
			fmt.Printf("TOTP:     %s\n", code)
		}
	}
}
