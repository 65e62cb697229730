package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vault-cli/bwimport/internal/bitwarden"
	"github.com/vault-cli/bwimport/internal/domain"
)

var (
	convertFormat      string
	convertShowSecrets bool
	passwordStdin      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert an export and print the resulting tree",
	Long: `Convert a Bitwarden export without importing it anywhere.

The export password is prompted only when the file is an encrypted
container. Secrets are redacted from the output unless --show-secrets is
given or show_secrets is set in the config.

Example:
  bwimport convert export.json
  bwimport convert export.json --format json
  echo "$BW_PASSWORD" | bwimport convert export.json --password-stdin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format (summary|json)")
	convertCmd.Flags().BoolVar(&convertShowSecrets, "show-secrets", false, "Include secrets in the output")
	convertCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the export password from stdin")
}

func runConvert(filePath string) error {
	tree, err := convertExport(filePath)
	if err != nil {
		return err
	}

	format := convertFormat
	if format == "" {
		format = cfg.OutputFormat
	}

	switch format {
	case "json":
		if !convertShowSecrets && !cfg.ShowSecrets {
			redactTree(tree)
		}
		out, err := json.MarshalIndent(tree.Root, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tree: %w", err)
		}
		fmt.Println(string(out))
	default:
		printSummary(tree)
	}
	return nil
}

// convertExport runs the full pipeline for a file, prompting for the export
// password only when the container is encrypted.
func convertExport(filePath string) (*domain.Tree, error) {
	data, err := readExport(filePath)
	if err != nil {
		return nil, err
	}

	encrypted, err := bitwarden.IsEncrypted(data)
	if err != nil {
		return nil, err
	}

	password := ""
	if encrypted {
		password, err = exportPassword(passwordStdin)
		if err != nil {
			return nil, err
		}
	}

	return bitwarden.Convert(data, password)
}

func printSummary(tree *domain.Tree) {
	fmt.Printf("%s\n", tree.Root.Name)
	if len(tree.Root.Entries) > 0 {
		fmt.Printf("  (root): %d entries\n", len(tree.Root.Entries))
	}
	for _, group := range tree.Root.Groups {
		fmt.Printf("  %s: %d entries\n", group.Name, len(group.Entries))
	}
	fmt.Printf("Total: %d groups, %d entries\n", len(tree.Root.Groups), tree.EntryCount())
}

const redacted = "[protected]"

func redactTree(tree *domain.Tree) {
	redactEntries(tree.Root.Entries)
	for _, group := range tree.Root.Groups {
		redactEntries(group.Entries)
	}
}

func redactEntries(entries []*domain.Entry) {
	for _, entry := range entries {
		if entry.Password != "" {
			entry.Password = redacted
		}
		for i := range entry.Attributes {
			if entry.Attributes[i].Protected {
				entry.Attributes[i].Value = redacted
			}
		}
		if entry.TOTP != nil {
			entry.TOTP.Secret = redacted
		}
	}
}
