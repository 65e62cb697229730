package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vault-cli/bwimport/internal/store"
)

var importVaultPath string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Convert an export and write it into a local vault",
	Long: `Convert a Bitwarden export and import the resulting tree into a
local encrypted vault file.

A new vault file is initialized with a fresh passphrase; importing into an
existing vault requires its passphrase. The import is all-or-nothing: on
any error nothing is written.

Example:
  bwimport import export.json
  bwimport import export.json --vault ~/secrets/work.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func init() {
	importCmd.Flags().StringVar(&importVaultPath, "vault", "", "Vault file path (default from config)")
	importCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the export password from stdin")
}

func runImport(filePath string) error {
	tree, err := convertExport(filePath)
	if err != nil {
		return err
	}

	vaultPath := importVaultPath
	if vaultPath == "" {
		vaultPath = cfg.VaultPath
	}

	var dest *store.Store
	if _, err := os.Stat(vaultPath); err == nil {
		passphrase, err := PromptPassword("Vault passphrase: ")
		if err != nil {
			return err
		}
		dest, err = store.Open(vaultPath, passphrase)
		if err != nil {
			return err
		}
	} else {
		passphrase, err := PromptPasswordConfirm("New vault passphrase: ")
		if err != nil {
			return err
		}
		params := store.KDFParams{
			Memory:      cfg.KDF.Memory,
			Iterations:  cfg.KDF.Iterations,
			Parallelism: cfg.KDF.Parallelism,
		}
		if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 {
			params = store.DefaultKDFParams()
		}
		dest, err = store.Create(vaultPath, passphrase, params)
		if err != nil {
			return err
		}
	}
	defer dest.Close()

	if err := dest.ImportTree(tree); err != nil {
		return fmt.Errorf("failed to import into vault: %w", err)
	}

	log.Debug().Str("vault", vaultPath).Msg("import committed")
	fmt.Printf("Imported %d groups and %d entries into %s\n",
		len(tree.Root.Groups), tree.EntryCount(), vaultPath)
	return nil
}
