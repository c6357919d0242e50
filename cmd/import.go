package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var importInput string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import references from a JSON export",
	Long: `Read a JSON array of references and merge it into the store.
Legacy-shaped records are migrated, invalid ones dropped, and duplicates
skipped by id or by content.

Examples:
  bunken import -i references.json
  cat references.json | bunken import`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input file (default: stdin)")
}

func runImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if importInput != "" {
		f, err := os.Open(importInput)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.ImportJSON(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d duplicates, dropped %d invalid\n",
		stats.Imported, stats.Duplicates, stats.Clean.InvalidDataRemoved)
	return nil
}
