package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/citation"
	"github.com/bunken-app/bunken/reference"
)

var (
	listType      string
	listCitations bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the bibliography",
	Long: `Print every stored reference as a formatted bibliography entry,
sorted by author reading with year suffixes applied.

Examples:
  bunken list
  bunken list --type japanese-journal
  bunken list --citations`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Only show references of this literature type")
	listCmd.Flags().BoolVar(&listCitations, "citations", false, "Also print the inline citation form of each entry")
}

func runList(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	refs, err := db.List()
	if err != nil {
		return err
	}
	refs = reference.Sorted(reference.AddYearSuffixes(refs))

	for _, r := range refs {
		if listType != "" && string(r.Type) != listType {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, citation.FormatReference(r))
		if listCitations {
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", citation.FormatCitation(r, ""))
		}
	}
	return nil
}
