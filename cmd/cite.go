package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/citation"
	"github.com/bunken-app/bunken/reference"
)

var citePage string

var citeCmd = &cobra.Command{
	Use:   "cite <id>",
	Short: "Print the inline citation for a reference",
	Long: `Print the parenthetical citation for one reference, with year
suffixes computed over the whole bibliography so ambiguous author-year
pairs stay distinguishable.

The id may be a unique prefix of the full record id.

Examples:
  bunken cite 4f3a0c1e
  bunken cite 4f3a0c1e --page 45-58`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	citeCmd.Flags().StringVarP(&citePage, "page", "p", "", "Page or page range to cite")
}

func runCite(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	refs, err := db.List()
	if err != nil {
		return err
	}
	refs = reference.AddYearSuffixes(refs)

	var match *reference.Reference
	for i := range refs {
		if !strings.HasPrefix(refs[i].ID, args[0]) {
			continue
		}
		if match != nil {
			return fmt.Errorf("id prefix %q is ambiguous", args[0])
		}
		match = &refs[i]
	}
	if match == nil {
		return fmt.Errorf("no reference with id %q", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), citation.FormatCitation(*match, citePage))
	return nil
}
