package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reference",
	Long: `Delete one reference by id. The id may be a unique prefix of the
full record id.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	refs, err := db.List()
	if err != nil {
		return err
	}

	id := ""
	for _, r := range refs {
		if !strings.HasPrefix(r.ID, args[0]) {
			continue
		}
		if id != "" {
			return fmt.Errorf("id prefix %q is ambiguous", args[0])
		}
		id = r.ID
	}
	if id == "" {
		return fmt.Errorf("no reference with id %q", args[0])
	}
	return db.Delete(id)
}
