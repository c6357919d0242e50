package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/reference"
)

var addInput string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reference from JSON",
	Long: `Read one reference object, or an array of them, from a file or
stdin and store it. Legacy-shaped records are migrated on the way in and
duplicates are rejected.

Examples:
  bunken add -i book.json
  bunken lookup isbn 9784276110168 --type japanese-book | bunken add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addInput, "input", "i", "", "Input file (default: stdin)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if addInput != "" {
		f, err := os.Open(addInput)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	var incoming []reference.Reference
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &incoming); err != nil {
			return fmt.Errorf("decoding input: %w", err)
		}
	} else {
		var one reference.Reference
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return fmt.Errorf("decoding input: %w", err)
		}
		incoming = []reference.Reference{one}
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	existing, err := db.List()
	if err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)
	for _, r := range incoming {
		if !r.Type.Valid() {
			return fmt.Errorf("unknown literature type %q", r.Type)
		}
		r = reference.Migrate(r)
		if reference.IsDuplicate(existing, r) {
			return fmt.Errorf("reference %q already exists", r.Title)
		}
		r.ID = uuid.NewString()
		r.CreatedAt = now
		r.UpdatedAt = now
		if err := db.Put(r); err != nil {
			return err
		}
		existing = append(existing, r)
		fmt.Fprintln(cmd.OutOrStdout(), r.ID)
	}
	return nil
}
