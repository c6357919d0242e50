package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/config"
	"github.com/bunken-app/bunken/lookup"
	"github.com/bunken-app/bunken/lookup/cinii"
	"github.com/bunken-app/bunken/lookup/ndl"
	"github.com/bunken-app/bunken/reference"
)

var lookupType string

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Fetch bibliographic metadata from NDL or CiNii",
}

var lookupISBNCmd = &cobra.Command{
	Use:   "isbn <isbn>",
	Short: "Look up a book by ISBN via NDL Search",
	Long: `Query NDL Search for a book and print the pre-filled draft as
JSON. With --type the draft is converted into a full reference record,
ready to pipe into bunken add.

Examples:
  bunken lookup isbn 9784276110168
  bunken lookup isbn 978-4-276-11016-8 --type japanese-book | bunken add`,
	Args: cobra.ExactArgs(1),
	RunE: runLookupISBN,
}

var lookupTitleCmd = &cobra.Command{
	Use:   "title <query>",
	Short: "Search journal articles by title via CiNii",
	Long: `Search CiNii Research for journal articles and print the matching
drafts as a JSON array.

Examples:
  bunken lookup title 音楽教育
  bunken lookup title "音楽 リズム 認知"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookupTitle,
}

func init() {
	lookupISBNCmd.Flags().StringVarP(&lookupType, "type", "t", "", "Convert the draft to a reference of this literature type")
	lookupCmd.AddCommand(lookupISBNCmd)
	lookupCmd.AddCommand(lookupTitleCmd)
}

func runLookupISBN(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LookupTimeout)
	defer cancel()

	profile, err := lookup.LoadProfile("ndl")
	if err != nil {
		return err
	}
	payload, err := ndl.NewClient().LookupISBN(ctx, args[0])
	if err != nil {
		return err
	}
	draft := profile.Apply(payload)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if lookupType == "" {
		return enc.Encode(draft)
	}
	t := reference.Type(lookupType)
	if !t.Valid() {
		return fmt.Errorf("unknown literature type %q", lookupType)
	}
	return enc.Encode(draft.Reference(t))
}

func runLookupTitle(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LookupTimeout)
	defer cancel()

	profile, err := lookup.LoadProfile("cinii")
	if err != nil {
		return err
	}
	client := cinii.NewClient(cinii.WithAppID(cfg.CiNiiAppID))
	payloads, err := client.SearchTitle(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	drafts := make([]*lookup.Draft, 0, len(payloads))
	for _, p := range payloads {
		drafts = append(drafts, profile.Apply(p))
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(drafts)
}
