package main

import (
	"fmt"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"

	"github.com/spf13/cobra"
)

type checkResult struct {
	MissingFields       []string `json:"missing_fields"`
	CompletenessPercent int      `json:"completeness_percent"`
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "List the editorial fields still missing on a recipe record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record model.RecipeRecord
			if err := loadFile(args[0], &record); err != nil {
				return err
			}

			res := checkResult{
				MissingFields:       quality.MissingFields(record),
				CompletenessPercent: quality.CompletenessPercent(record),
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, res)
			}

			fmt.Fprintf(out, "Complétude : %d%%\n", res.CompletenessPercent)
			if len(res.MissingFields) == 0 {
				fmt.Fprintln(out, "Aucun champ manquant.")
				return nil
			}
			for _, label := range res.MissingFields {
				fmt.Fprintf(out, "  - %s\n", label)
			}
			return nil
		},
	}
}
