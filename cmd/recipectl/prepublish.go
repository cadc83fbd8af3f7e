package main

import (
	"fmt"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"

	"github.com/spf13/cobra"
)

type prePublishResult struct {
	Counts     model.DerivedCounts `json:"counts"`
	Issues     []string            `json:"issues"`
	CanPublish bool                `json:"can_publish"`
}

func newPrePublishCmd(opts *rootOptions) *cobra.Command {
	var counts model.DerivedCounts

	cmd := &cobra.Command{
		Use:   "prepublish <file>",
		Short: "Run the pre-publish validation on recipe form values",
		Long: `Run the pre-publish validation on recipe form values.

The derived counts come from the enrichment pipelines and are passed as flags.
Exits with status 1 when at least one issue is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if counts.NormalizedIngredientsCount < 0 || counts.EnrichedStepsCount < 0 || counts.ConceptsCount < 0 {
				return fmt.Errorf("counts must be non-negative")
			}

			var values model.RecipeFormValues
			if err := loadFile(args[0], &values); err != nil {
				return err
			}

			issues := quality.PrePublishIssues(values, counts)
			res := prePublishResult{Counts: counts, Issues: issues, CanPublish: len(issues) == 0}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else if res.CanPublish {
				fmt.Fprintln(out, "Prêt pour publication.")
			} else {
				for _, issue := range issues {
					fmt.Fprintf(out, "✗ %s\n", issue)
				}
			}

			if !res.CanPublish {
				return errNotPublishable
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&counts.NormalizedIngredientsCount, "ingredients", 0, "Number of normalized ingredients")
	cmd.Flags().IntVar(&counts.EnrichedStepsCount, "steps", 0, "Number of enriched steps")
	cmd.Flags().IntVar(&counts.ConceptsCount, "concepts", 0, "Number of linked scientific concepts")
	return cmd
}
