package main

import (
	"fmt"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"

	"github.com/spf13/cobra"
)

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "template <tier>",
		Short:     "Print the difficulty and chef tips templates of a tier",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"beginner", "intermediate", "advanced"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tier := model.DifficultyTier(args[0])
			difficulty, okDifficulty := quality.DifficultyTemplate(tier)
			tips, okTips := quality.ChefTipsTemplate(tier)

			out := cmd.OutOrStdout()
			if !okDifficulty && !okTips {
				// Tier không tồn tại: không phải lỗi
				fmt.Fprintf(out, "Aucun modèle pour %q.\n", args[0])
				return nil
			}

			if opts.jsonOutput {
				return writeJSON(out, model.TemplatesResponse{Tier: tier, Difficulty: difficulty, ChefTips: tips})
			}
			fmt.Fprintf(out, "Difficulté :\n%s\n\nAstuces du chef :\n%s\n", difficulty, tips)
			return nil
		},
	}
}
