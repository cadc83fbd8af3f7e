// Package quality holds the editorial readiness rules for recipes: the
// completeness checker, the pre-publish validator and the difficulty templates.
// Everything here is pure and safe for concurrent use.
package quality

import (
	"recipe-admin-backend/internal/domains/recipe/model"
)

// Missing-field labels, rendered verbatim by the admin UI.
const (
	LabelPublishedStatus      = "Statut publié"
	LabelImage                = "Image"
	LabelDescription          = "Description"
	LabelIngredients          = "Ingrédients"
	LabelInstructionsDetailed = "Instructions détaillées"
	LabelCulturalHistory      = "Histoire / contexte culturel"
	LabelTechniques           = "Techniques"
	LabelNutritionalNotes     = "Notes nutritionnelles"
	LabelMetaTitle            = "Titre SEO"
	LabelMetaDescription      = "Description SEO"
	LabelTipsOrDifficulty     = "Astuces ou détails difficulté"
)

type fieldRule struct {
	label     string
	satisfied func(r model.RecipeRecord) bool
}

// completenessRules is evaluated top to bottom; the order is the display order.
var completenessRules = []fieldRule{
	{LabelPublishedStatus, func(r model.RecipeRecord) bool {
		return r.Status != nil && *r.Status == model.StatusPublished
	}},
	{LabelImage, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.ImageURL) }},
	{LabelDescription, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.Description) }},
	{LabelIngredients, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.IngredientsText) }},
	{LabelInstructionsDetailed, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.InstructionsDetailed) }},
	{LabelCulturalHistory, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.CulturalHistory) }},
	{LabelTechniques, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.Techniques) }},
	{LabelNutritionalNotes, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.NutritionalNotes) }},
	{LabelMetaTitle, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.MetaTitle) }},
	{LabelMetaDescription, func(r model.RecipeRecord) bool { return model.IsNonEmpty(r.MetaDescription) }},
	// Either one of the two fields is enough.
	{LabelTipsOrDifficulty, func(r model.RecipeRecord) bool {
		return model.IsNonEmpty(r.ChefTips) || model.IsNonEmpty(r.DifficultyDetailed)
	}},
}

// MissingFields returns the labels of the editorial/SEO fields absent from
// record, in display order. The result is never nil.
func MissingFields(record model.RecipeRecord) []string {
	missing := make([]string, 0, len(completenessRules))
	for _, rule := range completenessRules {
		if !rule.satisfied(record) {
			missing = append(missing, rule.label)
		}
	}
	return missing
}

// CompletenessPercent is the share of satisfied rules, rounded down.
func CompletenessPercent(record model.RecipeRecord) int {
	total := len(completenessRules)
	done := total - len(MissingFields(record))
	return done * 100 / total
}
