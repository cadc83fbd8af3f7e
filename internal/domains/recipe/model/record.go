package model

import "strings"

// RecipeRecord is the editorial snapshot inspected by the completeness checker.
// A nil, empty or whitespace-only field counts as absent.
type RecipeRecord struct {
	Status               *string `json:"status" yaml:"status"`
	ImageURL             *string `json:"image_url" yaml:"image_url"`
	Description          *string `json:"description" yaml:"description"`
	IngredientsText      *string `json:"ingredients_text" yaml:"ingredients_text"`
	InstructionsDetailed *string `json:"instructions_detailed" yaml:"instructions_detailed"`
	CulturalHistory      *string `json:"cultural_history" yaml:"cultural_history"`
	Techniques           *string `json:"techniques" yaml:"techniques"`
	NutritionalNotes     *string `json:"nutritional_notes" yaml:"nutritional_notes"`
	MetaTitle            *string `json:"meta_title" yaml:"meta_title"`
	MetaDescription      *string `json:"meta_description" yaml:"meta_description"`
	ChefTips             *string `json:"chef_tips" yaml:"chef_tips"`
	DifficultyDetailed   *string `json:"difficulty_detailed" yaml:"difficulty_detailed"`
}

// DerivedCounts are produced by the enrichment pipelines and only consumed here.
type DerivedCounts struct {
	NormalizedIngredientsCount int `json:"normalized_ingredients_count" yaml:"normalized_ingredients_count"`
	EnrichedStepsCount         int `json:"enriched_steps_count" yaml:"enriched_steps_count"`
	ConceptsCount              int `json:"concepts_count" yaml:"concepts_count"`
}

// DifficultyTier is the lookup key for the canned difficulty and chef-tips texts.
type DifficultyTier string

const (
	DifficultyBeginner     DifficultyTier = "beginner"
	DifficultyIntermediate DifficultyTier = "intermediate"
	DifficultyAdvanced     DifficultyTier = "advanced"
)

func (t DifficultyTier) IsValid() bool {
	switch t {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (t DifficultyTier) String() string {
	return string(t)
}

// IsNonEmpty reports whether s holds something other than whitespace.
func IsNonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
