package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents a row of the recipes table
type Recipe struct {
	// Identity
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`

	// Form content
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	ImageURL     *string  `json:"image_url"`
	Difficulty   *string  `json:"difficulty"`

	// Lifecycle
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Editorial
	IngredientsText      *string `json:"ingredients_text"`
	InstructionsDetailed *string `json:"instructions_detailed"`
	CulturalHistory      *string `json:"cultural_history"`
	Techniques           *string `json:"techniques"`
	NutritionalNotes     *string `json:"nutritional_notes"`
	ChefTips             *string `json:"chef_tips"`
	DifficultyDetailed   *string `json:"difficulty_detailed"`

	// SEO
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Recipe) IsPublished() bool {
	return r.Status == StatusPublished
}

// DifficultyTier returns the recipe tier, or false when unset or unknown.
func (r *Recipe) DifficultyTier() (DifficultyTier, bool) {
	if r.Difficulty == nil {
		return "", false
	}
	tier := DifficultyTier(*r.Difficulty)
	return tier, tier.IsValid()
}

// Record returns the completeness snapshot of the stored recipe.
func (r *Recipe) Record() RecipeRecord {
	return r.FormValues().AsRecord()
}

// FormValues rebuilds the edit-form payload from the stored recipe.
func (r *Recipe) FormValues() RecipeFormValues {
	status := r.Status
	return RecipeFormValues{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Category:     r.Category,
		Tags:         r.Tags,
		ImageURL:     r.ImageURL,
		Difficulty:   r.Difficulty,
		EditorialFields: EditorialFields{
			Status:               &status,
			IngredientsText:      r.IngredientsText,
			InstructionsDetailed: r.InstructionsDetailed,
			CulturalHistory:      r.CulturalHistory,
			Techniques:           r.Techniques,
			NutritionalNotes:     r.NutritionalNotes,
			MetaTitle:            r.MetaTitle,
			MetaDescription:      r.MetaDescription,
			ChefTips:             r.ChefTips,
			DifficultyDetailed:   r.DifficultyDetailed,
		},
	}
}

// ApplyForm copies the editable fields of the form onto the recipe.
// Status is not copied: it only changes through publish/unpublish.
func (r *Recipe) ApplyForm(v RecipeFormValues) {
	r.Title = v.Title
	r.Description = v.Description
	r.Ingredients = v.Ingredients
	r.Instructions = v.Instructions
	r.Category = v.Category
	r.Tags = v.Tags
	r.ImageURL = v.ImageURL
	r.Difficulty = v.Difficulty
	r.IngredientsText = v.IngredientsText
	r.InstructionsDetailed = v.InstructionsDetailed
	r.CulturalHistory = v.CulturalHistory
	r.Techniques = v.Techniques
	r.NutritionalNotes = v.NutritionalNotes
	r.MetaTitle = v.MetaTitle
	r.MetaDescription = v.MetaDescription
	r.ChefTips = v.ChefTips
	r.DifficultyDetailed = v.DifficultyDetailed
}
