package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// FORM VALUES (CREATE / UPDATE)
// =====================================================

// EditorialFields are the optional long-form and SEO fields of the admin edit form.
type EditorialFields struct {
	Status               *string `json:"status,omitempty" yaml:"status"`
	IngredientsText      *string `json:"ingredients_text,omitempty" yaml:"ingredients_text"`
	InstructionsDetailed *string `json:"instructions_detailed,omitempty" yaml:"instructions_detailed"`
	CulturalHistory      *string `json:"cultural_history,omitempty" yaml:"cultural_history"`
	Techniques           *string `json:"techniques,omitempty" yaml:"techniques"`
	NutritionalNotes     *string `json:"nutritional_notes,omitempty" yaml:"nutritional_notes"`
	MetaTitle            *string `json:"meta_title,omitempty" yaml:"meta_title"`
	MetaDescription      *string `json:"meta_description,omitempty" yaml:"meta_description"`
	ChefTips             *string `json:"chef_tips,omitempty" yaml:"chef_tips"`
	DifficultyDetailed   *string `json:"difficulty_detailed,omitempty" yaml:"difficulty_detailed"`
}

// RecipeFormValues is the payload submitted by the recipe edit form.
type RecipeFormValues struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Category     string   `json:"category" yaml:"category"`
	Tags         []string `json:"tags" yaml:"tags"`
	ImageURL     *string  `json:"image_url" yaml:"image_url"`
	Difficulty   *string  `json:"difficulty,omitempty" yaml:"difficulty"`

	EditorialFields `yaml:",inline"`
}

func (v RecipeFormValues) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Title,
			validation.Required.Error("le titre est obligatoire"),
			validation.RuneLength(MinTitleLength, 0).Error("le titre doit contenir au moins 3 caractères"),
		),
		validation.Field(&v.Description,
			validation.Required.Error("la description est obligatoire"),
			validation.RuneLength(MinDescriptionLength, 0).Error("la description doit contenir au moins 10 caractères"),
		),
		validation.Field(&v.Ingredients,
			validation.Required.Error("au moins un ingrédient est requis"),
		),
		validation.Field(&v.Instructions,
			validation.Required.Error("les instructions sont obligatoires"),
			validation.RuneLength(MinInstructionsLength, 0).Error("les instructions doivent contenir au moins 50 caractères"),
		),
		validation.Field(&v.Category,
			validation.Required.Error("la catégorie est obligatoire"),
		),
		// An empty string is accepted: the image is optional until publish.
		validation.Field(&v.ImageURL,
			is.RequestURL.Error("l'URL de l'image est invalide"),
		),
		validation.Field(&v.Difficulty,
			validation.In(
				string(DifficultyBeginner),
				string(DifficultyIntermediate),
				string(DifficultyAdvanced),
			).Error("niveau de difficulté inconnu"),
		),
		validation.Field(&v.Status,
			validation.In(StatusDraft, StatusPublished, StatusArchived).Error("statut inconnu"),
		),
	)
}

// Normalize trims identity fields and defaults tags to an empty list.
func (v *RecipeFormValues) Normalize() {
	v.Title = strings.TrimSpace(v.Title)
	v.Category = strings.TrimSpace(v.Category)
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.Ingredients == nil {
		v.Ingredients = []string{}
	}
}

// AsRecord projects the form values onto the record shape used by the completeness checker.
func (v RecipeFormValues) AsRecord() RecipeRecord {
	description := v.Description
	return RecipeRecord{
		Status:               v.Status,
		ImageURL:             v.ImageURL,
		Description:          &description,
		IngredientsText:      v.IngredientsText,
		InstructionsDetailed: v.InstructionsDetailed,
		CulturalHistory:      v.CulturalHistory,
		Techniques:           v.Techniques,
		NutritionalNotes:     v.NutritionalNotes,
		MetaTitle:            v.MetaTitle,
		MetaDescription:      v.MetaDescription,
		ChefTips:             v.ChefTips,
		DifficultyDetailed:   v.DifficultyDetailed,
	}
}

// =====================================================
// LIST
// =====================================================

type ListRecipesRequest struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (r *ListRecipesRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultPageLimit
	}
	if r.Limit > MaxPageLimit {
		r.Limit = MaxPageLimit
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.In(StatusDraft, StatusPublished, StatusArchived)),
		validation.Field(&r.Search, validation.RuneLength(0, 200)),
	)
}

func (r *ListRecipesRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// =====================================================
// RESPONSES
// =====================================================

type PaginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}

func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPage := 0
	if limit > 0 {
		totalPage = (total + limit - 1) / limit
	}
	return PaginationMeta{Page: page, PageSize: limit, Total: total, TotalPage: totalPage}
}

// RecipeListItem is the row shown in the admin recipe table, with its completeness badges.
type RecipeListItem struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Slug                string    `json:"slug"`
	Category            string    `json:"category"`
	Status              string    `json:"status"`
	ImageURL            *string   `json:"image_url,omitempty"`
	MissingFields       []string  `json:"missing_fields"`
	CompletenessPercent int       `json:"completeness_percent"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ListRecipesResponse struct {
	Recipes    []RecipeListItem `json:"recipes"`
	Pagination PaginationMeta   `json:"pagination"`
}

type RecipeDetailResponse struct {
	*Recipe
	MissingFields       []string `json:"missing_fields"`
	CompletenessPercent int      `json:"completeness_percent"`
}

type CompletenessResponse struct {
	RecipeID            uuid.UUID `json:"recipe_id"`
	MissingFields       []string  `json:"missing_fields"`
	CompletenessPercent int       `json:"completeness_percent"`
}

type PrePublishResponse struct {
	RecipeID   uuid.UUID     `json:"recipe_id"`
	Counts     DerivedCounts `json:"counts"`
	Issues     []string      `json:"issues"`
	CanPublish bool          `json:"can_publish"`
}

// PublishResult carries the blocking issues when the transition was refused.
type PublishResult struct {
	Published bool     `json:"published"`
	Issues    []string `json:"issues"`
	Recipe    *Recipe  `json:"recipe,omitempty"`
}

type TemplatesResponse struct {
	Tier       DifficultyTier `json:"tier"`
	Difficulty string         `json:"difficulty"`
	ChefTips   string         `json:"chef_tips"`
}

type ImageUploadResponse struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	ImageURL string    `json:"image_url"`
	Queued   bool      `json:"queued"`
}

// CompletenessReportItem is one line of the completeness audit.
type CompletenessReportItem struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Slug                string    `json:"slug"`
	Status              string    `json:"status"`
	MissingFields       []string  `json:"missing_fields"`
	CompletenessPercent int       `json:"completeness_percent"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CompletenessSummary struct {
	GeneratedAt     time.Time                `json:"generated_at"`
	TotalRecipes    int                      `json:"total_recipes"`
	CompleteRecipes int                      `json:"complete_recipes"`
	Items           []CompletenessReportItem `json:"items"`
}
