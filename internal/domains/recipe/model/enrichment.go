package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NormalizedIngredient is one output row of the ingredient normalization pipeline.
type NormalizedIngredient struct {
	ID       uuid.UUID        `json:"id"`
	RecipeID uuid.UUID        `json:"recipe_id"`
	Position int              `json:"position"`
	Name     string           `json:"name"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	RawText  string           `json:"raw_text"`
}
