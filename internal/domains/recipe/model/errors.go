package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeRecipeNotFound     = "REC001"
	ErrCodeDuplicateSlug      = "REC002"
	ErrCodeNotPublishable     = "REC003"
	ErrCodeInvalidTransition  = "REC004"
	ErrCodeInvalidImage       = "REC005"
	ErrCodeUnknownDifficulty  = "REC006"
	ErrCodeStorageUnavailable = "REC007"
	ErrCodeAuditNotReady      = "REC008"
)

// Errors
var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrDuplicateSlug      = errors.New("recipe slug already exists")
	ErrNotPublishable     = errors.New("recipe is not ready for publication")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidImage       = errors.New("invalid recipe image")
	ErrUnknownDifficulty  = errors.New("unknown difficulty tier")
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrAuditNotReady      = errors.New("completeness audit not computed yet")
)

// RecipeError custom error type
type RecipeError struct {
	Code    string
	Message string
	Err     error
}

func (e *RecipeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RecipeError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewRecipeNotFoundError() *RecipeError {
	return &RecipeError{
		Code:    ErrCodeRecipeNotFound,
		Message: "Recipe not found",
		Err:     ErrRecipeNotFound,
	}
}

func NewDuplicateSlugError(slug string) *RecipeError {
	return &RecipeError{
		Code:    ErrCodeDuplicateSlug,
		Message: fmt.Sprintf("A recipe with slug %q already exists", slug),
		Err:     ErrDuplicateSlug,
	}
}

func NewInvalidTransitionError(from, to string) *RecipeError {
	return &RecipeError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("Cannot move recipe from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewInvalidImageError(reason error) *RecipeError {
	return &RecipeError{
		Code:    ErrCodeInvalidImage,
		Message: fmt.Sprintf("Invalid image: %v", reason),
		Err:     ErrInvalidImage,
	}
}

func NewUnknownDifficultyError(tier string) *RecipeError {
	return &RecipeError{
		Code:    ErrCodeUnknownDifficulty,
		Message: fmt.Sprintf("No template for difficulty %q", tier),
		Err:     ErrUnknownDifficulty,
	}
}

func NewStorageUnavailableError() *RecipeError {
	return &RecipeError{
		Code:    ErrCodeStorageUnavailable,
		Message: "Image storage is not configured",
		Err:     ErrStorageUnavailable,
	}
}

func NewAuditNotReadyError() *RecipeError {
	return &RecipeError{
		Code:    ErrCodeAuditNotReady,
		Message: "Completeness audit has not run yet",
		Err:     ErrAuditNotReady,
	}
}
