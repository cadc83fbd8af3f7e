package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeArticleNotFound   = "ART001"
	ErrCodeDuplicateSlug     = "ART002"
	ErrCodeNotPublishable    = "ART003"
	ErrCodeInvalidTransition = "ART004"
)

var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrDuplicateSlug     = errors.New("article slug already exists")
	ErrInvalidTransition = errors.New("invalid article status transition")
)

type ArticleError struct {
	Code    string
	Message string
	Err     error
}

func (e *ArticleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ArticleError) Unwrap() error {
	return e.Err
}

func NewArticleNotFoundError() *ArticleError {
	return &ArticleError{Code: ErrCodeArticleNotFound, Message: "Article not found", Err: ErrArticleNotFound}
}

func NewDuplicateSlugError(slug string) *ArticleError {
	return &ArticleError{
		Code:    ErrCodeDuplicateSlug,
		Message: fmt.Sprintf("An article with slug %q already exists", slug),
		Err:     ErrDuplicateSlug,
	}
}

func NewInvalidTransitionError(from, to string) *ArticleError {
	return &ArticleError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("Cannot move article from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}
