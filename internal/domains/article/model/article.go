package model

import (
	"time"

	"recipe-admin-backend/internal/shared/utils"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"

	MinTitleLength   = 3
	MinContentLength = 50
)

// Labels of the fields required before an article can be published.
const (
	LabelExcerpt         = "Extrait"
	LabelCoverImage      = "Image de couverture"
	LabelMetaTitle       = "Titre SEO"
	LabelMetaDescription = "Description SEO"
)

type Article struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         *string    `json:"excerpt"`
	Content         string     `json:"content"`
	CoverURL        *string    `json:"cover_url"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// MissingForPublish lists, in display order, the labels of required fields that are blank.
func (a *Article) MissingForPublish() []string {
	missing := make([]string, 0, 4)
	for _, f := range []struct {
		label string
		value *string
	}{
		{LabelExcerpt, a.Excerpt},
		{LabelCoverImage, a.CoverURL},
		{LabelMetaTitle, a.MetaTitle},
		{LabelMetaDescription, a.MetaDescription},
	} {
		if utils.IsBlank(f.value) {
			missing = append(missing, f.label)
		}
	}
	return missing
}
