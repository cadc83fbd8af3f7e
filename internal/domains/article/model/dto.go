package model

import (
	"strings"

	"recipe-admin-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ArticleRequest là body của create/update article
type ArticleRequest struct {
	Title           string   `json:"title"`
	Excerpt         *string  `json:"excerpt"`
	Content         string   `json:"content"`
	CoverURL        *string  `json:"cover_url"`
	Tags            []string `json:"tags"`
	MetaTitle       *string  `json:"meta_title"`
	MetaDescription *string  `json:"meta_description"`
}

func (r ArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("le titre est obligatoire"),
			validation.RuneLength(MinTitleLength, 200).Error("le titre doit contenir entre 3 et 200 caractères"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("le contenu est obligatoire"),
			validation.RuneLength(MinContentLength, 0).Error("le contenu doit contenir au moins 50 caractères"),
		),
		validation.Field(&r.CoverURL, is.RequestURL.Error("l'URL de couverture est invalide")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, 70)),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, 160)),
	)
}

func (r *ArticleRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

func (r ArticleRequest) ApplyTo(a *Article) {
	a.Title = r.Title
	a.Excerpt = utils.TrimToNil(r.Excerpt)
	a.Content = r.Content
	a.CoverURL = utils.TrimToNil(r.CoverURL)
	a.Tags = r.Tags
	a.MetaTitle = utils.TrimToNil(r.MetaTitle)
	a.MetaDescription = utils.TrimToNil(r.MetaDescription)
}

type ListArticlesRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListArticlesRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.In(StatusDraft, StatusPublished)),
	)
}

func (r *ListArticlesRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

type ListArticlesResponse struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// PublishResult: Missing rỗng khi publish thành công
type PublishResult struct {
	Published bool     `json:"published"`
	Missing   []string `json:"missing"`
	Article   *Article `json:"article,omitempty"`
}
