package repository

import (
	"context"

	"recipe-admin-backend/internal/domains/article/model"

	"github.com/google/uuid"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, req model.ListArticlesRequest) ([]model.Article, int, error)
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Article, error)
}
