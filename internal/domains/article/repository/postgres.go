package repository

import (
	"context"
	"errors"
	"fmt"

	"recipe-admin-backend/internal/domains/article/model"
	"recipe-admin-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ArticleRepository {
	return &postgresRepository{pool: pool}
}

const articleColumns = `
	id, title, slug, excerpt, content, cover_url, tags, status,
	meta_title, meta_description, published_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var a model.Article
	if err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.CoverURL, pq.Array(&a.Tags), &a.Status,
		&a.MetaTitle, &a.MetaDescription, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Article) error {
	query := `
		INSERT INTO articles (title, slug, excerpt, content, cover_url, tags, status, meta_title, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		a.Title, a.Slug, a.Excerpt, a.Content, a.CoverURL, pq.Array(a.Tags), a.Status, a.MetaTitle, a.MetaDescription,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return model.NewDuplicateSlugError(a.Slug)
	}
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	a, err := scanArticle(r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewArticleNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id != $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, req model.ListArticlesRequest) ([]model.Article, int, error) {
	where := &utils.WhereBuilder{}
	if req.Status != "" {
		where.Add("status = ?", req.Status)
	}
	if req.Search != "" {
		where.Add("title ILIKE ?", "%"+req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles `+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	limit := where.Next(req.Limit)
	offset := where.Next(req.Offset())
	query := fmt.Sprintf(`SELECT %s FROM articles %s ORDER BY updated_at DESC LIMIT %s OFFSET %s`,
		articleColumns, where.SQL(), limit, offset)

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return articles, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Article) error {
	query := `
		UPDATE articles SET
			title = $2, slug = $3, excerpt = $4, content = $5, cover_url = $6, tags = $7,
			meta_title = $8, meta_description = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Content, a.CoverURL, pq.Array(a.Tags), a.MetaTitle, a.MetaDescription,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewArticleNotFoundError()
	}
	if isUniqueViolation(err) {
		return model.NewDuplicateSlugError(a.Slug)
	}
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewArticleNotFoundError()
	}
	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Article, error) {
	query := `
		UPDATE articles SET
			status = $2,
			published_at = CASE WHEN $2 = 'published' THEN COALESCE(published_at, NOW()) ELSE published_at END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + articleColumns
	a, err := scanArticle(r.pool.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewArticleNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update article status: %w", err)
	}
	return a, nil
}
