package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"inkwell/internal/model"
)

// ArticleRepository defines article persistence operations. Reads that feed
// projections preload the author and category relations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	FindPublishedByID(ctx context.Context, id uint) (*model.Article, error)
	// List returns every article regardless of status, newest-first.
	List(ctx context.Context) ([]model.Article, error)
	// ListPublished returns published articles only, newest-first.
	ListPublished(ctx context.Context) ([]model.Article, error)
	// ListRelated returns up to limit published articles in the category,
	// excluding the given article, newest-first.
	ListRelated(ctx context.Context, categoryID, excludeID uint, limit int) ([]model.Article, error)
	// Search matches the term case-insensitively as a substring of title,
	// excerpt or content across published articles.
	Search(ctx context.Context, term string) ([]model.Article, error)
	TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ArticleRepository) error) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository builds a GORM-backed article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Delete(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.preloaded(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindPublishedByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.preloaded(ctx).
		Where("status = ?", model.StatusPublished).
		First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := r.preloaded(ctx).
		Order("date DESC, id DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListPublished(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := r.preloaded(ctx).
		Where("status = ?", model.StatusPublished).
		Order("date DESC, id DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListRelated(ctx context.Context, categoryID, excludeID uint, limit int) ([]model.Article, error) {
	var articles []model.Article
	if err := r.preloaded(ctx).
		Where("category_id = ? AND id != ? AND status = ?", categoryID, excludeID, model.StatusPublished).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// likeEscaper neutralizes LIKE metacharacters so a search term always
// matches as a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (r *articleRepository) Search(ctx context.Context, term string) ([]model.Article, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var articles []model.Article
	if err := r.preloaded(ctx).
		Where("status = ?", model.StatusPublished).
		Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern, pattern).
		Order("date DESC, id DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Article{}).Where("title = ?", title)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Article{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *articleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ArticleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &articleRepository{db: tx})
	})
}

func (r *articleRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author").Preload("Category")
}
