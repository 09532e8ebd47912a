package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// relatedArticleLimit caps the related list on the article detail page.
const relatedArticleLimit = 3

// BlogService serves the public, unauthenticated reading surface. Only
// published articles are ever visible through it.
type BlogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListPublished(ctx context.Context) ([]model.Article, error)
	// GetPublished returns the article together with up to three published
	// articles from the same category.
	GetPublished(ctx context.Context, id uint) (*model.Article, []model.Article, error)
	// Search matches the term against title, excerpt and content. Zero
	// matches is reported as ErrNoArticlesFound.
	Search(ctx context.Context, term string) ([]model.Article, error)
}

type blogService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	logger     zerolog.Logger
}

// NewBlogService creates the public blog service.
func NewBlogService(articles repository.ArticleRepository, categories repository.CategoryRepository, logger zerolog.Logger) BlogService {
	return &blogService{articles: articles, categories: categories, logger: logger}
}

func (s *blogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *blogService) ListPublished(ctx context.Context) ([]model.Article, error) {
	return s.articles.ListPublished(ctx)
}

func (s *blogService) GetPublished(ctx context.Context, id uint) (*model.Article, []model.Article, error) {
	article, err := s.articles.FindPublishedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, err
	}

	related, err := s.articles.ListRelated(ctx, article.CategoryID, article.ID, relatedArticleLimit)
	if err != nil {
		return nil, nil, err
	}

	return article, related, nil
}

func (s *blogService) Search(ctx context.Context, term string) ([]model.Article, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewValidation("q", "Search term is required")
	}

	articles, err := s.articles.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, apperrors.ErrNoArticlesFound
	}
	return articles, nil
}
