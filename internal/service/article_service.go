package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// ArticleCreateInput carries the fields accepted when staff create an
// article. New articles always start as drafts.
type ArticleCreateInput struct {
	Title      string
	Excerpt    string
	Content    string
	Date       time.Time
	ReadTime   string
	Image      string
	CategoryID uint
}

// ArticleUpdateInput carries a partial article update. Empty strings, a nil
// date and a zero category ID are left untouched.
type ArticleUpdateInput struct {
	Title      string
	Excerpt    string
	Content    string
	Date       *time.Time
	ReadTime   string
	Image      string
	CategoryID uint
}

// ArticleService handles staff-facing article management.
type ArticleService interface {
	Create(ctx context.Context, authorID uint, input ArticleCreateInput) (*model.Article, error)
	Update(ctx context.Context, id uint, input ArticleUpdateInput) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Article, error)
	// List returns every article, drafts included.
	List(ctx context.Context) ([]model.Article, error)
	// TogglePublish flips the article between draft and published.
	TogglePublish(ctx context.Context, id uint) (*model.Article, error)
}

type articleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	logger     zerolog.Logger
}

// NewArticleService creates the article service.
func NewArticleService(articles repository.ArticleRepository, categories repository.CategoryRepository, logger zerolog.Logger) ArticleService {
	return &articleService{articles: articles, categories: categories, logger: logger}
}

func (s *articleService) Create(ctx context.Context, authorID uint, input ArticleCreateInput) (*model.Article, error) {
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidation("category", "Invalid category.")
		}
		return nil, err
	}

	article := &model.Article{
		Title:      input.Title,
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		AuthorID:   authorID,
		Date:       input.Date,
		ReadTime:   input.ReadTime,
		Image:      input.Image,
		CategoryID: input.CategoryID,
		Status:     model.StatusDraft,
	}

	err := s.articles.WithTransaction(ctx, func(ctx context.Context, repo repository.ArticleRepository) error {
		taken, err := repo.TitleTaken(ctx, input.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidation("title", "Article with this title already exists!")
		}
		return repo.Create(ctx, article)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("article_id", article.ID).Str("title", article.Title).Msg("article created")
	return s.articles.FindByID(ctx, article.ID)
}

func (s *articleService) Update(ctx context.Context, id uint, input ArticleUpdateInput) (*model.Article, error) {
	err := s.articles.WithTransaction(ctx, func(ctx context.Context, repo repository.ArticleRepository) error {
		article, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if input.Title != "" && input.Title != article.Title {
			taken, err := repo.TitleTaken(ctx, input.Title, article.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidation("title", "Article with this title already exists!")
			}
			article.Title = input.Title
		}

		if input.CategoryID != 0 && input.CategoryID != article.CategoryID {
			if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewValidation("category", "Invalid category.")
				}
				return err
			}
			article.CategoryID = input.CategoryID
		}

		if input.Excerpt != "" {
			article.Excerpt = input.Excerpt
		}
		if input.Content != "" {
			article.Content = input.Content
		}
		if input.Date != nil {
			article.Date = *input.Date
		}
		if input.ReadTime != "" {
			article.ReadTime = input.ReadTime
		}
		if input.Image != "" {
			article.Image = input.Image
		}

		// Clear the loaded relations so Save writes the FK columns, not
		// stale association rows.
		article.Author = model.User{}
		article.Category = model.Category{}
		return repo.Update(ctx, article)
	})
	if err != nil {
		return nil, err
	}
	return s.articles.FindByID(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := s.articles.Delete(ctx, article); err != nil {
		return err
	}

	s.logger.Info().Uint("article_id", article.ID).Str("title", article.Title).Msg("article deleted")
	return nil
}

func (s *articleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context) ([]model.Article, error) {
	return s.articles.List(ctx)
}

func (s *articleService) TogglePublish(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	article.Status = article.Status.Toggle()
	article.Author = model.User{}
	article.Category = model.Category{}
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("article_id", article.ID).Str("status", string(article.Status)).Msg("article status toggled")
	return s.articles.FindByID(ctx, id)
}
