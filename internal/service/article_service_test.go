package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

func TestArticleService_Create(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	input := ArticleCreateInput{
		Title:      "The Future of Web Development",
		Excerpt:    "Exploring the latest trends.",
		Content:    "Full body.",
		Date:       date,
		ReadTime:   "5 min read",
		Image:      "https://example.com/cover.jpg",
		CategoryID: 1,
	}

	t.Run("successful create starts as draft", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1, Name: "Technology"}, nil)
		mockArticles.On("TitleTaken", mock.Anything, input.Title, uint(0)).Return(false, nil)
		mockArticles.On("Create", mock.Anything, mock.AnythingOfType("*model.Article")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Article).ID = 42
			}).Return(nil)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(&model.Article{
			ID:     42,
			Title:  input.Title,
			Status: model.StatusDraft,
		}, nil)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Create(context.Background(), 7, input)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusDraft, article.Status)
		mockArticles.AssertExpectations(t)
		mockCategories.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Create(context.Background(), 7, input)

		assert.Nil(t, article)
		vErr, ok := err.(*apperrors.ValidationError)
		assert.True(t, ok)
		assert.Contains(t, vErr.Fields, "category")
		mockCategories.AssertExpectations(t)
	})

	t.Run("duplicate title", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1}, nil)
		mockArticles.On("TitleTaken", mock.Anything, input.Title, uint(0)).Return(true, nil)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Create(context.Background(), 7, input)

		assert.Nil(t, article)
		vErr, ok := err.(*apperrors.ValidationError)
		assert.True(t, ok)
		assert.Contains(t, vErr.Fields, "title")
		mockArticles.AssertExpectations(t)
	})
}

func TestArticleService_Update(t *testing.T) {
	existing := func() *model.Article {
		return &model.Article{
			ID:         42,
			Title:      "Original Title",
			Excerpt:    "Original excerpt.",
			Content:    "Original content.",
			CategoryID: 1,
			ReadTime:   "5 min read",
			Status:     model.StatusDraft,
		}
	}

	t.Run("empty fields are skipped", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(existing(), nil).Once()
		mockArticles.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
			return a.Title == "Original Title" && a.Excerpt == "New excerpt." && a.Content == "Original content."
		})).Return(nil)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(existing(), nil)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		_, err := service.Update(context.Background(), 42, ArticleUpdateInput{Excerpt: "New excerpt."})

		assert.NoError(t, err)
		mockArticles.AssertExpectations(t)
	})

	t.Run("retitle to a taken title fails", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(existing(), nil)
		mockArticles.On("TitleTaken", mock.Anything, "Taken Title", uint(42)).Return(true, nil)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Update(context.Background(), 42, ArticleUpdateInput{Title: "Taken Title"})

		assert.Nil(t, article)
		vErr, ok := err.(*apperrors.ValidationError)
		assert.True(t, ok)
		assert.Contains(t, vErr.Fields, "title")
		mockArticles.AssertExpectations(t)
	})

	t.Run("moving to an unknown category fails", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(existing(), nil)
		mockCategories.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Update(context.Background(), 42, ArticleUpdateInput{CategoryID: 9})

		assert.Nil(t, article)
		vErr, ok := err.(*apperrors.ValidationError)
		assert.True(t, ok)
		assert.Contains(t, vErr.Fields, "category")
		mockArticles.AssertExpectations(t)
		mockCategories.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.Update(context.Background(), 99, ArticleUpdateInput{Title: "Anything"})

		assert.Nil(t, article)
		assert.Equal(t, apperrors.ErrNotFound, err)
		mockArticles.AssertExpectations(t)
	})
}

func TestArticleService_TogglePublish(t *testing.T) {
	t.Run("toggling twice returns to draft", func(t *testing.T) {
		article := &model.Article{ID: 42, Title: "Hello World", Status: model.StatusDraft}

		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(article, nil)
		mockArticles.On("Update", mock.Anything, article).Return(nil)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())

		toggled, err := service.TogglePublish(context.Background(), 42)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusPublished, toggled.Status)

		toggled, err = service.TogglePublish(context.Background(), 42)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusDraft, toggled.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockCategories := new(MockCategoryRepository)
		mockArticles.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewArticleService(mockArticles, mockCategories, zerolog.Nop())
		article, err := service.TogglePublish(context.Background(), 99)

		assert.Nil(t, article)
		assert.Equal(t, apperrors.ErrNotFound, err)
		mockArticles.AssertExpectations(t)
	})
}

func TestArticleService_Delete(t *testing.T) {
	t.Run("deletes existing article", func(t *testing.T) {
		article := &model.Article{ID: 42, Title: "Hello World"}
		mockArticles := new(MockArticleRepository)
		mockArticles.On("FindByID", mock.Anything, uint(42)).Return(article, nil)
		mockArticles.On("Delete", mock.Anything, article).Return(nil)

		service := NewArticleService(mockArticles, new(MockCategoryRepository), zerolog.Nop())
		assert.NoError(t, service.Delete(context.Background(), 42))
		mockArticles.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockArticles := new(MockArticleRepository)
		mockArticles.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewArticleService(mockArticles, new(MockCategoryRepository), zerolog.Nop())
		assert.Equal(t, apperrors.ErrNotFound, service.Delete(context.Background(), 99))
		mockArticles.AssertExpectations(t)
	})
}
