package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

func newTestBlogService(articles *MockArticleRepository, categories *MockCategoryRepository) BlogService {
	return NewBlogService(articles, categories, zerolog.Nop())
}

func TestBlogService_GetPublished(t *testing.T) {
	t.Run("returns article with related articles", func(t *testing.T) {
		article := &model.Article{ID: 42, Title: "Hello World", CategoryID: 3, Status: model.StatusPublished}
		related := []model.Article{
			{ID: 43, Title: "Another One", CategoryID: 3, Status: model.StatusPublished},
		}

		mockArticles := new(MockArticleRepository)
		mockArticles.On("FindPublishedByID", mock.Anything, uint(42)).Return(article, nil)
		mockArticles.On("ListRelated", mock.Anything, uint(3), uint(42), 3).Return(related, nil)

		service := newTestBlogService(mockArticles, new(MockCategoryRepository))
		got, gotRelated, err := service.GetPublished(context.Background(), 42)

		assert.NoError(t, err)
		assert.Equal(t, article, got)
		assert.Len(t, gotRelated, 1)
		mockArticles.AssertExpectations(t)
	})

	t.Run("lone article in its category has empty related list", func(t *testing.T) {
		article := &model.Article{ID: 42, Title: "Hello World", CategoryID: 3, Status: model.StatusPublished}

		mockArticles := new(MockArticleRepository)
		mockArticles.On("FindPublishedByID", mock.Anything, uint(42)).Return(article, nil)
		mockArticles.On("ListRelated", mock.Anything, uint(3), uint(42), 3).Return([]model.Article{}, nil)

		service := newTestBlogService(mockArticles, new(MockCategoryRepository))
		_, gotRelated, err := service.GetPublished(context.Background(), 42)

		assert.NoError(t, err)
		assert.Empty(t, gotRelated)
		mockArticles.AssertExpectations(t)
	})

	t.Run("draft article is invisible", func(t *testing.T) {
		// The published-only lookup misses drafts entirely.
		mockArticles := new(MockArticleRepository)
		mockArticles.On("FindPublishedByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		service := newTestBlogService(mockArticles, new(MockCategoryRepository))
		got, gotRelated, err := service.GetPublished(context.Background(), 42)

		assert.Nil(t, got)
		assert.Nil(t, gotRelated)
		assert.Equal(t, apperrors.ErrNotFound, err)
		mockArticles.AssertExpectations(t)
	})
}

func TestBlogService_Search(t *testing.T) {
	tests := []struct {
		name          string
		term          string
		setupMock     func(*MockArticleRepository)
		expectedError error
		expectedField string
		expectedLen   int
	}{
		{
			name: "match returns articles",
			term: "Hello",
			setupMock: func(m *MockArticleRepository) {
				m.On("Search", mock.Anything, "Hello").Return([]model.Article{
					{ID: 42, Title: "Hello World", Status: model.StatusPublished},
				}, nil)
			},
			expectedLen: 1,
		},
		{
			name:          "empty term",
			term:          "",
			setupMock:     func(m *MockArticleRepository) {},
			expectedField: "q",
		},
		{
			name:          "whitespace term",
			term:          "   ",
			setupMock:     func(m *MockArticleRepository) {},
			expectedField: "q",
		},
		{
			name: "zero matches is an error",
			term: "zzz-no-match",
			setupMock: func(m *MockArticleRepository) {
				m.On("Search", mock.Anything, "zzz-no-match").Return([]model.Article{}, nil)
			},
			expectedError: apperrors.ErrNoArticlesFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockArticles := new(MockArticleRepository)
			tt.setupMock(mockArticles)

			service := newTestBlogService(mockArticles, new(MockCategoryRepository))
			articles, err := service.Search(context.Background(), tt.term)

			switch {
			case tt.expectedField != "":
				assert.Nil(t, articles)
				vErr, ok := err.(*apperrors.ValidationError)
				assert.True(t, ok)
				assert.Contains(t, vErr.Fields, tt.expectedField)
			case tt.expectedError != nil:
				assert.Nil(t, articles)
				assert.Equal(t, tt.expectedError, err)
			default:
				assert.NoError(t, err)
				assert.Len(t, articles, tt.expectedLen)
			}

			mockArticles.AssertExpectations(t)
		})
	}
}

func TestBlogService_ListPublished(t *testing.T) {
	mockArticles := new(MockArticleRepository)
	mockArticles.On("ListPublished", mock.Anything).Return([]model.Article{
		{ID: 1, Status: model.StatusPublished},
		{ID: 2, Status: model.StatusPublished},
	}, nil)

	service := newTestBlogService(mockArticles, new(MockCategoryRepository))
	articles, err := service.ListPublished(context.Background())

	assert.NoError(t, err)
	assert.Len(t, articles, 2)
	mockArticles.AssertExpectations(t)
}
