package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

func newTestAdminService(users *MockUserRepository, articles *MockArticleRepository, categories *MockCategoryRepository) AdminService {
	// Nil cache reads as a permanent miss, so stats always hit the database.
	return NewAdminService(users, articles, categories, nil, zerolog.Nop())
}

func strPtr(s string) *string {
	return &s
}

func TestAdminService_UpdateUser(t *testing.T) {
	existing := func() *model.User {
		return &model.User{
			ID:        7,
			Username:  "bob",
			Email:     "bob@example.com",
			FirstName: "Bob",
			LastName:  "Jones",
			IsActive:  true,
		}
	}

	t.Run("nil fields are skipped", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(7)).Return(existing(), nil)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "bob" && u.FirstName == "Robert"
		})).Return(nil)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.UpdateUser(context.Background(), 7, AdminUserUpdateInput{FirstName: strPtr("Robert")})

		assert.NoError(t, err)
		assert.Equal(t, "Robert", user.FirstName)
		assert.Equal(t, "Jones", user.LastName)
		mockUsers.AssertExpectations(t)
	})

	t.Run("blank username is skipped", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(7)).Return(existing(), nil)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "bob"
		})).Return(nil)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.UpdateUser(context.Background(), 7, AdminUserUpdateInput{Username: strPtr("")})

		assert.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		mockUsers.AssertExpectations(t)
	})

	t.Run("email uniqueness excludes the target account", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(7)).Return(existing(), nil)
		mockUsers.On("EmailTaken", mock.Anything, "taken@example.com", uint(7)).Return(true, nil)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.UpdateUser(context.Background(), 7, AdminUserUpdateInput{Email: strPtr("taken@example.com")})

		assert.Nil(t, user)
		vErr, ok := err.(*apperrors.ValidationError)
		assert.True(t, ok)
		assert.Contains(t, vErr.Fields, "email")
		mockUsers.AssertExpectations(t)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(7)).Return(existing(), nil)
		mockUsers.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.UpdateUser(context.Background(), 7, AdminUserUpdateInput{Password: strPtr("replacement-secret")})

		assert.NoError(t, err)
		assert.NotEqual(t, "replacement-secret", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("replacement-secret")))
		mockUsers.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.UpdateUser(context.Background(), 99, AdminUserUpdateInput{})

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrNotFound, err)
		mockUsers.AssertExpectations(t)
	})
}

func TestAdminService_ToggleActive(t *testing.T) {
	t.Run("toggling twice restores the original state", func(t *testing.T) {
		user := &model.User{ID: 7, Username: "bob", IsActive: true}

		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(7)).Return(user, nil)
		mockUsers.On("Update", mock.Anything, user).Return(nil)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))

		toggled, err := service.ToggleActive(context.Background(), 7)
		assert.NoError(t, err)
		assert.False(t, toggled.IsActive)

		toggled, err = service.ToggleActive(context.Background(), 7)
		assert.NoError(t, err)
		assert.True(t, toggled.IsActive)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := newTestAdminService(mockUsers, new(MockArticleRepository), new(MockCategoryRepository))
		user, err := service.ToggleActive(context.Background(), 99)

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrNotFound, err)
		mockUsers.AssertExpectations(t)
	})
}

func TestAdminService_Stats(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockArticles := new(MockArticleRepository)
	mockCategories := new(MockCategoryRepository)

	mockUsers.On("CountByStaff", mock.Anything, false).Return(int64(10), nil)
	mockUsers.On("CountByStaff", mock.Anything, true).Return(int64(2), nil)
	mockArticles.On("Count", mock.Anything).Return(int64(6), nil)
	mockCategories.On("Count", mock.Anything).Return(int64(4), nil)

	service := newTestAdminService(mockUsers, mockArticles, mockCategories)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		NormalUsers: 10,
		AdminUsers:  2,
		Articles:    6,
		Categories:  4,
	}, stats)
	mockUsers.AssertExpectations(t)
	mockArticles.AssertExpectations(t)
	mockCategories.AssertExpectations(t)
}
