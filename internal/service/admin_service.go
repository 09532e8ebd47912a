package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

// AdminUserUpdateInput carries a partial update applied by staff to any
// account. Nil fields are left untouched. Username, email and password are
// additionally skipped when present but blank.
type AdminUserUpdateInput struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	NormalUsers int64 `json:"normalUsers"`
	AdminUsers  int64 `json:"adminUsers"`
	Articles    int64 `json:"articles"`
	Categories  int64 `json:"categories"`
}

// AdminService handles staff-facing account management and dashboard stats.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, input AdminUserUpdateInput) (*model.User, error)
	// ToggleActive flips the account's active flag. Applying it twice
	// restores the original state.
	ToggleActive(ctx context.Context, id uint) (*model.User, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	users      repository.UserRepository
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	cache      *cache.Client
	logger     zerolog.Logger
}

// NewAdminService creates the admin service.
func NewAdminService(users repository.UserRepository, articles repository.ArticleRepository, categories repository.CategoryRepository, cacheClient *cache.Client, logger zerolog.Logger) AdminService {
	return &adminService{
		users:      users,
		articles:   articles,
		categories: categories,
		cache:      cacheClient,
		logger:     logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *adminService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uint, input AdminUserUpdateInput) (*model.User, error) {
	var updated *model.User
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if input.Username != nil && *input.Username != "" && *input.Username != user.Username {
			taken, err := repo.UsernameTaken(ctx, *input.Username, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidation("username", "User with this username already exists!")
			}
			user.Username = *input.Username
		}

		if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
			taken, err := repo.EmailTaken(ctx, *input.Email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidation("email", "User with this Email already exists!")
			}
			user.Email = *input.Email
		}

		if input.Password != nil && *input.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}

		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *adminService) ToggleActive(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Bool("is_active", user.IsActive).Msg("account active flag toggled")
	return user, nil
}

// Stats returns dashboard counts, served from cache when a recent copy
// exists. Cache failures fall through to the database.
func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, err := s.cache.Get(ctx, statsCacheKey); err == nil && data != nil {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	normal, err := s.users.CountByStaff(ctx, false)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.CountByStaff(ctx, true)
	if err != nil {
		return nil, err
	}
	articleCount, err := s.articles.Count(ctx)
	if err != nil {
		return nil, err
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		NormalUsers: normal,
		AdminUsers:  admins,
		Articles:    articleCount,
		Categories:  categoryCount,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}

	return stats, nil
}
