package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/auth"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// ProfileUpdateInput carries the fields a user may change on their own
// account. Empty fields are left untouched. The username is fixed at
// registration and password rotation has its own path.
type ProfileUpdateInput struct {
	Email     string
	FirstName string
	LastName  string
}

// AuthService handles registration, authentication and self-service
// account operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, username, password string) (access, refresh string, user *model.User, err error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (access string, err error)
	// Logout revokes the refresh token so it can no longer be exchanged.
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	tokens auth.TokenStoreInterface
	policy *PasswordPolicy
	logger zerolog.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, tokens auth.TokenStoreInterface, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		jwt:    jwt,
		tokens: tokens,
		policy: DefaultPasswordPolicy(),
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidation("password", "Password fields didn't match.")
	}

	if err := s.policy.Validate(input.Password, input.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
	}

	err = s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		taken, err := repo.UsernameTaken(ctx, input.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidation("username", "User with this username already exists!")
		}

		taken, err = repo.EmailTaken(ctx, input.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidation("email", "User with this Email already exists!")
		}

		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Same response for unknown users and bad passwords.
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	access, err := s.jwt.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, err
	}

	tokenID, refresh, err := s.jwt.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, err
	}

	if err := s.tokens.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store refresh token")
	}

	return access, refresh, user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	userID, username, err := s.tokens.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	return s.jwt.GenerateAccessToken(userID, username)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}

	return s.tokens.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*model.User, error) {
	var updated *model.User
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if input.Email != "" && input.Email != user.Email {
			taken, err := repo.EmailTaken(ctx, input.Email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidation("email", "User with this Email already exists!")
			}
			user.Email = input.Email
		}

		if input.FirstName != "" {
			user.FirstName = input.FirstName
		}
		if input.LastName != "" {
			user.LastName = input.LastName
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

func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.NewValidation("current_password", "Current password is incorrect")
	}

	if currentPassword == newPassword {
		return apperrors.NewValidation("new_password", "New password must be different from current password")
	}

	if err := s.policy.Validate(newPassword, user.Username); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password changed")
	return nil
}
