package main

import (
	"context"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// seedArticle is one canonical article with its author's display name. The
// author is resolved to a seeded staff account at insert time.
type seedArticle struct {
	Title    string
	Excerpt  string
	Author   string
	Date     string
	ReadTime string
	Category string
	Image    string
	Content  string
}

const loremContent = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

var seedCategories = []model.Category{
	{Name: "Technology", Description: "Articles about technology and innovation"},
	{Name: "Design", Description: "Articles about UI/UX and design principles"},
	{Name: "Programming", Description: "Articles about programming and development"},
	{Name: "Architecture", Description: "Articles about software architecture"},
}

var seedArticles = []seedArticle{
	{
		Title:    "The Future of Web Development",
		Excerpt:  "Exploring the latest trends and technologies shaping the future of web development in 2024.",
		Author:   "Sarah Johnson",
		Date:     "2024-03-15",
		ReadTime: "5 min read",
		Category: "Technology",
		Image:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
	{
		Title:    "Mastering React Hooks",
		Excerpt:  "A comprehensive guide to understanding and implementing React Hooks in your applications.",
		Author:   "Michael Chen",
		Date:     "2024-03-14",
		ReadTime: "8 min read",
		Category: "Programming",
		Image:    "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
	{
		Title:    "The Art of UI/UX Design",
		Excerpt:  "Learn the fundamental principles of creating beautiful and user-friendly interfaces.",
		Author:   "Emma Wilson",
		Date:     "2024-03-13",
		ReadTime: "6 min read",
		Category: "Design",
		Image:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
	{
		Title:    "Building Scalable Applications",
		Excerpt:  "Best practices and strategies for creating applications that can grow with your business.",
		Author:   "David Brown",
		Date:     "2024-03-12",
		ReadTime: "7 min read",
		Category: "Architecture",
		Image:    "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
	{
		Title:    "Introduction to Machine Learning",
		Excerpt:  "A beginner's guide to understanding the fundamentals of machine learning.",
		Author:   "Jennifer Lee",
		Date:     "2024-03-11",
		ReadTime: "9 min read",
		Category: "Technology",
		Image:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
	{
		Title:    "Modern JavaScript Techniques",
		Excerpt:  "Explore advanced JavaScript features and patterns for cleaner, more efficient code.",
		Author:   "Robert Smith",
		Date:     "2024-03-10",
		ReadTime: "7 min read",
		Category: "Programming",
		Image:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&auto=format&fit=crop",
		Content:  loremContent,
	},
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info().Msg("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Article{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	admin, err := ensureSuperuser(ctx, cfg, userRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("seed superuser")
	}
	log.Info().Str("username", admin.Username).Msg("superuser ready")

	// Wipe content so the seed is reproducible. Accounts are kept.
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Article{}).Error; err != nil {
		log.Fatal().Err(err).Msg("clear articles")
	}
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Category{}).Error; err != nil {
		log.Fatal().Err(err).Msg("clear categories")
	}

	categoryRepo := repository.NewCategoryRepository(gormDB)
	categories := make(map[string]uint, len(seedCategories))
	for i := range seedCategories {
		category := seedCategories[i]
		if err := categoryRepo.Create(ctx, &category); err != nil {
			log.Fatal().Err(err).Str("name", category.Name).Msg("create category")
		}
		categories[category.Name] = category.ID
		log.Info().Str("name", category.Name).Msg("category created")
	}

	articleRepo := repository.NewArticleRepository(gormDB)
	for _, data := range seedArticles {
		author, err := ensureStaffAuthor(ctx, userRepo, data.Author)
		if err != nil {
			log.Fatal().Err(err).Str("author", data.Author).Msg("seed author")
		}

		date, err := time.Parse("2006-01-02", data.Date)
		if err != nil {
			log.Fatal().Err(err).Str("title", data.Title).Msg("parse date")
		}

		article := &model.Article{
			Title:      data.Title,
			Excerpt:    data.Excerpt,
			Content:    data.Content,
			AuthorID:   author.ID,
			Date:       date,
			ReadTime:   data.ReadTime,
			Image:      data.Image,
			CategoryID: categories[data.Category],
			Status:     model.StatusPublished,
		}
		if err := articleRepo.Create(ctx, article); err != nil {
			log.Fatal().Err(err).Str("title", data.Title).Msg("create article")
		}
		log.Info().Str("title", article.Title).Msg("article created")
	}

	log.Info().
		Int("categories", len(seedCategories)).
		Int("articles", len(seedArticles)).
		Msg("seed completed")
}

// ensureSuperuser creates the superuser account from environment variables
// if it does not already exist.
func ensureSuperuser(ctx context.Context, cfg *config.Config, repo repository.UserRepository) (*model.User, error) {
	username := getEnvDefault("ADMIN_USERNAME", "admin")
	email := getEnvDefault("ADMIN_EMAIL", "admin@example.com")
	password := getEnvDefault("ADMIN_PASSWORD", "changeme123")

	existing, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// ensureStaffAuthor creates a staff account for the display name if one does
// not already exist. "Sarah Johnson" becomes username "sarah.johnson".
func ensureStaffAuthor(ctx context.Context, repo repository.UserRepository, displayName string) (*model.User, error) {
	parts := strings.Fields(displayName)
	username := strings.ToLower(strings.Join(parts, "."))

	existing, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FirstName:    parts[0],
		LastName:     strings.Join(parts[1:], " "),
		IsStaff:      true,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
