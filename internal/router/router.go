package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	categoryHandler *handler.CategoryHandler,
	articleHandler *handler.ArticleHandler,
	blogHandler *handler.BlogHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/get-access-token", authHandler.GetAccessToken)
	api.POST("/auth/get-refresh-token", authHandler.GetRefreshToken)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/blog/categories", blogHandler.ListCategories)
	api.GET("/blog/articles", blogHandler.ListArticles)
	api.GET("/blog/articles/search", blogHandler.SearchArticles)
	api.GET("/blog/articles/:id", blogHandler.GetArticle)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	// Self-service account routes
	secured.GET("/auth/profile", authHandler.Profile, gate.Require(auth.OpProfile))
	secured.PUT("/auth/profile", authHandler.UpdateProfile, gate.Require(auth.OpProfile))
	secured.POST("/auth/change-password", authHandler.ChangePassword, gate.Require(auth.OpChangePassword))

	// Admin dashboard routes
	secured.GET("/admin/admin-access", adminHandler.AdminAccess, gate.Require(auth.OpAdminAccess))
	secured.GET("/admin/stats", adminHandler.Stats, gate.Require(auth.OpAdminStats))

	// Account management routes
	adminUsers := gate.Require(auth.OpAdminUsers)
	secured.GET("/admin/users", adminHandler.ListUsers, adminUsers)
	secured.GET("/admin/users/:id", adminHandler.GetUser, adminUsers)
	secured.PUT("/admin/users/:id", adminHandler.UpdateUser, adminUsers)
	secured.PATCH("/admin/users/:id", adminHandler.UpdateUser, adminUsers)
	secured.PATCH("/admin/users/:id/deactivate", adminHandler.DeactivateUser, adminUsers)

	// Content management routes
	adminContent := gate.Require(auth.OpAdminContent)
	secured.POST("/admin/categories", categoryHandler.Create, adminContent)
	secured.GET("/admin/categories", categoryHandler.List, adminContent)
	secured.GET("/admin/categories/:id", categoryHandler.Get, adminContent)
	secured.PUT("/admin/categories/:id", categoryHandler.Update, adminContent)
	secured.PATCH("/admin/categories/:id", categoryHandler.Update, adminContent)
	secured.DELETE("/admin/categories/:id", categoryHandler.Delete, adminContent)

	secured.POST("/admin/articles", articleHandler.Create, adminContent)
	secured.GET("/admin/articles", articleHandler.List, adminContent)
	secured.GET("/admin/articles/:id", articleHandler.Get, adminContent)
	secured.PUT("/admin/articles/:id", articleHandler.Update, adminContent)
	secured.PATCH("/admin/articles/:id", articleHandler.Update, adminContent)
	secured.DELETE("/admin/articles/:id", articleHandler.Delete, adminContent)
	secured.PATCH("/admin/articles/:id/publish", articleHandler.TogglePublish, adminContent)

	// Writes on the public blog paths are staff only
	secured.POST("/blog/categories", categoryHandler.Create, adminContent)
	secured.POST("/blog/articles", articleHandler.Create, adminContent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
