package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"inkwell/internal/auth"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/service"
)

const dateFormatMessage = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."

// ArticleHandler handles staff-facing article management endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ArticleCreateRequest represents an article creation request. The caller
// becomes the author and the article starts as a draft.
type ArticleCreateRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Excerpt    string `json:"excerpt" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Date       string `json:"date" validate:"required"`
	ReadTime   string `json:"read_time" validate:"required,max=20"`
	Image      string `json:"image" validate:"omitempty,url,max=500"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

// ArticleUpdateRequest represents a partial article update. Omitted fields
// keep their current values.
type ArticleUpdateRequest struct {
	Title      string `json:"title" validate:"omitempty,max=200"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Date       string `json:"date"`
	ReadTime   string `json:"read_time" validate:"omitempty,max=20"`
	Image      string `json:"image" validate:"omitempty,url,max=500"`
	CategoryID uint   `json:"category_id"`
}

// Create godoc
// @Summary Create a draft article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ArticleCreateRequest true "Article data"
// @Success 201 {object} articleDetailResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	caller, ok := auth.Caller(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req ArticleCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return respondError(c, apperrors.NewValidation("date", dateFormatMessage))
	}

	article, err := h.articleService.Create(c.Request().Context(), caller.ID, service.ArticleCreateInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Date:       date,
		ReadTime:   req.ReadTime,
		Image:      req.Image,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newArticleDetailResponse(article))
}

// List godoc
// @Summary List all articles including drafts
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} articleResponse
// @Router /admin/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.articleService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleResponses(articles))
}

// Get godoc
// @Summary Read one article regardless of status
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} articleDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	article, err := h.articleService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleDetailResponse(article))
}

// Update godoc
// @Summary Update one article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body ArticleUpdateRequest true "Article fields"
// @Success 200 {object} articleDetailResponse
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	var req ArticleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.ArticleUpdateInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		ReadTime:   req.ReadTime,
		Image:      req.Image,
		CategoryID: req.CategoryID,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return respondError(c, apperrors.NewValidation("date", dateFormatMessage))
		}
		input.Date = &date
	}

	article, err := h.articleService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleDetailResponse(article))
}

// Delete godoc
// @Summary Delete one article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	if err := h.articleService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Article deleted successfully."})
}

// TogglePublish godoc
// @Summary Flip an article between draft and published
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} articleDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id}/publish [patch]
func (h *ArticleHandler) TogglePublish(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	article, err := h.articleService.TogglePublish(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleDetailResponse(article))
}
