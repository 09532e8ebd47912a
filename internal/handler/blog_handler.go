package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/service"
)

// BlogHandler handles the public, unauthenticated reading endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// articleWithRelatedResponse is the article detail page payload.
type articleWithRelatedResponse struct {
	Article         articleDetailResponse `json:"article"`
	RelatedArticles []articleResponse     `json:"relatedArticles"`
}

// ListCategories godoc
// @Summary List all categories
// @Tags blog
// @Produce json
// @Success 200 {array} categoryResponse
// @Router /blog/categories [get]
func (h *BlogHandler) ListCategories(c echo.Context) error {
	categories, err := h.blogService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// ListArticles godoc
// @Summary List published articles
// @Tags blog
// @Produce json
// @Success 200 {array} articleResponse
// @Router /blog/articles [get]
func (h *BlogHandler) ListArticles(c echo.Context) error {
	articles, err := h.blogService.ListPublished(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleResponses(articles))
}

// GetArticle godoc
// @Summary Read one published article with related articles
// @Tags blog
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} articleWithRelatedResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blog/articles/{id} [get]
func (h *BlogHandler) GetArticle(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrNotFound)
	}

	article, related, err := h.blogService.GetPublished(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, articleWithRelatedResponse{
		Article:         newArticleDetailResponse(article),
		RelatedArticles: newArticleResponses(related),
	})
}

// SearchArticles godoc
// @Summary Search published articles
// @Tags blog
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} articleResponse
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /blog/articles/search [get]
func (h *BlogHandler) SearchArticles(c echo.Context) error {
	articles, err := h.blogService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newArticleResponses(articles))
}
