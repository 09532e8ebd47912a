package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

// dateLayout is the wire format for article dates.
const dateLayout = "2006-01-02"

// respondError writes the error in the shape its kind demands. Field
// validation failures are serialized as a field-to-messages map with status
// 400; everything else goes through the domain error mapping.
func respondError(c echo.Context, err error) error {
	if vErr, ok := err.(*apperrors.ValidationError); ok {
		return c.JSON(http.StatusBadRequest, vErr.Fields)
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// messageResponse is a plain confirmation payload.
type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the self-service projection of an account.
type userResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// adminUserResponse is the staff projection of an account, with the derived
// permission label and activity flag.
type adminUserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Permission string    `json:"permission"`
	IsActive   bool      `json:"isActive"`
	DateJoined time.Time `json:"date_joined"`
}

func newAdminUserResponse(user *model.User) adminUserResponse {
	return adminUserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Permission: user.Permission(),
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
	}
}

type categoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newCategoryResponse(category *model.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

func newCategoryResponses(categories []model.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i]))
	}
	return out
}

// articleResponse is the list projection of an article. Author and category
// are flattened to display strings.
type articleResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	ReadTime string `json:"read_time"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

func newArticleResponse(article *model.Article) articleResponse {
	return articleResponse{
		ID:       article.ID,
		Title:    article.Title,
		Excerpt:  article.Excerpt,
		Author:   article.Author.DisplayName(),
		Date:     article.Date.Format(dateLayout),
		ReadTime: article.ReadTime,
		Image:    article.Image,
		Category: article.Category.Name,
		Status:   string(article.Status),
	}
}

func newArticleResponses(articles []model.Article) []articleResponse {
	out := make([]articleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, newArticleResponse(&articles[i]))
	}
	return out
}

// articleDetailResponse extends the list projection with the full body and
// record timestamps.
type articleDetailResponse struct {
	articleResponse
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newArticleDetailResponse(article *model.Article) articleDetailResponse {
	return articleDetailResponse{
		articleResponse: newArticleResponse(article),
		Content:         article.Content,
		CreatedAt:       article.CreatedAt,
		UpdatedAt:       article.UpdatedAt,
	}
}
