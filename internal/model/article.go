package model

import "time"

// ArticleStatus represents the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// Toggle flips between the two publication states. Draft and published are
// the only states; no history is retained.
func (s ArticleStatus) Toggle() ArticleStatus {
	if s == StatusPublished {
		return StatusDraft
	}
	return StatusPublished
}

// Article is a blog post owned by an author and a category. It cannot
// outlive either owner.
type Article struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	Title      string        `json:"title" gorm:"size:200;uniqueIndex;not null"`
	Excerpt    string        `json:"excerpt" gorm:"type:text"`
	Content    string        `json:"content" gorm:"type:text"`
	AuthorID   uint          `json:"author_id" gorm:"not null;index"`
	Date       time.Time     `json:"date" gorm:"type:date;not null"`
	ReadTime   string        `json:"read_time" gorm:"size:20"`
	Image      string        `json:"image" gorm:"size:500"`
	CategoryID uint          `json:"category_id" gorm:"not null;index"`
	Status     ArticleStatus `json:"status" gorm:"type:varchar(10);not null;default:'draft';index"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Relations
	Author   User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
