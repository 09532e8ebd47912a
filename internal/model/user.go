package model

import "time"

// User represents an account in the system. Accounts are never hard-deleted,
// only deactivated via IsActive.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false;index"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	DateJoined   time.Time `json:"date_joined" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"-"`

	// Relations
	Articles []Article `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// DisplayName returns "First Last" when both names are set, the bare
// username otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// Permission is the derived role label: "admin" for staff, "user" otherwise.
// Computed, never stored.
func (u *User) Permission() string {
	if u.IsStaff {
		return "admin"
	}
	return "user"
}
