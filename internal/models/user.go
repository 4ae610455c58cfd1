package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleProfessor UserRole = "professor"
	RoleStudent   UserRole = "student"
)

// IsValid reports whether the role is one of the closed set of roles.
// The platform has exactly two roles; there is no role migration after
// registration.
func (r UserRole) IsValid() bool {
	return r == RoleProfessor || r == RoleStudent
}

type Language string

const (
	LanguageArabic Language = "ar"
	LanguageFrench Language = "fr"
)

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:64"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20;index"`

	// Profile info
	University     *string `json:"university" gorm:"size:200"`
	Faculty        *string `json:"faculty" gorm:"size:200"`
	Department     *string `json:"department" gorm:"size:200"`
	ProfilePicture *string `json:"profile_picture" gorm:"size:500"`
	PhoneNumber    *string `json:"phone_number" gorm:"size:30"`

	Language Language `json:"language" gorm:"size:5;default:ar"`

	PasswordHash string `json:"-" gorm:"size:128"`

	// Professor-only reputation score. Overwritten by the periodic rating
	// sweep; the interactive subscribe bonus is transient between sweeps.
	Stars float64 `json:"stars" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsProfessor reports whether the user carries the professor role.
func (u *User) IsProfessor() bool {
	return u.Role == RoleProfessor
}

// IsStudent reports whether the user carries the student role.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
