package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// BloodGroups is the closed set of accepted blood group values for student
// profiles.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func IsValidBloodGroup(bg string) bool {
	for _, v := range BloodGroups {
		if v == bg {
			return true
		}
	}
	return false
}

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:24"`
	Username     string   `json:"username" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;default:student;index" validate:"omitempty,oneof=student teacher admin"`

	// Cumulative points, only ever increased by award operations.
	Points int `json:"points" gorm:"not null;default:0"`

	// Student profile fields, required only for role=student.
	Age          *int       `json:"age,omitempty"`
	BloodGroup   *string    `json:"bloodGroup,omitempty" gorm:"size:3"`
	ParentMobile *string    `json:"parentMobile,omitempty" gorm:"size:20"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	ProfilePhoto *string    `json:"profilePhoto,omitempty" gorm:"size:500"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// UserRef is the projection of a user embedded in other responses
// (reporter, instructor, resolver). Credential material is never included.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}
