package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Story is a community post. Likes are tracked through the LikedBy identity
// set so that like/unlike stays idempotent per user.
type Story struct {
	ID         string                      `json:"id" gorm:"primaryKey;size:24"`
	Title      string                      `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content    string                      `json:"content" gorm:"type:text;not null" validate:"required"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Image      *string                     `json:"image,omitempty" gorm:"size:500"`
	AuthorID   string                      `json:"authorId" gorm:"not null;size:24;index"`
	AuthorName string                      `json:"authorName" gorm:"size:100"`
	Likes      int                         `json:"likes" gorm:"not null;default:0"`
	LikedBy    datatypes.JSONSlice[string] `json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Story) TableName() string {
	return "stories"
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// HasLiked reports whether the given user is in the liker set.
func (s *Story) HasLiked(userID string) bool {
	for _, id := range s.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Like adds the user to the liker set. Returns false if already present.
func (s *Story) Like(userID string) bool {
	if s.HasLiked(userID) {
		return false
	}
	s.LikedBy = append(s.LikedBy, userID)
	s.Likes = len(s.LikedBy)
	return true
}

// Unlike removes the user from the liker set. Returns false if not present.
func (s *Story) Unlike(userID string) bool {
	for i, id := range s.LikedBy {
		if id == userID {
			s.LikedBy = append(s.LikedBy[:i], s.LikedBy[i+1:]...)
			s.Likes = len(s.LikedBy)
			return true
		}
	}
	return false
}
