package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Idea is a post that other users can vote on, bookmark and comment.
type Idea struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Idea        string    `json:"idea" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	AuthorID    string    `json:"author_id" gorm:"type:uuid;index;not null"`
	Author      *User     `json:"-" gorm:"foreignKey:AuthorID"`
	Votes       []Vote    `json:"-" gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
	Comments    []Comment `json:"-" gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created" gorm:"index"`
	UpdatedAt   time.Time `json:"updated"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *Idea) OwnerID() string { return i.AuthorID }

// Upvoters returns the IDs of users holding an up vote. Only meaningful when
// Votes was loaded.
func (i *Idea) Upvoters() []string { return i.voters(VoteUp) }

// Downvoters returns the IDs of users holding a down vote.
func (i *Idea) Downvoters() []string { return i.voters(VoteDown) }

// VoteOf returns the direction userID currently holds on the idea.
func (i *Idea) VoteOf(userID string) VoteDirection {
	for _, v := range i.Votes {
		if v.UserID == userID {
			return v.Direction
		}
	}
	return VoteNone
}

func (i *Idea) voters(dir VoteDirection) []string {
	ids := make([]string, 0, len(i.Votes))
	for _, v := range i.Votes {
		if v.Direction == dir {
			ids = append(ids, v.UserID)
		}
	}
	return ids
}

// CreateIdeaRequest defines the request body for creating a new idea
type CreateIdeaRequest struct {
	Idea        string `json:"idea" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=5000"`
}

// UpdateIdeaRequest defines the request body for updating an idea. Nil fields are left untouched.
type UpdateIdeaRequest struct {
	Idea        *string `json:"idea,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
}

// Empty reports whether the patch changes nothing.
func (r UpdateIdeaRequest) Empty() bool {
	return r.Idea == nil && r.Description == nil
}
