package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on an idea
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;index;not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
	IdeaID    string    `json:"idea_id" gorm:"type:uuid;index;not null"`
	Idea      *Idea     `json:"-" gorm:"foreignKey:IdeaID"`
	CreatedAt time.Time `json:"created"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Comment) OwnerID() string { return c.AuthorID }

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}
