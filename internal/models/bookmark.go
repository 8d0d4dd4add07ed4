package models

import "time"

// Bookmark is the join row behind User.Bookmarks.
type Bookmark struct {
	UserID    string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	IdeaID    string    `json:"idea_id" gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}
