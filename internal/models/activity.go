package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types recorded in the activity log.
const (
	ActivityIdeaCreated    = "idea_created"
	ActivityIdeaUpdated    = "idea_updated"
	ActivityIdeaDeleted    = "idea_deleted"
	ActivityUpvote         = "upvote"
	ActivityDownvote       = "downvote"
	ActivityBookmark       = "bookmark"
	ActivityUnbookmark     = "unbookmark"
	ActivityCommentCreated = "comment_created"
	ActivityCommentDeleted = "comment_deleted"
)

// Activity is one entry of a user's activity log (MongoDB)
type Activity struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type       string             `json:"type" bson:"type"`
	ActorID    string             `json:"actor_id" bson:"actor_id"`
	TargetID   string             `json:"target_id" bson:"target_id"`
	TargetType string             `json:"target_type" bson:"target_type"` // idea, comment
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
