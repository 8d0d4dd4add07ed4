package models

import "time"

// VoteDirection is the state a user holds on an idea.
type VoteDirection string

const (
	VoteNone VoteDirection = ""
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ParseVoteDirection accepts "up" and "down" only.
func ParseVoteDirection(s string) (VoteDirection, bool) {
	switch VoteDirection(s) {
	case VoteUp:
		return VoteUp, true
	case VoteDown:
		return VoteDown, true
	}
	return VoteNone, false
}

// Vote is a user's membership in an idea's upvoters or downvoters set. The
// composite key keeps the two sets disjoint.
type Vote struct {
	IdeaID    string        `json:"idea_id" gorm:"type:uuid;primaryKey"`
	UserID    string        `json:"user_id" gorm:"type:uuid;primaryKey;index"`
	Direction VoteDirection `json:"direction" gorm:"type:varchar(4);not null"`
	CreatedAt time.Time     `json:"created_at"`
}
