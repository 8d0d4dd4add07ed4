package services

import "github.com/anonto42/idea-board/backend/internal/models"

// Opposite returns the other voter set of dir. VoteNone has no opposite.
func Opposite(dir models.VoteDirection) models.VoteDirection {
	switch dir {
	case models.VoteUp:
		return models.VoteDown
	case models.VoteDown:
		return models.VoteUp
	}
	return models.VoteNone
}

// NextVote is the vote toggle. A user holding any vote, in the cast direction
// or the opposite one, is cleared from both sets. A user holding none joins
// the set of the cast direction.
func NextVote(current, cast models.VoteDirection) models.VoteDirection {
	if current == cast || current == Opposite(cast) {
		return models.VoteNone
	}
	return cast
}
