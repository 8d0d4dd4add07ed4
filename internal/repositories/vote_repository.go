package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db *gorm.DB
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// ApplyVote locks the (idea, user) vote row, lets decide pick the next
// direction and writes it in the same transaction. Two transactions racing to
// insert the first vote collide on the primary key; the loser gets
// common.ErrVoteConflict.
func (r *PostgresVoteRepository) ApplyVote(ctx context.Context, ideaID, userID string, decide func(models.VoteDirection) models.VoteDirection) (models.VoteDirection, error) {
	next := models.VoteNone
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("idea_id = ? AND user_id = ?", ideaID, userID).
			Take(&current).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			current.Direction = models.VoteNone
		case err != nil:
			return err
		}

		next = decide(current.Direction)
		if next == current.Direction {
			return nil
		}
		if current.Direction != models.VoteNone {
			err := tx.Where("idea_id = ? AND user_id = ?", ideaID, userID).Delete(&models.Vote{}).Error
			if err != nil {
				return err
			}
		}
		if next == models.VoteNone {
			return nil
		}
		return tx.Create(&models.Vote{IdeaID: ideaID, UserID: userID, Direction: next}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.VoteNone, common.ErrVoteConflict
	}
	if err != nil {
		return models.VoteNone, translateError("apply vote", err)
	}
	return next, nil
}
