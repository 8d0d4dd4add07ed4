package repositories

import (
	"context"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) AddBookmark(ctx context.Context, userID, ideaID string) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Bookmark{UserID: userID, IdeaID: ideaID})
	if res.Error != nil {
		return translateError("add bookmark", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrAlreadyExists
	}
	return nil
}

func (r *PostgresBookmarkRepository) RemoveBookmark(ctx context.Context, userID, ideaID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND idea_id = ?", userID, ideaID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return translateError("remove bookmark", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
