package repositories

import (
	"context"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translateError("create comment", r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

// GetCommentByID retrieves a comment by ID, preloading the requested relations
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id string, relations ...string) (*models.Comment, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	var comment models.Comment
	if err := withRelations(r.db.WithContext(ctx), relations).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translateError("get comment", err)
	}
	return &comment, nil
}

// GetCommentsByIdeaID retrieves a page of comments on an idea, oldest first
func (r *PostgresCommentRepository) GetCommentsByIdeaID(ctx context.Context, ideaID string, page Page) ([]models.Comment, error) {
	if !validID(ideaID) {
		return []models.Comment{}, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload(RelAuthor).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Limit(page.limit()).
		Offset(page.offset()).
		Find(&comments).Error
	if err != nil {
		return nil, translateError("get comments by idea", err)
	}
	return comments, nil
}

// GetCommentsByAuthorID retrieves a page of comments written by a user, newest first
func (r *PostgresCommentRepository) GetCommentsByAuthorID(ctx context.Context, authorID string, page Page) ([]models.Comment, error) {
	if !validID(authorID) {
		return []models.Comment{}, nil
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload(RelAuthor).
		Preload(RelIdea).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(page.limit()).
		Offset(page.offset()).
		Find(&comments).Error
	if err != nil {
		return nil, translateError("get comments by author", err)
	}
	return comments, nil
}

// DeleteComment deletes a comment, guarded by the author ID
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id, authorID string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return translateError("delete comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
