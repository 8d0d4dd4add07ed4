package repositories

import (
	"context"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresIdeaRepository implements IdeaRepository for PostgreSQL
type PostgresIdeaRepository struct {
	db *gorm.DB
}

// NewPostgresIdeaRepository creates a new PostgresIdeaRepository
func NewPostgresIdeaRepository(db *gorm.DB) *PostgresIdeaRepository {
	return &PostgresIdeaRepository{db: db}
}

func (r *PostgresIdeaRepository) CreateIdea(ctx context.Context, idea *models.Idea) error {
	return translateError("create idea", r.db.WithContext(ctx).Omit(clause.Associations).Create(idea).Error)
}

// GetIdeaByID retrieves an idea by ID, preloading the requested relations
func (r *PostgresIdeaRepository) GetIdeaByID(ctx context.Context, id string, relations ...string) (*models.Idea, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	var idea models.Idea
	if err := withRelations(r.db.WithContext(ctx), relations).First(&idea, "id = ?", id).Error; err != nil {
		return nil, translateError("get idea", err)
	}
	if hasRelation(relations, RelVotes) && idea.Votes == nil {
		idea.Votes = []models.Vote{}
	}
	if hasRelation(relations, RelComments) && idea.Comments == nil {
		idea.Comments = []models.Comment{}
	}
	return &idea, nil
}

// GetIdeas retrieves a page of ideas with their author and votes
func (r *PostgresIdeaRepository) GetIdeas(ctx context.Context, page Page) ([]models.Idea, error) {
	order := "created_at ASC"
	if page.Newest {
		order = "created_at DESC"
	}

	var ideas []models.Idea
	err := r.db.WithContext(ctx).
		Preload(RelAuthor).
		Preload(RelVotes).
		Order(order).
		Limit(page.limit()).
		Offset(page.offset()).
		Find(&ideas).Error
	if err != nil {
		return nil, translateError("get ideas", err)
	}
	loadedVotes(ideas)
	return ideas, nil
}

// UpdateIdea writes the editable fields, guarded by the author ID
func (r *PostgresIdeaRepository) UpdateIdea(ctx context.Context, idea *models.Idea) error {
	res := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Where("id = ? AND author_id = ?", idea.ID, idea.AuthorID).
		Updates(map[string]interface{}{
			"idea":        idea.Idea,
			"description": idea.Description,
			"updated_at":  idea.UpdatedAt,
		})
	if res.Error != nil {
		return translateError("update idea", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteIdea deletes the idea and everything hanging off it in one transaction
func (r *PostgresIdeaRepository) DeleteIdea(ctx context.Context, id, authorID string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea models.Idea
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND author_id = ?", id, authorID).
			Take(&idea).Error
		if err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&idea).Error
	})
	return translateError("delete idea", err)
}
