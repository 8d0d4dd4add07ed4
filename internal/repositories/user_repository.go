package repositories

import (
	"context"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"gorm.io/gorm"
)

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts the user; a taken username yields common.ErrAlreadyExists.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError("create user", r.db.WithContext(ctx).Create(user).Error)
}

// GetUserByID retrieves a user by ID, preloading the requested relations
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string, relations ...string) (*models.User, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	var user models.User
	if err := withRelations(r.db.WithContext(ctx), relations).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError("get user", err)
	}
	if hasRelation(relations, RelIdeas) && user.Ideas == nil {
		user.Ideas = []models.Idea{}
	}
	if hasRelation(relations, RelIdeasVotes) {
		loadedVotes(user.Ideas)
	}
	if hasRelation(relations, RelBookmarks) && user.Bookmarks == nil {
		user.Bookmarks = []models.Idea{}
	}
	if hasRelation(relations, RelBookmarksVotes) {
		loadedVotes(user.Bookmarks)
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError("get user by username", err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translateError("get user by firebase uid", err)
	}
	return &user, nil
}

// GetUsers retrieves a page of users, oldest first
func (r *PostgresUserRepository) GetUsers(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(page.limit()).
		Offset(page.offset()).
		Find(&users).Error
	if err != nil {
		return nil, translateError("get users", err)
	}
	return users, nil
}
