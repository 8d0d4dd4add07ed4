package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relations accepted by the GetXByID lookups.
const (
	RelAuthor         = "Author"
	RelVotes          = "Votes"
	RelComments       = "Comments"
	RelCommentsAuthor = "Comments.Author"
	RelIdeas          = "Ideas"
	RelIdeasVotes     = "Ideas.Votes"
	RelBookmarks      = "Bookmarks"
	RelBookmarksVotes = "Bookmarks.Votes"
	RelIdea           = "Idea"
)

// DefaultPageSize is used when a Page has no size.
const DefaultPageSize = 25

// Page selects a slice of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
	Newest bool
}

func (p Page) limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

func (p Page) offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.limit()
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string, relations ...string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsers(ctx context.Context, page Page) ([]models.User, error)
}

// IdeaRepository defines the interface for idea data operations
type IdeaRepository interface {
	CreateIdea(ctx context.Context, idea *models.Idea) error
	GetIdeaByID(ctx context.Context, id string, relations ...string) (*models.Idea, error)
	// GetIdeas returns a page of ideas with Author and Votes loaded.
	GetIdeas(ctx context.Context, page Page) ([]models.Idea, error)
	// UpdateIdea persists idea's fields only if idea.AuthorID still owns it.
	UpdateIdea(ctx context.Context, idea *models.Idea) error
	// DeleteIdea removes the idea with its votes, bookmarks and comments only if authorID owns it.
	DeleteIdea(ctx context.Context, id, authorID string) error
}

// VoteRepository persists membership in an idea's voter sets.
type VoteRepository interface {
	// ApplyVote reads the direction userID holds on ideaID, asks decide for the
	// next one and stores it, all as one atomic step. It returns the stored direction.
	ApplyVote(ctx context.Context, ideaID, userID string, decide func(current models.VoteDirection) models.VoteDirection) (models.VoteDirection, error)
}

// BookmarkRepository persists membership in a user's bookmark set.
type BookmarkRepository interface {
	// AddBookmark fails with common.ErrAlreadyExists if the pair is present.
	AddBookmark(ctx context.Context, userID, ideaID string) error
	// RemoveBookmark fails with common.ErrNotFound if the pair is absent.
	RemoveBookmark(ctx context.Context, userID, ideaID string) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string, relations ...string) (*models.Comment, error)
	GetCommentsByIdeaID(ctx context.Context, ideaID string, page Page) ([]models.Comment, error)
	GetCommentsByAuthorID(ctx context.Context, authorID string, page Page) ([]models.Comment, error)
	// DeleteComment removes the comment only if authorID owns it.
	DeleteComment(ctx context.Context, id, authorID string) error
}

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	RecordActivity(ctx context.Context, activity *models.Activity) error
	GetActivitiesByActor(ctx context.Context, actorID string, skip, limit int64) ([]models.Activity, error)
}

// Store bundles the repositories of one persistence backend.
type Store struct {
	Users     UserRepository
	Ideas     IdeaRepository
	Votes     VoteRepository
	Bookmarks BookmarkRepository
	Comments  CommentRepository
}

// NewPostgresStore wires every Postgres repository on db.
func NewPostgresStore(db *gorm.DB) *Store {
	return &Store{
		Users:     NewPostgresUserRepository(db),
		Ideas:     NewPostgresIdeaRepository(db),
		Votes:     NewPostgresVoteRepository(db),
		Bookmarks: NewPostgresBookmarkRepository(db),
		Comments:  NewPostgresCommentRepository(db),
	}
}

// NewMemoryStore wires every repository on one Memory store.
func NewMemoryStore() *Store {
	m := NewMemory()
	return &Store{Users: m, Ideas: m, Votes: m, Bookmarks: m, Comments: m}
}

// AutoMigrate creates or updates the tables behind the Postgres repositories.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Bookmarks", &models.Bookmark{}); err != nil {
		return fmt.Errorf("setup bookmarks join table: %w", err)
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Idea{},
		&models.Vote{},
		&models.Bookmark{},
		&models.Comment{},
	)
}

// translateError maps gorm errors onto the shared sentinels.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return common.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.ErrAlreadyExists
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func withRelations(db *gorm.DB, relations []string) *gorm.DB {
	for _, rel := range relations {
		db = db.Preload(rel)
	}
	return db
}

// validID reports whether id can be a primary key. Anything else cannot exist
// in a uuid column, so lookups short-circuit to ErrNotFound.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// hasRelation reports whether rel is loaded, either named directly or as the
// parent of a nested relation such as "Ideas.Votes".
func hasRelation(relations []string, rel string) bool {
	for _, r := range relations {
		if r == rel || strings.HasPrefix(r, rel+".") {
			return true
		}
	}
	return false
}

// loadedVotes marks the votes of ideas as loaded even when none were found.
func loadedVotes(ideas []models.Idea) {
	for i := range ideas {
		if ideas[i].Votes == nil {
			ideas[i].Votes = []models.Vote{}
		}
	}
}
