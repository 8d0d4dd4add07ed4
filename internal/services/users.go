package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer issues identity tokens for a user.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// IdentityVerifier verifies ID tokens minted by an external identity provider.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*models.FederatedIdentity, error)
}

// UserService handles accounts, credentials and bookmarks.
type UserService struct {
	users      repositories.UserRepository
	ideas      repositories.IdeaRepository
	bookmarks  repositories.BookmarkRepository
	tokens     TokenIssuer
	federated  IdentityVerifier
	bcryptCost int
	logger     logging.Logger
}

// NewUserService creates a UserService. federated may be nil, in which case
// FirebaseLogin always fails with common.ErrUnauthorized.
func NewUserService(store *repositories.Store, tokens TokenIssuer, federated IdentityVerifier, bcryptCost int, logger logging.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      store.Users,
		ideas:      store.Ideas,
		bookmarks:  store.Bookmarks,
		tokens:     tokens,
		federated:  federated,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a user and returns it together with a fresh token.
func (s *UserService) Register(ctx context.Context, req models.AuthRequest) (*models.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: req.Username, Password: string(hash)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrUsernameTaken
		}
		return nil, err
	}
	return s.withToken(user)
}

// Login checks the credentials and returns the user with a fresh token.
func (s *UserService) Login(ctx context.Context, req models.AuthRequest) (*models.UserResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password == "" {
		return nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.withToken(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local token, creating the
// local user on first sight. Such users have no password.
func (s *UserService) FirebaseLogin(ctx context.Context, idToken string) (*models.UserResponse, error) {
	if s.federated == nil {
		return nil, common.ErrUnauthorized
	}
	identity, err := s.federated.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn(ctx, "firebase token rejected", "error", err)
		return nil, common.ErrInvalidToken
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, identity.UID)
	if err == nil {
		return s.withToken(user)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	uid := identity.UID
	user = &models.User{Username: federatedUsername(identity), FirebaseUID: &uid}
	err = s.users.CreateUser(ctx, user)
	if errors.Is(err, common.ErrAlreadyExists) {
		// Handle taken by a local account; disambiguate with the UID.
		user = &models.User{Username: user.Username + "-" + shortUID(uid), FirebaseUID: &uid}
		err = s.users.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return s.withToken(user)
}

// List returns a page of users without relations.
func (s *UserService) List(ctx context.Context, page repositories.Page) ([]models.UserResponse, error) {
	users, err := s.users.GetUsers(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToResponse(""))
	}
	return out, nil
}

// Get returns a user with their ideas and bookmarks.
func (s *UserService) Get(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, id,
		repositories.RelIdeas, repositories.RelIdeasVotes,
		repositories.RelBookmarks, repositories.RelBookmarksVotes)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(""), nil
}

// Exists reports common.ErrNotFound when no user has the given id. No
// relations are loaded.
func (s *UserService) Exists(ctx context.Context, id string) error {
	_, err := s.users.GetUserByID(ctx, id)
	return err
}

// Bookmark adds the idea to callerID's bookmarks. Bookmarking twice fails
// with common.ErrAlreadyBookmarked.
func (s *UserService) Bookmark(ctx context.Context, ideaID, callerID string) (*models.UserResponse, error) {
	user, err := s.loadBookmarks(ctx, ideaID, callerID)
	if err != nil {
		return nil, err
	}
	if user.HasBookmark(ideaID) {
		return nil, common.ErrAlreadyBookmarked
	}

	if err := s.bookmarks.AddBookmark(ctx, callerID, ideaID); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyBookmarked
		}
		return nil, err
	}
	return s.projectBookmarks(ctx, callerID)
}

// Unbookmark removes the idea from callerID's bookmarks. Removing an idea
// that is not bookmarked fails with common.ErrNotBookmarked.
func (s *UserService) Unbookmark(ctx context.Context, ideaID, callerID string) (*models.UserResponse, error) {
	user, err := s.loadBookmarks(ctx, ideaID, callerID)
	if err != nil {
		return nil, err
	}
	if !user.HasBookmark(ideaID) {
		return nil, common.ErrNotBookmarked
	}

	if err := s.bookmarks.RemoveBookmark(ctx, callerID, ideaID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotBookmarked
		}
		return nil, err
	}
	return s.projectBookmarks(ctx, callerID)
}

func (s *UserService) loadBookmarks(ctx context.Context, ideaID, callerID string) (*models.User, error) {
	if _, err := s.ideas.GetIdeaByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, callerID, repositories.RelBookmarks)
}

func (s *UserService) projectBookmarks(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID, repositories.RelBookmarks, repositories.RelBookmarksVotes)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(""), nil
}

func (s *UserService) withToken(user *models.User) (*models.UserResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return user.ToResponse(token), nil
}

// federatedUsername picks a handle for a new federated user: the e-mail local
// part, then the display name, then the UID.
func federatedUsername(identity *models.FederatedIdentity) string {
	if local, _, ok := strings.Cut(identity.Email, "@"); ok && local != "" {
		return local
	}
	if name := strings.Join(strings.Fields(identity.Name), "_"); name != "" {
		return name
	}
	return identity.UID
}

func shortUID(uid string) string {
	if len(uid) > 8 {
		return uid[:8]
	}
	return uid
}
