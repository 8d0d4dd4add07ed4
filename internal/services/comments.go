package services

import (
	"context"

	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
)

// CommentService handles comments on ideas.
type CommentService struct {
	comments repositories.CommentRepository
	ideas    repositories.IdeaRepository
	users    repositories.UserRepository
}

func NewCommentService(store *repositories.Store) *CommentService {
	return &CommentService{
		comments: store.Comments,
		ideas:    store.Ideas,
		users:    store.Users,
	}
}

// ListByIdea returns a page of the idea's comments, oldest first.
func (s *CommentService) ListByIdea(ctx context.Context, ideaID string, page repositories.Page) ([]models.CommentResponse, error) {
	if _, err := s.ideas.GetIdeaByID(ctx, ideaID); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByIdeaID(ctx, ideaID, page)
	if err != nil {
		return nil, err
	}
	return projectComments(comments), nil
}

// ListByUser returns a page of the user's comments, newest first.
func (s *CommentService) ListByUser(ctx context.Context, userID string, page repositories.Page) ([]models.CommentResponse, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByAuthorID(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return projectComments(comments), nil
}

func (s *CommentService) Show(ctx context.Context, id string) (*models.CommentResponse, error) {
	comment, err := s.comments.GetCommentByID(ctx, id, repositories.RelAuthor, repositories.RelIdea)
	if err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}

// Create adds a comment by callerID to the idea.
func (s *CommentService) Create(ctx context.Context, ideaID, callerID string, req models.CreateCommentRequest) (*models.CommentResponse, error) {
	if _, err := s.ideas.GetIdeaByID(ctx, ideaID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, callerID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Comment: req.Comment, AuthorID: callerID, IdeaID: ideaID}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.Show(ctx, comment.ID)
}

// Delete removes the comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, id, callerID string) (*models.CommentResponse, error) {
	comment, err := s.comments.GetCommentByID(ctx, id, repositories.RelAuthor, repositories.RelIdea)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwner(comment, callerID); err != nil {
		return nil, err
	}
	if err := s.comments.DeleteComment(ctx, id, callerID); err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}

func projectComments(comments []models.Comment) []models.CommentResponse {
	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *comments[i].ToResponse())
	}
	return out
}
