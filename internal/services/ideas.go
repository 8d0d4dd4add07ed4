package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
)

// IdeaService implements idea CRUD and vote casting.
type IdeaService struct {
	ideas repositories.IdeaRepository
	votes repositories.VoteRepository
	users repositories.UserRepository
	now   func() time.Time
}

// NewIdeaService creates an IdeaService over the given store.
func NewIdeaService(store *repositories.Store) *IdeaService {
	return &IdeaService{
		ideas: store.Ideas,
		votes: store.Votes,
		users: store.Users,
		now:   time.Now,
	}
}

// List returns a page of ideas with author and vote counts.
func (s *IdeaService) List(ctx context.Context, page repositories.Page) ([]models.IdeaResponse, error) {
	ideas, err := s.ideas.GetIdeas(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]models.IdeaResponse, 0, len(ideas))
	for i := range ideas {
		out = append(out, *ideas[i].ToResponse())
	}
	return out, nil
}

// Get returns one idea with author, vote counts and comments.
func (s *IdeaService) Get(ctx context.Context, id string) (*models.IdeaResponse, error) {
	idea, err := s.ideas.GetIdeaByID(ctx, id,
		repositories.RelAuthor, repositories.RelVotes, repositories.RelComments, repositories.RelCommentsAuthor)
	if err != nil {
		return nil, err
	}
	return idea.ToResponse(), nil
}

// Create stores a new idea authored by callerID.
func (s *IdeaService) Create(ctx context.Context, callerID string, req models.CreateIdeaRequest) (*models.IdeaResponse, error) {
	if _, err := s.users.GetUserByID(ctx, callerID); err != nil {
		return nil, err
	}
	idea := &models.Idea{
		Idea:        req.Idea,
		Description: req.Description,
		AuthorID:    callerID,
	}
	if err := s.ideas.CreateIdea(ctx, idea); err != nil {
		return nil, err
	}
	return s.project(ctx, idea.ID)
}

// Update applies patch to the idea. Only its author may do so.
func (s *IdeaService) Update(ctx context.Context, id, callerID string, patch models.UpdateIdeaRequest) (*models.IdeaResponse, error) {
	idea, err := s.ideas.GetIdeaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwner(idea, callerID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.project(ctx, id)
	}

	if patch.Idea != nil {
		idea.Idea = *patch.Idea
	}
	if patch.Description != nil {
		idea.Description = *patch.Description
	}
	idea.UpdatedAt = s.now()
	if err := s.ideas.UpdateIdea(ctx, idea); err != nil {
		return nil, err
	}
	return s.project(ctx, id)
}

// Delete removes the idea with its votes, bookmark links and comments. Only
// its author may do so. The returned projection is the idea as it was.
func (s *IdeaService) Delete(ctx context.Context, id, callerID string) (*models.IdeaResponse, error) {
	idea, err := s.ideas.GetIdeaByID(ctx, id, repositories.RelAuthor, repositories.RelVotes)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwner(idea, callerID); err != nil {
		return nil, err
	}
	if err := s.ideas.DeleteIdea(ctx, id, callerID); err != nil {
		return nil, err
	}
	return idea.ToResponse(), nil
}

// CastVote toggles callerID's vote on the idea in direction dir and returns
// the idea with its new counts.
func (s *IdeaService) CastVote(ctx context.Context, id, callerID string, dir models.VoteDirection) (*models.IdeaResponse, error) {
	if dir != models.VoteUp && dir != models.VoteDown {
		return nil, common.ErrValidation
	}
	if _, err := s.ideas.GetIdeaByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, callerID); err != nil {
		return nil, err
	}

	_, err := s.votes.ApplyVote(ctx, id, callerID, func(current models.VoteDirection) models.VoteDirection {
		return NextVote(current, dir)
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrVoteConflict
		}
		return nil, err
	}
	return s.project(ctx, id)
}

func (s *IdeaService) project(ctx context.Context, id string) (*models.IdeaResponse, error) {
	idea, err := s.ideas.GetIdeaByID(ctx, id, repositories.RelAuthor, repositories.RelVotes)
	if err != nil {
		return nil, err
	}
	return idea.ToResponse(), nil
}
