package services

import (
	"context"
	"testing"

	"github.com/anonto42/idea-board/backend/internal/auth"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store    *repositories.Store
	users    *UserService
	ideas    *IdeaService
	comments *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	return &fixture{
		store:    store,
		users:    NewUserService(store, auth.NewTokenIssuer("test-secret"), nil, bcrypt.MinCost, logging.Nop()),
		ideas:    NewIdeaService(store),
		comments: NewCommentService(store),
	}
}

func (f *fixture) register(t *testing.T, username string) string {
	t.Helper()
	res, err := f.users.Register(context.Background(), models.AuthRequest{Username: username, Password: "pa55word"})
	require.NoError(t, err)
	return res.ID
}

func (f *fixture) createIdea(t *testing.T, authorID string) string {
	t.Helper()
	res, err := f.ideas.Create(context.Background(), authorID, models.CreateIdeaRequest{
		Idea:        "Solar benches",
		Description: "Benches that charge phones",
	})
	require.NoError(t, err)
	return res.ID
}

func strPtr(s string) *string { return &s }
