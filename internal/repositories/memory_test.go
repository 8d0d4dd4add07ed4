package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T) (*Memory, *models.User, *models.Idea) {
	t.Helper()
	m := NewMemory()
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "hash"}
	require.NoError(t, m.CreateUser(ctx, user))
	idea := &models.Idea{Idea: "Rain gardens", Description: "On every roof", AuthorID: user.ID}
	require.NoError(t, m.CreateIdea(ctx, idea))
	return m, user, idea
}

func TestMemory_UserLookups(t *testing.T) {
	m, alice, _ := seedMemory(t)
	ctx := context.Background()

	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	err := m.CreateUser(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := m.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Nil(t, got.Ideas)

	_, err = m.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)

	uid := "fb-1"
	require.NoError(t, m.CreateUser(ctx, &models.User{Username: "bob", FirebaseUID: &uid}))
	bob, err := m.GetUserByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Username)
	_, err = m.GetUserByFirebaseUID(ctx, "fb-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_RelationsLoadedOnlyWhenAsked(t *testing.T) {
	m, alice, idea := seedMemory(t)
	ctx := context.Background()

	bare, err := m.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Nil(t, bare.Author)
	assert.Nil(t, bare.Votes)
	assert.Nil(t, bare.Comments)

	full, err := m.GetIdeaByID(ctx, idea.ID, RelAuthor, RelVotes, RelComments)
	require.NoError(t, err)
	require.NotNil(t, full.Author)
	assert.Equal(t, alice.Username, full.Author.Username)
	assert.NotNil(t, full.Votes)
	assert.Empty(t, full.Votes)
	assert.NotNil(t, full.Comments)

	user, err := m.GetUserByID(ctx, alice.ID, RelIdeasVotes)
	require.NoError(t, err)
	require.Len(t, user.Ideas, 1)
	assert.NotNil(t, user.Ideas[0].Votes)
	assert.Nil(t, user.Bookmarks)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m, _, idea := seedMemory(t)
	ctx := context.Background()

	got, err := m.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	got.Idea = "mutated"

	again, err := m.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rain gardens", again.Idea)
}

func TestMemory_ApplyVote(t *testing.T) {
	m, alice, idea := seedMemory(t)
	ctx := context.Background()

	set := func(dir models.VoteDirection) func(models.VoteDirection) models.VoteDirection {
		return func(models.VoteDirection) models.VoteDirection { return dir }
	}

	var seen models.VoteDirection
	next, err := m.ApplyVote(ctx, idea.ID, alice.ID, func(cur models.VoteDirection) models.VoteDirection {
		seen = cur
		return models.VoteUp
	})
	require.NoError(t, err)
	assert.Equal(t, models.VoteNone, seen)
	assert.Equal(t, models.VoteUp, next)

	_, err = m.ApplyVote(ctx, idea.ID, alice.ID, set(models.VoteDown))
	require.NoError(t, err)
	got, err := m.GetIdeaByID(ctx, idea.ID, RelVotes)
	require.NoError(t, err)
	assert.Empty(t, got.Upvoters())
	assert.Equal(t, []string{alice.ID}, got.Downvoters())
	assert.Equal(t, models.VoteDown, got.VoteOf(alice.ID))

	_, err = m.ApplyVote(ctx, idea.ID, alice.ID, set(models.VoteNone))
	require.NoError(t, err)
	got, err = m.GetIdeaByID(ctx, idea.ID, RelVotes)
	require.NoError(t, err)
	assert.Empty(t, got.Votes)

	_, err = m.ApplyVote(ctx, "missing", alice.ID, set(models.VoteUp))
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = m.ApplyVote(ctx, idea.ID, "ghost", set(models.VoteUp))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_Bookmarks(t *testing.T) {
	m, alice, idea := seedMemory(t)
	ctx := context.Background()

	second := &models.Idea{Idea: "Tool library", Description: "Borrow a drill", AuthorID: alice.ID}
	require.NoError(t, m.CreateIdea(ctx, second))

	require.NoError(t, m.AddBookmark(ctx, alice.ID, second.ID))
	require.NoError(t, m.AddBookmark(ctx, alice.ID, idea.ID))
	assert.ErrorIs(t, m.AddBookmark(ctx, alice.ID, idea.ID), common.ErrAlreadyExists)
	assert.ErrorIs(t, m.AddBookmark(ctx, alice.ID, "missing"), common.ErrNotFound)

	user, err := m.GetUserByID(ctx, alice.ID, RelBookmarks)
	require.NoError(t, err)
	require.Len(t, user.Bookmarks, 2)
	assert.Equal(t, second.ID, user.Bookmarks[0].ID)
	assert.True(t, user.HasBookmark(idea.ID))

	require.NoError(t, m.RemoveBookmark(ctx, alice.ID, second.ID))
	assert.ErrorIs(t, m.RemoveBookmark(ctx, alice.ID, second.ID), common.ErrNotFound)

	user, err = m.GetUserByID(ctx, alice.ID, RelBookmarks)
	require.NoError(t, err)
	require.Len(t, user.Bookmarks, 1)
	assert.Equal(t, idea.ID, user.Bookmarks[0].ID)
}

func TestMemory_GuardedWrites(t *testing.T) {
	m, alice, idea := seedMemory(t)
	ctx := context.Background()

	update := *idea
	update.Idea = "Rain gardens v2"
	update.UpdatedAt = time.Now()

	update.AuthorID = "someone-else"
	assert.ErrorIs(t, m.UpdateIdea(ctx, &update), common.ErrNotFound)

	update.AuthorID = alice.ID
	require.NoError(t, m.UpdateIdea(ctx, &update))
	got, err := m.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rain gardens v2", got.Idea)

	comment := &models.Comment{Comment: "nice", AuthorID: alice.ID, IdeaID: idea.ID}
	require.NoError(t, m.CreateComment(ctx, comment))
	assert.ErrorIs(t, m.DeleteComment(ctx, comment.ID, "someone-else"), common.ErrNotFound)

	assert.ErrorIs(t, m.DeleteIdea(ctx, idea.ID, "someone-else"), common.ErrNotFound)
	require.NoError(t, m.DeleteIdea(ctx, idea.ID, alice.ID))
	_, err = m.GetCommentByID(ctx, comment.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_CommentOrdering(t *testing.T) {
	m, alice, idea := seedMemory(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, m.CreateComment(ctx, &models.Comment{Comment: text, AuthorID: alice.ID, IdeaID: idea.ID}))
	}

	byIdea, err := m.GetCommentsByIdeaID(ctx, idea.ID, Page{Size: 2})
	require.NoError(t, err)
	require.Len(t, byIdea, 2)
	assert.Equal(t, "one", byIdea[0].Comment)
	assert.NotNil(t, byIdea[0].Author)
	assert.Nil(t, byIdea[0].Idea)

	byAuthor, err := m.GetCommentsByAuthorID(ctx, alice.ID, Page{})
	require.NoError(t, err)
	require.Len(t, byAuthor, 3)
	assert.Equal(t, "three", byAuthor[0].Comment)
	assert.NotNil(t, byAuthor[0].Idea)

	empty, err := m.GetCommentsByIdeaID(ctx, idea.ID, Page{Number: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryActivityLog(t *testing.T) {
	log := NewMemoryActivityLog()
	ctx := context.Background()

	for _, typ := range []string{models.ActivityIdeaCreated, models.ActivityUpvote, models.ActivityBookmark} {
		require.NoError(t, log.RecordActivity(ctx, &models.Activity{Type: typ, ActorID: "alice"}))
	}
	require.NoError(t, log.RecordActivity(ctx, &models.Activity{Type: models.ActivityUpvote, ActorID: "bob"}))

	got, err := log.GetActivitiesByActor(ctx, "alice", 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ActivityUpvote, got[0].Type)
	assert.Equal(t, models.ActivityIdeaCreated, got[1].Type)
	assert.False(t, got[0].ID.IsZero())
}

func TestPage(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Page{}.limit())
	assert.Equal(t, 0, Page{Number: 1}.offset())
	assert.Equal(t, 20, Page{Number: 3, Size: 10}.offset())
	assert.Equal(t, []int{2, 3}, paginate(5, Page{Number: 2, Size: 2}))
	assert.Equal(t, []int{4}, paginate(5, Page{Number: 3, Size: 2}))
	assert.Empty(t, paginate(5, Page{Number: 4, Size: 2}))
}
