package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/idea-board/backend/internal/auth"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeFederated struct{}

func (fakeFederated) VerifyIDToken(_ context.Context, idToken string) (*models.FederatedIdentity, error) {
	return &models.FederatedIdentity{UID: "fb-" + idToken, Email: idToken + "@example.com"}, nil
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	e := NewServer(Deps{
		Config:    &config.Config{PageSize: 25, BcryptCost: bcrypt.MinCost},
		Logger:    logging.Nop(),
		Store:     repositories.NewMemoryStore(),
		Activity:  repositories.NewMemoryActivityLog(),
		Tokens:    auth.NewTokenIssuer("router-secret"),
		Federated: fakeFederated{},
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) register(username string) models.UserResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/register", "", `{"username":"`+username+`","password":"pa55word"}`)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.UserResponse](s.t, rec)
}

func (s *testServer) createIdea(token string) models.IdeaResponse {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/ideas", token, `{"idea":"Bike lanes","description":"Everywhere"}`)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.IdeaResponse](s.t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	alice := s.register("alice")
	assert.NotEmpty(t, alice.Token)
	assert.NotContains(t, s.do(http.MethodGet, "/api/users/"+alice.ID, "", "").Body.String(), "password")

	rec := s.do(http.MethodPost, "/api/register", "", `{"username":"alice","password":"again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/login", "", `{"username":"alice","password":"pa55word"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[models.UserResponse](t, rec).Token)

	rec = s.do(http.MethodPost, "/api/login", "", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/login", "", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/login", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/login/firebase", "", `{"idToken":"carol"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "carol", decode[models.UserResponse](t, rec).Username)
}

func TestWritesRequireToken(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	idea := s.createIdea(alice.Token)

	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/api/ideas"},
		{http.MethodPut, "/api/ideas/" + idea.ID},
		{http.MethodDelete, "/api/ideas/" + idea.ID},
		{http.MethodPost, "/api/ideas/" + idea.ID + "/upvote"},
		{http.MethodPost, "/api/ideas/" + idea.ID + "/downvote"},
		{http.MethodPost, "/api/ideas/" + idea.ID + "/bookmark"},
		{http.MethodDelete, "/api/ideas/" + idea.ID + "/bookmark"},
		{http.MethodPost, "/api/comments/idea/" + idea.ID},
		{http.MethodDelete, "/api/comments/whatever"},
	} {
		rec := s.do(r.method, r.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)

		rec = s.do(r.method, r.path, "forged.token.value", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
	}
}

func TestIdeaLifecycle(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author")
	voter := s.register("voter")

	idea := s.createIdea(author.Token)
	require.NotNil(t, idea.Author)
	assert.Equal(t, "author", idea.Author.Username)
	assert.Equal(t, 0, *idea.Upvotes)

	rec := s.do(http.MethodPost, "/api/ideas/"+idea.ID+"/upvote", voter.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *decode[models.IdeaResponse](t, rec).Upvotes)

	rec = s.do(http.MethodPost, "/api/ideas/"+idea.ID+"/downvote", voter.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.IdeaResponse](t, rec)
	assert.Equal(t, 0, *got.Upvotes)
	assert.Equal(t, 0, *got.Downvotes)

	rec = s.do(http.MethodPut, "/api/ideas/"+idea.ID, voter.Token, `{"idea":"Mine now"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, "/api/ideas/"+idea.ID, author.Token, `{"idea":"Protected bike lanes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Protected bike lanes", decode[models.IdeaResponse](t, rec).Idea)

	rec = s.do(http.MethodGet, "/api/ideas?newest=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]models.IdeaResponse](t, rec), 1)

	rec = s.do(http.MethodDelete, "/api/ideas/"+idea.ID, voter.Token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/ideas/"+idea.ID, author.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	deleted := decode[models.IdeaResponse](t, rec)
	assert.Equal(t, 0, *deleted.Upvotes)
	assert.Equal(t, 0, *deleted.Downvotes)

	rec = s.do(http.MethodGet, "/api/ideas/"+idea.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookmarkFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	idea := s.createIdea(alice.Token)
	path := "/api/ideas/" + idea.ID + "/bookmark"

	rec := s.do(http.MethodPost, path, alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[models.UserResponse](t, rec)
	require.NotNil(t, user.Bookmarks)
	require.Len(t, *user.Bookmarks, 1)
	assert.Empty(t, user.Token)

	rec = s.do(http.MethodPost, path, alice.Token, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, path, alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, path, alice.Token, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/ideas/missing/bookmark", alice.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	idea := s.createIdea(alice.Token)

	rec := s.do(http.MethodPost, "/api/comments/idea/"+idea.ID, bob.Token, `{"comment":"Count me in"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[models.CommentResponse](t, rec)

	rec = s.do(http.MethodPost, "/api/comments/idea/"+idea.ID, bob.Token, `{"comment":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/comments/idea/"+idea.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.CommentResponse](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/comments/user/"+bob.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.CommentResponse](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/comments/"+comment.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/comments/"+comment.ID, alice.Token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/comments/"+comment.ID, bob.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/comments/"+comment.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersAndActivity(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	s.register("bob")
	idea := s.createIdea(alice.Token)
	rec := s.do(http.MethodPost, "/api/ideas/"+idea.ID+"/upvote", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.UserResponse](t, rec), 2)

	rec = s.do(http.MethodGet, "/api/users?page=0", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/"+alice.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[models.UserResponse](t, rec)
	require.NotNil(t, profile.Ideas)
	require.Len(t, *profile.Ideas, 1)
	assert.Equal(t, 1, *(*profile.Ideas)[0].Upvotes)

	rec = s.do(http.MethodGet, "/api/users/"+alice.ID+"/activity", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	activity := decode[[]models.Activity](t, rec)
	require.Len(t, activity, 2)
	assert.Equal(t, models.ActivityUpvote, activity[0].Type)
	assert.Equal(t, models.ActivityIdeaCreated, activity[1].Type)

	rec = s.do(http.MethodGet, "/api/users/ghost/activity", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetupStore_MemoryDriver(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.StoreDriverMemory}
	store, activity, err := SetupStore(context.Background(), cfg, &config.DB{}, logging.Nop())
	require.NoError(t, err)
	assert.NotNil(t, store.Ideas)
	assert.NotNil(t, activity)
}
