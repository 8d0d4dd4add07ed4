package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRecord struct {
	seq       int
	user      models.User
	bookmarks []string // idea IDs in insertion order, each at most once
}

type ideaRecord struct {
	seq        int
	idea       models.Idea
	upvoters   map[string]time.Time
	downvoters map[string]time.Time
}

type commentRecord struct {
	seq     int
	comment models.Comment
}

// Memory is an in-process store. Records are addressed by ID and own their
// relation sets; every method runs under one lock, so each call is atomic.
type Memory struct {
	mu  sync.RWMutex
	seq int
	now func() time.Time

	users     map[string]*userRecord
	usernames map[string]string
	firebase  map[string]string
	ideas     map[string]*ideaRecord
	comments  map[string]*commentRecord
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		now:       time.Now,
		users:     map[string]*userRecord{},
		usernames: map[string]string{},
		firebase:  map[string]string{},
		ideas:     map[string]*ideaRecord{},
		comments:  map[string]*commentRecord{},
	}
}

func (m *Memory) nextSeq() int {
	m.seq++
	return m.seq
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.usernames[user.Username]; taken {
		return common.ErrAlreadyExists
	}
	if user.FirebaseUID != nil {
		if _, taken := m.firebase[*user.FirebaseUID]; taken {
			return common.ErrAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, taken := m.users[user.ID]; taken {
		return common.ErrAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}

	stored := *user
	stored.Ideas, stored.Bookmarks = nil, nil
	m.users[user.ID] = &userRecord{seq: m.nextSeq(), user: stored}
	m.usernames[user.Username] = user.ID
	if user.FirebaseUID != nil {
		m.firebase[*user.FirebaseUID] = user.ID
	}
	return nil
}

func (m *Memory) GetUserByID(_ context.Context, id string, relations ...string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.loadUser(rec, relations), nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.loadUser(m.users[id], nil), nil
}

func (m *Memory) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.firebase[firebaseUID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.loadUser(m.users[id], nil), nil
}

func (m *Memory) GetUsers(_ context.Context, page Page) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*userRecord, 0, len(m.users))
	for _, rec := range m.users {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := []models.User{}
	for _, idx := range paginate(len(recs), page) {
		out = append(out, *m.loadUser(recs[idx], nil))
	}
	return out, nil
}

func (m *Memory) CreateIdea(_ context.Context, idea *models.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[idea.AuthorID]; !ok {
		return common.ErrNotFound
	}
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	if _, taken := m.ideas[idea.ID]; taken {
		return common.ErrAlreadyExists
	}
	now := m.now()
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = now
	}
	if idea.UpdatedAt.IsZero() {
		idea.UpdatedAt = now
	}

	stored := *idea
	stored.Author, stored.Votes, stored.Comments = nil, nil, nil
	m.ideas[idea.ID] = &ideaRecord{
		seq:        m.nextSeq(),
		idea:       stored,
		upvoters:   map[string]time.Time{},
		downvoters: map[string]time.Time{},
	}
	return nil
}

func (m *Memory) GetIdeaByID(_ context.Context, id string, relations ...string) (*models.Idea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.ideas[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.loadIdea(rec, relations), nil
}

func (m *Memory) GetIdeas(_ context.Context, page Page) ([]models.Idea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*ideaRecord, 0, len(m.ideas))
	for _, rec := range m.ideas {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if page.Newest {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].seq < recs[j].seq
	})

	out := []models.Idea{}
	for _, idx := range paginate(len(recs), page) {
		out = append(out, *m.loadIdea(recs[idx], []string{RelAuthor, RelVotes}))
	}
	return out, nil
}

func (m *Memory) UpdateIdea(_ context.Context, idea *models.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.ideas[idea.ID]
	if !ok || rec.idea.AuthorID != idea.AuthorID {
		return common.ErrNotFound
	}
	rec.idea.Idea = idea.Idea
	rec.idea.Description = idea.Description
	rec.idea.UpdatedAt = idea.UpdatedAt
	return nil
}

func (m *Memory) DeleteIdea(_ context.Context, id, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.ideas[id]
	if !ok || rec.idea.AuthorID != authorID {
		return common.ErrNotFound
	}
	for _, u := range m.users {
		u.bookmarks = without(u.bookmarks, id)
	}
	for cid, c := range m.comments {
		if c.comment.IdeaID == id {
			delete(m.comments, cid)
		}
	}
	delete(m.ideas, id)
	return nil
}

// ApplyVote moves userID between the idea's voter sets. The user is removed
// from both sets before being added to the one matching the decided direction.
func (m *Memory) ApplyVote(_ context.Context, ideaID, userID string, decide func(models.VoteDirection) models.VoteDirection) (models.VoteDirection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.ideas[ideaID]
	if !ok {
		return models.VoteNone, common.ErrNotFound
	}
	if _, ok := m.users[userID]; !ok {
		return models.VoteNone, common.ErrNotFound
	}

	current := models.VoteNone
	if _, ok := rec.upvoters[userID]; ok {
		current = models.VoteUp
	} else if _, ok := rec.downvoters[userID]; ok {
		current = models.VoteDown
	}

	next := decide(current)
	if next == current {
		return next, nil
	}
	delete(rec.upvoters, userID)
	delete(rec.downvoters, userID)
	switch next {
	case models.VoteUp:
		rec.upvoters[userID] = m.now()
	case models.VoteDown:
		rec.downvoters[userID] = m.now()
	}
	return next, nil
}

func (m *Memory) AddBookmark(_ context.Context, userID, ideaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	if _, ok := m.ideas[ideaID]; !ok {
		return common.ErrNotFound
	}
	for _, id := range u.bookmarks {
		if id == ideaID {
			return common.ErrAlreadyExists
		}
	}
	u.bookmarks = append(u.bookmarks, ideaID)
	return nil
}

func (m *Memory) RemoveBookmark(_ context.Context, userID, ideaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	before := len(u.bookmarks)
	u.bookmarks = without(u.bookmarks, ideaID)
	if len(u.bookmarks) == before {
		return common.ErrNotFound
	}
	return nil
}

func (m *Memory) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[comment.AuthorID]; !ok {
		return common.ErrNotFound
	}
	if _, ok := m.ideas[comment.IdeaID]; !ok {
		return common.ErrNotFound
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = m.now()
	}

	stored := *comment
	stored.Author, stored.Idea = nil, nil
	m.comments[comment.ID] = &commentRecord{seq: m.nextSeq(), comment: stored}
	return nil
}

func (m *Memory) GetCommentByID(_ context.Context, id string, relations ...string) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.loadComment(rec, relations), nil
}

func (m *Memory) GetCommentsByIdeaID(_ context.Context, ideaID string, page Page) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.commentsWhere(func(c *models.Comment) bool { return c.IdeaID == ideaID }, false)
	out := []models.Comment{}
	for _, idx := range paginate(len(recs), page) {
		out = append(out, *m.loadComment(recs[idx], []string{RelAuthor}))
	}
	return out, nil
}

func (m *Memory) GetCommentsByAuthorID(_ context.Context, authorID string, page Page) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.commentsWhere(func(c *models.Comment) bool { return c.AuthorID == authorID }, true)
	out := []models.Comment{}
	for _, idx := range paginate(len(recs), page) {
		out = append(out, *m.loadComment(recs[idx], []string{RelAuthor, RelIdea}))
	}
	return out, nil
}

func (m *Memory) DeleteComment(_ context.Context, id, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.comments[id]
	if !ok || rec.comment.AuthorID != authorID {
		return common.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// --- projections of records into model values; callers hold the lock ---

func (m *Memory) loadUser(rec *userRecord, relations []string) *models.User {
	u := rec.user
	if hasRelation(relations, RelIdeas) {
		u.Ideas = []models.Idea{}
		for _, irec := range m.sortedIdeas() {
			if irec.idea.AuthorID == u.ID {
				u.Ideas = append(u.Ideas, *m.loadIdea(irec, nestedRelations(relations, RelIdeas)))
			}
		}
	}
	if hasRelation(relations, RelBookmarks) {
		u.Bookmarks = []models.Idea{}
		for _, id := range rec.bookmarks {
			if irec, ok := m.ideas[id]; ok {
				u.Bookmarks = append(u.Bookmarks, *m.loadIdea(irec, nestedRelations(relations, RelBookmarks)))
			}
		}
	}
	return &u
}

func (m *Memory) loadIdea(rec *ideaRecord, relations []string) *models.Idea {
	idea := rec.idea
	if hasRelation(relations, RelAuthor) {
		if a, ok := m.users[idea.AuthorID]; ok {
			author := a.user
			idea.Author = &author
		}
	}
	if hasRelation(relations, RelVotes) {
		idea.Votes = []models.Vote{}
		for uid, at := range rec.upvoters {
			idea.Votes = append(idea.Votes, models.Vote{IdeaID: idea.ID, UserID: uid, Direction: models.VoteUp, CreatedAt: at})
		}
		for uid, at := range rec.downvoters {
			idea.Votes = append(idea.Votes, models.Vote{IdeaID: idea.ID, UserID: uid, Direction: models.VoteDown, CreatedAt: at})
		}
		sort.Slice(idea.Votes, func(i, j int) bool { return idea.Votes[i].UserID < idea.Votes[j].UserID })
	}
	if hasRelation(relations, RelComments) {
		idea.Comments = []models.Comment{}
		for _, crec := range m.commentsWhere(func(c *models.Comment) bool { return c.IdeaID == idea.ID }, false) {
			idea.Comments = append(idea.Comments, *m.loadComment(crec, nestedRelations(relations, RelComments)))
		}
	}
	return &idea
}

func (m *Memory) loadComment(rec *commentRecord, relations []string) *models.Comment {
	c := rec.comment
	if hasRelation(relations, RelAuthor) {
		if a, ok := m.users[c.AuthorID]; ok {
			author := a.user
			c.Author = &author
		}
	}
	if hasRelation(relations, RelIdea) {
		if irec, ok := m.ideas[c.IdeaID]; ok {
			c.Idea = m.loadIdea(irec, nil)
		}
	}
	return &c
}

func (m *Memory) sortedIdeas() []*ideaRecord {
	recs := make([]*ideaRecord, 0, len(m.ideas))
	for _, rec := range m.ideas {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}

func (m *Memory) commentsWhere(keep func(*models.Comment) bool, newestFirst bool) []*commentRecord {
	recs := []*commentRecord{}
	for _, rec := range m.comments {
		if keep(&rec.comment) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if newestFirst {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].seq < recs[j].seq
	})
	return recs
}

// nestedRelations turns "Comments.Author" into "Author" for the Comments level.
func nestedRelations(relations []string, parent string) []string {
	prefix := parent + "."
	var out []string
	for _, r := range relations {
		if strings.HasPrefix(r, prefix) {
			out = append(out, strings.TrimPrefix(r, prefix))
		}
	}
	return out
}

// paginate returns the indexes of a total-long listing that fall into page.
func paginate(total int, page Page) []int {
	start := page.offset()
	if start >= total {
		return nil
	}
	end := start + page.limit()
	if end > total {
		end = total
	}
	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return idx
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// MemoryActivityLog is an ActivityRepository kept in process memory.
type MemoryActivityLog struct {
	mu      sync.Mutex
	entries []models.Activity
}

func NewMemoryActivityLog() *MemoryActivityLog {
	return &MemoryActivityLog{}
}

func (l *MemoryActivityLog) RecordActivity(_ context.Context, activity *models.Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	l.entries = append(l.entries, *activity)
	return nil
}

func (l *MemoryActivityLog) GetActivitiesByActor(_ context.Context, actorID string, skip, limit int64) ([]models.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.Activity{}
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ActorID != actorID {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, l.entries[i])
	}
	return out, nil
}
