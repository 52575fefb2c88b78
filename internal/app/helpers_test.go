package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/model"
	"blogapi/internal/platform/database/dbtest"
	"blogapi/internal/repository"
)

type memoryPostListCache struct {
	mu          sync.Mutex
	posts       []model.PostView
	hit         bool
	gets        int
	invalidated int
	generation  int64
	failGet     bool
	// beforeSet runs at the start of SetRecent, outside the lock.
	beforeSet func()
}

func (c *memoryPostListCache) GetRecent(context.Context) ([]model.PostView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	return c.posts, c.hit, nil
}

func (c *memoryPostListCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *memoryPostListCache) SetRecent(_ context.Context, generation int64, posts []model.PostView) (bool, error) {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false, nil
	}
	c.posts, c.hit = posts, true
	return true, nil
}

func (c *memoryPostListCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts, c.hit = nil, false
	c.invalidated++
	c.generation++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ContentEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event model.ContentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []model.ContentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.ContentEvent(nil), p.events...)
}

type recordingRevoker struct {
	ids  []string
	ttls []time.Duration
}

func (r *recordingRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	r.ids = append(r.ids, id)
	r.ttls = append(r.ttls, ttl)
	return nil
}

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	posts    *repository.PostRepository
	comments *repository.CommentRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := dbtest.NewTestDB(t)
	return fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
	}
}

// seedUser inserts a user directly, skipping bcrypt.
func (f fixture) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}
