package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// tickingClock advances by one second on every call so rows get distinct timestamps
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	db      *gorm.DB
	deps    Deps
	events  *recordingPublisher
	posts   *PostService
	likes   *LikeService
	follows *FollowService
	users   *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := repositories.NewStore(db)
	require.NoError(t, store.AutoMigrate(context.Background()))

	clock := &tickingClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rec := &recordingPublisher{}
	deps := Deps{Store: store, Events: rec, Now: clock.Now}

	users := NewUserService(deps)
	users.cost = 4 // bcrypt.MinCost keeps the tests fast

	return &fixture{
		db:      db,
		deps:    deps,
		events:  rec,
		posts:   NewPostService(deps),
		likes:   NewLikeService(deps),
		follows: NewFollowService(deps),
		users:   users,
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), models.CreateLocalUserRequest{
		Username: username,
		Email:    "example@gmail.com",
		Password: "example13046",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), author, content)
	require.NoError(t, err)
	return p
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
