package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/warbler/internal/database"
	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/repository"
)

type testEnv struct {
	db        *gorm.DB
	users     UserService
	relations RelationshipService
	messages  MessageService
}

func newTestEnv(t *testing.T, cache *FollowingCache) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	relations := NewRelationshipService(followRepo, userRepo, cache)
	return &testEnv{
		db:        db,
		users:     NewUserService(userRepo, msgRepo, followRepo, cache),
		relations: relations,
		messages:  NewMessageService(msgRepo, likeRepo, relations),
	}
}

func (e *testEnv) signup(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := e.users.Signup(context.Background(), username, username+"@example.com", "hunter22", "")
	require.NoError(t, err)
	return u
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func newTestCache(t *testing.T) (*FollowingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFollowingCache(client, time.Minute), mr
}
