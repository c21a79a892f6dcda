package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/warbler/internal/model"
)

func TestSignupDefaults(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	u, err := env.users.Signup(ctx, "alice", "Alice@Example.COM", "hunter22", "")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, model.DefaultImageURL, u.ImageURL)
	assert.Equal(t, model.DefaultHeaderImageURL, u.HeaderImageURL)
	assert.NotEqual(t, "hunter22", u.Password)
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	_, err := env.users.Signup(ctx, "alice", "second@example.com", "hunter22", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// the failed attempt must not leave a row behind
	var cnt int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	_, err := env.users.Signup(ctx, "alice2", "alice@example.com", "hunter22", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.signup(t, "alice")

	u, err := env.users.Authenticate(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	// wrong password and unknown user look identical to the caller
	_, err = env.users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)
	_, err = env.users.Authenticate(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthenticateIsReadOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.signup(t, "alice")

	_, _ = env.users.Authenticate(ctx, "alice", "wrong")
	_, _ = env.users.Authenticate(ctx, "nobody", "hunter22")

	var cnt int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.signup(t, "alice")

	upd := ProfileUpdate{Bio: "gopher", Location: "berlin"}
	u, err := env.users.UpdateProfile(ctx, alice.ID, upd, "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "gopher", u.Bio)
	assert.Equal(t, "berlin", u.Location)
	// blank fields keep the current values
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestUpdateProfileWrongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.signup(t, "alice")

	_, err := env.users.UpdateProfile(ctx, alice.ID, ProfileUpdate{Bio: "nope"}, "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	u, err := env.users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, u.Bio)
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	_, err := env.messages.Post(ctx, alice.ID, "soon gone")
	require.NoError(t, err)
	require.NoError(t, env.relations.Follow(ctx, alice.ID, bob.ID))

	require.NoError(t, env.users.Delete(ctx, alice.ID))

	_, err = env.users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var cnt int64
	require.NoError(t, env.db.Model(&model.Message{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
	require.NoError(t, env.db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestDeleteInvalidatesFollowerCaches(t *testing.T) {
	cache, mr := newTestCache(t)
	env := newTestEnv(t, cache)
	ctx := context.Background()
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	require.NoError(t, env.relations.Follow(ctx, bob.ID, alice.ID))

	// prime bob's following index
	ids, err := env.relations.FollowingIDs(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{alice.ID}, ids)
	require.True(t, mr.Exists("following:index:"+itoa(bob.ID)))

	require.NoError(t, env.users.Delete(ctx, alice.ID))

	// bob's cached index must not keep naming the deleted user
	assert.False(t, mr.Exists("following:index:"+itoa(bob.ID)))
	ids, err = env.relations.FollowingIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLikedMessages(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	m, err := env.messages.Post(ctx, bob.ID, "like me")
	require.NoError(t, err)
	require.NoError(t, env.messages.Like(ctx, alice.ID, m.ID))

	liked, err := env.users.LikedMessages(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, m.ID, liked[0].ID)
}
