package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafehopper/models"
	"cafehopper/social"
	"cafehopper/social/socialtest"
)

func newService(t *testing.T, users ...models.User) (*social.Service, *socialtest.Store) {
	t.Helper()
	store := socialtest.NewStore()
	for _, u := range users {
		store.Seed(u)
	}
	return social.NewService(store, store, store), store
}

func user(id, name string) models.User {
	return models.User{ID: id, Username: name, Name: name, Friends: []string{}}
}

func TestSendRequestCreatesPending(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u7", "bob"))
	ctx := context.Background()

	req, accepted, err := svc.SendRequest(ctx, "u1", "u7")
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, "u1", req.FromUserID)
	assert.Equal(t, "u7", req.ToUserID)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.Equal(t, 1, store.RequestCount())

	sent, err := svc.SentFriendRequests(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "u7", sent[0].User.ID)

	incoming, err := svc.FriendRequests(ctx, "u7")
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "u1", incoming[0].User.ID)
}

func TestSendRequestDuplicateRejected(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"))
	ctx := context.Background()

	_, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	_, _, err = svc.SendRequest(ctx, "u1", "u2")
	assert.ErrorIs(t, err, social.ErrDuplicate)
	assert.Equal(t, 1, store.RequestCount())
}

func TestSendRequestToSelf(t *testing.T) {
	svc, _ := newService(t, user("u1", "alice"))

	_, _, err := svc.SendRequest(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, social.ErrSelfRequest)
}

func TestSendRequestUnknownRecipient(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"))

	_, _, err := svc.SendRequest(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, social.ErrNotFound)
	assert.Equal(t, 0, store.RequestCount())
}

func TestSendRequestAlreadyFriends(t *testing.T) {
	a := user("u1", "alice")
	a.Friends = []string{"u2"}
	b := user("u2", "bob")
	b.Friends = []string{"u1"}
	svc, _ := newService(t, a, b)

	_, _, err := svc.SendRequest(context.Background(), "u1", "u2")
	assert.ErrorIs(t, err, social.ErrAlreadyFriends)
}

func TestSendRequestReversePendingAccepts(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"))
	ctx := context.Background()

	_, _, err := svc.SendRequest(ctx, "u2", "u1")
	require.NoError(t, err)

	// u1 sending to u2 while u2 -> u1 is pending resolves the friendship
	// instead of creating a mirror request.
	_, accepted, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, 0, store.RequestCount())

	assertFriends(t, svc, "u1", "u2")
}

func TestAcceptRequestMakesFriendshipSymmetric(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u7", "bob"))
	ctx := context.Background()

	sent, err := svc.SentFriendRequests(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, sent)

	_, _, err = svc.SendRequest(ctx, "u1", "u7")
	require.NoError(t, err)

	sent, err = svc.SentFriendRequests(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.Equal(t, "u7", sent[0].User.ID)

	require.NoError(t, svc.AcceptRequest(ctx, "u7", sent[0].ID))

	assertFriends(t, svc, "u1", "u7")
	assert.Equal(t, 0, store.RequestCount())

	incoming, err := svc.FriendRequests(ctx, "u7")
	require.NoError(t, err)
	assert.Empty(t, incoming)

	sent, err = svc.SentFriendRequests(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, sent)
}

func TestAcceptRequestMissingRequest(t *testing.T) {
	svc, _ := newService(t, user("u1", "alice"))

	err := svc.AcceptRequest(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, social.ErrNotFound)
}

func TestAcceptRequestMissingUserKeepsRequest(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"))
	ctx := context.Background()

	req, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	store.Drop("u1")

	err = svc.AcceptRequest(ctx, "u2", req.ID)
	assert.ErrorIs(t, err, social.ErrNotFound)
	// The request record deliberately stays in place.
	assert.Equal(t, 1, store.RequestCount())
}

func TestAcceptRequestOnlyRecipient(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"), user("u3", "mallory"))
	ctx := context.Background()

	req, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	// Neither a third party nor the sender can accept on the recipient's
	// behalf; to them the request does not exist.
	for _, caller := range []string{"u3", "u1"} {
		err = svc.AcceptRequest(ctx, caller, req.ID)
		assert.ErrorIs(t, err, social.ErrNotFound, "caller %s", caller)
	}
	assert.Equal(t, 1, store.RequestCount())

	for _, id := range []string{"u1", "u2"} {
		friends, err := svc.ListFriends(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, friends)
	}
}

func TestCancelRequestOnlyParticipants(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"), user("u3", "mallory"))
	ctx := context.Background()

	req, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	err = svc.CancelRequest(ctx, "u3", req.ID)
	assert.ErrorIs(t, err, social.ErrNotFound)
	assert.Equal(t, 1, store.RequestCount())

	// The recipient declining is a cancel too.
	require.NoError(t, svc.CancelRequest(ctx, "u2", req.ID))
	assert.Equal(t, 0, store.RequestCount())
}

func TestCancelRequestIdempotent(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"), user("u2", "bob"))
	ctx := context.Background()

	req, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	require.NoError(t, svc.CancelRequest(ctx, "u1", req.ID))
	assert.Equal(t, 0, store.RequestCount())

	// Cancelling an id that is already gone is still a success.
	require.NoError(t, svc.CancelRequest(ctx, "u1", req.ID))

	// Friend lists are untouched by a cancel.
	friends, err := svc.ListFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRemoveFriendSymmetric(t *testing.T) {
	svc, _ := newService(t, user("u1", "alice"), user("u2", "bob"))
	ctx := context.Background()

	req, _, err := svc.SendRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(ctx, "u2", req.ID))
	assertFriends(t, svc, "u1", "u2")

	require.NoError(t, svc.RemoveFriend(ctx, "u1", "u2"))

	for _, id := range []string{"u1", "u2"} {
		friends, err := svc.ListFriends(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, friends)
	}
}

func TestListFriendsSkipsUnresolvable(t *testing.T) {
	a := user("u1", "alice")
	a.Friends = []string{"u2", "ghost", "u3"}
	svc, _ := newService(t, a, user("u2", "bob"), user("u3", "carol"))

	friends, err := svc.ListFriends(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "u2", friends[0].ID)
	assert.Equal(t, "u3", friends[1].ID)
}

func TestUpdateFriendsOverwritesList(t *testing.T) {
	a := user("u1", "alice")
	a.Friends = []string{"u2", "u3"}
	svc, _ := newService(t, a, user("u2", "bob"), user("u3", "carol"))
	ctx := context.Background()

	require.NoError(t, svc.Users().UpdateFriends(ctx, "u1", []string{"u3"}))

	friends, err := svc.ListFriends(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "u3", friends[0].ID)
}

func TestCheckInCheckOut(t *testing.T) {
	svc, store := newService(t, user("u1", "alice"))
	ctx := context.Background()

	require.NoError(t, svc.CheckIn(ctx, "u1", "42"))
	u, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u.Location)
	assert.Equal(t, "42", *u.Location)

	// Last write wins on repeated check-ins.
	require.NoError(t, svc.CheckIn(ctx, "u1", "43"))
	u, err = store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "43", *u.Location)

	require.NoError(t, svc.CheckOut(ctx, "u1"))
	u, err = store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, u.Location)
}

func assertFriends(t *testing.T, svc *social.Service, a, b string) {
	t.Helper()
	ctx := context.Background()

	friendsA, err := svc.ListFriends(ctx, a)
	require.NoError(t, err)
	friendsB, err := svc.ListFriends(ctx, b)
	require.NoError(t, err)

	assert.True(t, containsID(friendsA, b), "%s should list %s as friend", a, b)
	assert.True(t, containsID(friendsB, a), "%s should list %s as friend", b, a)
}

func containsID(users []models.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
