package social_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cafehopper/models"
	"cafehopper/social"
)

func at(cafeID string) *string {
	return &cafeID
}

func TestPartitionSplitsOnLocation(t *testing.T) {
	friends := []models.User{
		{ID: "u1", Name: "Alice", Location: at("1")},
		{ID: "u2", Name: "Bob", Location: at("2")},
		{ID: "u3", Name: "Charlie", Location: nil},
		{ID: "u4", Name: "Dana", Location: at("")},
	}

	studying, notStudying := social.Partition(friends)

	assert.Len(t, studying, 2)
	assert.Len(t, notStudying, 2)

	// Exhaustive and disjoint: every friend lands in exactly one bucket.
	assert.Equal(t, len(friends), len(studying)+len(notStudying))
	seen := make(map[string]int)
	for _, u := range studying {
		seen[u.ID]++
	}
	for _, u := range notStudying {
		seen[u.ID]++
	}
	for _, f := range friends {
		assert.Equal(t, 1, seen[f.ID], "friend %s must appear exactly once", f.ID)
	}
}

func TestPartitionEmpty(t *testing.T) {
	studying, notStudying := social.Partition(nil)
	assert.Empty(t, studying)
	assert.Empty(t, notStudying)
}

func TestFriendsAt(t *testing.T) {
	friends := []models.User{
		{ID: "u1", Location: at("1")},
		{ID: "u2", Location: at("2")},
		{ID: "u3", Location: nil},
		{ID: "u5", Location: at("1")},
	}

	here := social.FriendsAt(friends, "1")
	assert.Len(t, here, 2)
	assert.Equal(t, "u1", here[0].ID)
	assert.Equal(t, "u5", here[1].ID)

	assert.Empty(t, social.FriendsAt(friends, "99"))
}

func TestStudying(t *testing.T) {
	assert.True(t, (&models.User{Location: at("7")}).Studying())
	assert.False(t, (&models.User{Location: nil}).Studying())
	assert.False(t, (&models.User{Location: at("")}).Studying())
}
