// Package socialtest provides an in-memory document store implementing the
// social workflow interfaces for tests.
package socialtest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"cafehopper/models"
	"cafehopper/social"
)

// Store implements social.UserDirectory, social.RequestStore and
// social.FriendGraph against in-memory maps.
type Store struct {
	mu       sync.Mutex
	users    map[string]*models.User
	requests map[string]*models.FriendRequest

	// FailUpdates makes all mutating user operations fail, for exercising
	// store-failure paths.
	FailUpdates bool
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		requests: make(map[string]*models.FriendRequest),
	}
}

// Seed inserts a user record directly, bypassing validation.
func (s *Store) Seed(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(&user)
}

// Drop removes a user record, simulating a dangling friend or request id.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Store) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok || user.Name == "" {
		return nil, social.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, social.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return social.ErrDuplicate
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, id, name, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdates {
		return fmt.Errorf("user: store unavailable")
	}
	user, ok := s.users[id]
	if !ok {
		return social.ErrNotFound
	}
	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	return nil
}

func (s *Store) UpdateLocation(_ context.Context, id string, cafeID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdates {
		return fmt.Errorf("user: store unavailable")
	}
	user, ok := s.users[id]
	if !ok {
		return social.ErrNotFound
	}
	if cafeID == nil {
		user.Location = nil
	} else {
		v := *cafeID
		user.Location = &v
	}
	return nil
}

func (s *Store) UpdateFriends(_ context.Context, id string, friends []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdates {
		return fmt.Errorf("user: store unavailable")
	}
	user, ok := s.users[id]
	if !ok {
		return social.ErrNotFound
	}
	user.Friends = slices.Clone(friends)
	return nil
}

func (s *Store) Search(_ context.Context, q, excludeID string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	q = strings.ToLower(q)
	for _, user := range s.users {
		if user.ID == excludeID {
			continue
		}
		if strings.HasPrefix(strings.ToLower(user.Name), q) ||
			strings.HasPrefix(strings.ToLower(user.Username), q) {
			out = append(out, *cloneUser(user))
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) UsersAt(_ context.Context, cafeID string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, user := range s.users {
		if user.Location != nil && *user.Location == cafeID {
			out = append(out, *cloneUser(user))
		}
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, req *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.FromUserID == req.FromUserID &&
			existing.ToUserID == req.ToUserID &&
			existing.Status == req.Status {
			return social.ErrDuplicate
		}
	}
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, social.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, id)
	return nil
}

func (s *Store) PendingTo(_ context.Context, userID string) ([]models.FriendRequest, error) {
	return s.findRequests(func(r *models.FriendRequest) bool {
		return r.ToUserID == userID && r.Status == models.RequestStatusPending
	})
}

func (s *Store) PendingFrom(_ context.Context, userID string) ([]models.FriendRequest, error) {
	return s.findRequests(func(r *models.FriendRequest) bool {
		return r.FromUserID == userID && r.Status == models.RequestStatusPending
	})
}

func (s *Store) findRequests(match func(*models.FriendRequest) bool) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.FriendRequest
	for _, req := range s.requests {
		if match(req) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *Store) CommitMutualFriendship(_ context.Context, requestID, userA, userB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdates {
		return fmt.Errorf("user: store unavailable")
	}
	a, okA := s.users[userA]
	b, okB := s.users[userB]
	if !okA || !okB {
		return social.ErrNotFound
	}
	if !slices.Contains(a.Friends, userB) {
		a.Friends = append(a.Friends, userB)
	}
	if !slices.Contains(b.Friends, userA) {
		b.Friends = append(b.Friends, userA)
	}
	delete(s.requests, requestID)
	return nil
}

func (s *Store) RemoveFriendship(_ context.Context, userA, userB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdates {
		return fmt.Errorf("user: store unavailable")
	}
	if a, ok := s.users[userA]; ok {
		a.Friends = slices.DeleteFunc(slices.Clone(a.Friends), func(id string) bool { return id == userB })
	}
	if b, ok := s.users[userB]; ok {
		b.Friends = slices.DeleteFunc(slices.Clone(b.Friends), func(id string) bool { return id == userA })
	}
	return nil
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Friends = slices.Clone(u.Friends)
	if u.Location != nil {
		v := *u.Location
		clone.Location = &v
	}
	return &clone
}
