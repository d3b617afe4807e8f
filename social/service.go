package social

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"cafehopper/models"
	"cafehopper/utils"
)

// friendFetchLimit caps how many friend records are resolved concurrently
// when expanding a friend id list.
const friendFetchLimit = 8

type Service struct {
	users    UserDirectory
	requests RequestStore
	graph    FriendGraph
}

func NewService(users UserDirectory, requests RequestStore, graph FriendGraph) *Service {
	return &Service{users: users, requests: requests, graph: graph}
}

func (s *Service) Users() UserDirectory {
	return s.users
}

// SendRequest creates a pending request from one user to another. If the
// recipient already has a pending request going the other way, that request
// is accepted instead and accepted is true. A pending request for the same
// ordered pair yields ErrDuplicate, an existing friendship ErrAlreadyFriends.
func (s *Service) SendRequest(ctx context.Context, fromID, toID string) (req *models.FriendRequest, accepted bool, err error) {
	if fromID == toID {
		return nil, false, ErrSelfRequest
	}

	from, err := s.users.GetUser(ctx, fromID)
	if err != nil {
		return nil, false, fmt.Errorf("sender: %w", err)
	}
	if _, err = s.users.GetUser(ctx, toID); err != nil {
		return nil, false, fmt.Errorf("recipient: %w", err)
	}

	if slices.Contains(from.Friends, toID) {
		return nil, false, ErrAlreadyFriends
	}

	// A pending request in the opposite direction means both sides want the
	// friendship; accept it instead of creating a mirror request.
	incoming, err := s.requests.PendingTo(ctx, fromID)
	if err != nil {
		return nil, false, err
	}
	for i := range incoming {
		if incoming[i].FromUserID == toID {
			if err = s.AcceptRequest(ctx, fromID, incoming[i].ID); err != nil {
				return nil, false, err
			}
			return &incoming[i], true, nil
		}
	}

	req = &models.FriendRequest{
		ID:         utils.GenerateUUID(),
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.RequestStatusPending,
		CreatedAt:  time.Now(),
	}
	if err = s.requests.Create(ctx, req); err != nil {
		return nil, false, err
	}
	return req, false, nil
}

// CancelRequest deletes a pending request. Only the sender or the recipient
// may cancel; for anyone else the request does not exist. Cancelling an id
// that no longer exists is a success; the request is simply gone.
func (s *Service) CancelRequest(ctx context.Context, callerID, requestID string) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if req.FromUserID != callerID && req.ToUserID != callerID {
		return ErrNotFound
	}
	return s.requests.Delete(ctx, requestID)
}

// AcceptRequest resolves a pending request into a mutual friendship. Only
// the recipient may accept; for anyone else the request does not exist. If
// either user record is missing the request is left in place and an error
// returned.
func (s *Service) AcceptRequest(ctx context.Context, callerID, requestID string) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != callerID {
		return ErrNotFound
	}

	if _, err = s.users.GetUser(ctx, req.FromUserID); err != nil {
		return fmt.Errorf("sender %s: %w", req.FromUserID, err)
	}
	if _, err = s.users.GetUser(ctx, req.ToUserID); err != nil {
		return fmt.Errorf("recipient %s: %w", req.ToUserID, err)
	}

	return s.graph.CommitMutualFriendship(ctx, req.ID, req.FromUserID, req.ToUserID)
}

// RemoveFriend drops the friendship between two users from both sides.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.graph.RemoveFriendship(ctx, userID, friendID)
}

// FriendRequests returns the pending requests addressed to the user, each
// resolved with the sender's record. Requests whose sender cannot be
// resolved are dropped.
func (s *Service) FriendRequests(ctx context.Context, userID string) ([]models.RequestWithUser, error) {
	reqs, err := s.requests.PendingTo(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveRequests(ctx, reqs, func(r *models.FriendRequest) string { return r.FromUserID })
}

// SentFriendRequests returns the pending requests the user initiated, each
// resolved with the recipient's record.
func (s *Service) SentFriendRequests(ctx context.Context, userID string) ([]models.RequestWithUser, error) {
	reqs, err := s.requests.PendingFrom(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveRequests(ctx, reqs, func(r *models.FriendRequest) string { return r.ToUserID })
}

func (s *Service) resolveRequests(ctx context.Context, reqs []models.FriendRequest, counterpart func(*models.FriendRequest) string) ([]models.RequestWithUser, error) {
	out := make([]models.RequestWithUser, 0, len(reqs))
	for i := range reqs {
		user, err := s.users.GetUser(ctx, counterpart(&reqs[i]))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, models.RequestWithUser{FriendRequest: reqs[i], User: *user.ToResponse()})
	}
	return out, nil
}

// ListFriends resolves the user's friend id list to full records. Missing
// records are skipped and the rest keep the stored order; any other store
// error fails the whole call rather than rendering a silently short list.
func (s *Service) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*models.User, len(user.Friends))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(friendFetchLimit)
	for i, friendID := range user.Friends {
		g.Go(func() error {
			friend, err := s.users.GetUser(gctx, friendID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil
				}
				return err
			}
			resolved[i] = friend
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(resolved))
	for _, f := range resolved {
		if f != nil {
			friends = append(friends, *f)
		}
	}
	return friends, nil
}

// CheckIn marks the user as studying at the given cafe. Last write wins;
// there is no guard against concurrent toggles from two devices.
func (s *Service) CheckIn(ctx context.Context, userID, cafeID string) error {
	return s.users.UpdateLocation(ctx, userID, &cafeID)
}

// CheckOut clears the user's location.
func (s *Service) CheckOut(ctx context.Context, userID string) error {
	return s.users.UpdateLocation(ctx, userID, nil)
}
