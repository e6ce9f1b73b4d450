package service

import (
	"context"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

var (
	ErrFollowSelf = apperr.InvalidInput("cannot follow self")
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, fromUserID, toUserID string) error
	Unfollow(ctx context.Context, fromUserID, toUserID string) error
	IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error)
	// ListFollowing / ListFollowers 不包含自关注边
	ListFollowing(ctx context.Context, userID string) ([]*model.User, error)
	ListFollowers(ctx context.Context, userID string) ([]*model.User, error)
}

type relationshipService struct {
	store *repository.Store
}

func NewRelationshipService(store *repository.Store) RelationshipService {
	return &relationshipService{store: store}
}

func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) error {
	if fromUserID == toUserID {
		return ErrFollowSelf
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, fromUserID, toUserID); err != nil {
			return err
		}
		_, err := tx.Follows.Create(ctx, fromUserID, toUserID)
		return err
	})
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) error {
	if fromUserID == toUserID {
		return ErrFollowSelf
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, fromUserID, toUserID); err != nil {
			return err
		}
		_, err := tx.Follows.Delete(ctx, fromUserID, toUserID)
		return err
	})
}

func (s *relationshipService) IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	return s.store.Follows.Exists(ctx, fromUserID, toUserID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string) ([]*model.User, error) {
	if err := requireUsers(ctx, s.store, userID); err != nil {
		return nil, err
	}
	items, err := s.store.Follows.ListFollowings(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.FolloweeID != userID {
			ids = append(ids, it.FolloweeID)
		}
	}
	return usersInOrder(ctx, s.store, ids)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string) ([]*model.User, error) {
	if err := requireUsers(ctx, s.store, userID); err != nil {
		return nil, err
	}
	items, err := s.store.Follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.FollowerID != userID {
			ids = append(ids, it.FollowerID)
		}
	}
	return usersInOrder(ctx, s.store, ids)
}

// requireUsers returns NotFound unless every id names an existing user.
func requireUsers(ctx context.Context, st *repository.Store, ids ...string) error {
	for _, id := range ids {
		ok, err := st.Users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("user " + id + " not found")
		}
	}
	return nil
}

func usersInOrder(ctx context.Context, st *repository.Store, ids []string) ([]*model.User, error) {
	users, err := st.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	res := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}
