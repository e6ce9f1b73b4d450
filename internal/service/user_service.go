package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/drinklog/internal/credential"
	"github.com/d60-Lab/drinklog/internal/idgen"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Weight   int
	Gender   string
	Bio      *string
}

// UserService 用户注册、资料与注销
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, query string) ([]*model.User, error)
	SetBio(ctx context.Context, id string, bio *string) (*model.User, error)
	SetWeight(ctx context.Context, id string, weight int) (*model.User, error)
	// Delete 级联删除用户的帖子、评论、关注边与点赞
	Delete(ctx context.Context, id string) error
}

type userService struct {
	store  *repository.Store
	hasher *credential.Hasher
	emails policy.EmailPolicy
}

func NewUserService(store *repository.Store, hasher *credential.Hasher, emails policy.EmailPolicy) UserService {
	return &userService{store: store, hasher: hasher, emails: emails}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		taken, err := tx.Users.UsernameTaken(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("username already taken")
		}
		taken, err = tx.Users.EmailTaken(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("email already registered")
		}

		id, err := idgen.Generate(ctx, tx.Users.Exists)
		if err != nil {
			return err
		}
		u := &model.User{
			ID:           id,
			Username:     in.Username,
			PasswordHash: hash,
			Weight:       in.Weight,
			Gender:       in.Gender,
			Email:        in.Email,
			Bio:          in.Bio,
			CreatedAt:    now(),
		}
		if err := tx.Users.Create(ctx, u); err != nil {
			return err
		}
		// 自关注边：feed 查询统一走 follows 表
		if _, err := tx.Follows.Create(ctx, id, id); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) validateRegistration(in RegisterInput) error {
	switch {
	case in.Username == "" || !policy.WithinLimit(in.Username, policy.MaxUsername):
		return apperr.InvalidInput("username must be 1-80 characters")
	case !policy.IsSecurePassword(in.Password):
		return apperr.InvalidInput("password needs upper and lower case letters, a digit and at least 7 characters")
	case !policy.WithinLimit(in.Email, policy.MaxEmail) || !s.emails.Allowed(in.Email):
		return apperr.InvalidInput("email address is not allowed")
	case in.Weight <= 0:
		return apperr.InvalidInput("weight must be positive")
	case in.Gender == "" || !policy.WithinLimit(in.Gender, policy.MaxGender):
		return apperr.InvalidInput("gender must be 1-16 characters")
	case in.Bio != nil && !policy.WithinLimit(*in.Bio, policy.MaxBioLength):
		return apperr.InvalidInput("bio is limited to 280 characters")
	}
	return nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.store.Users.Get(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.store.Users.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *userService) Search(ctx context.Context, query string) ([]*model.User, error) {
	if query == "" {
		return nil, apperr.InvalidInput("search query must not be empty")
	}
	return s.store.Users.Search(ctx, query)
}

func (s *userService) SetBio(ctx context.Context, id string, bio *string) (*model.User, error) {
	if bio != nil && !policy.WithinLimit(*bio, policy.MaxBioLength) {
		return nil, apperr.InvalidInput("bio is limited to 280 characters")
	}
	if err := s.store.Users.UpdateBio(ctx, id, bio); err != nil {
		return nil, err
	}
	return s.store.Users.Get(ctx, id)
}

func (s *userService) SetWeight(ctx context.Context, id string, weight int) (*model.User, error) {
	if weight <= 0 {
		return nil, apperr.InvalidInput("weight must be positive")
	}
	if err := s.store.Users.UpdateWeight(ctx, id, weight); err != nil {
		return nil, err
	}
	return s.store.Users.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUsers(ctx, tx, id); err != nil {
			return err
		}
		postIDs, err := tx.Posts.ListIDsByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Comments.DeleteByAuthorOrPosts(ctx, id, postIDs); err != nil {
			return err
		}
		if err := tx.Likes.DeleteByUserOrPosts(ctx, id, postIDs); err != nil {
			return err
		}
		if err := tx.Follows.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.Posts.DeleteByAuthor(ctx, id); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
}
