package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/pkg/apperr"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	// Search 用户名包含 substr（区分大小写），按注册顺序返回
	Search(ctx context.Context, substr string) ([]*model.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	UpdateBio(ctx context.Context, id string, bio *string) error
	UpdateWeight(ctx context.Context, id string, weight int) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return duplicate(r.db.WithContext(ctx).Create(user).Error, "username or email already registered")
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.count(ctx, "user_id = ?", id)
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.count(ctx, "username = ?", username)
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.count(ctx, "email = ?", email)
}

func (r *userRepository) count(ctx context.Context, cond string, arg any) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(cond, arg).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) Search(ctx context.Context, substr string) ([]*model.User, error) {
	// LIKE 在 sqlite 中对 ASCII 不区分大小写，这里用 instr/strpos
	cond := "instr(username, ?) > 0"
	if r.db.Dialector.Name() == "postgres" {
		cond = "strpos(username, ?) > 0"
	}
	var res []*model.User
	err := r.db.WithContext(ctx).
		Where(cond, substr).
		Order("created_at ASC, user_id ASC").
		Find(&res).Error
	return res, err
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var res []*model.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&res).Error
	return res, err
}

func (r *userRepository) UpdateBio(ctx context.Context, id string, bio *string) error {
	return r.update(ctx, id, "bio", bio)
}

func (r *userRepository) UpdateWeight(ctx context.Context, id string, weight int) error {
	return r.update(ctx, id, "weight", weight)
}

func (r *userRepository) update(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
