package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-scheduler/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetByNetlink(ctx context.Context, netlink string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 构造用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByNetlink(ctx context.Context, netlink string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "netlink = ?", netlink).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
