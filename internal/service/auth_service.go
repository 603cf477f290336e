package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/model"
	"study-scheduler/internal/repository"
	"study-scheduler/pkg/jwt"
	"study-scheduler/pkg/redis"
)

// 错误定义
var (
	ErrNetlinkExists      = errors.New("该 Netlink ID 已注册")
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// AuthService 认证服务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPair, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	cache  *redis.Client
	logger *zap.Logger
}

// NewAuthService 构造认证服务
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, cache *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, cache: cache, logger: logger}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if _, err := s.repo.User.GetByNetlink(ctx, req.Netlink); err == nil {
		return nil, ErrNetlinkExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Netlink:      req.Netlink,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("用户注册成功", zap.String("netlink", user.Netlink))
	return &dto.UserInfo{
		UserID:  user.UserID.String(),
		Netlink: user.Netlink,
		Name:    user.Name,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := s.repo.User.GetByNetlink(ctx, req.Netlink)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.jwtMgr.GenerateAccessToken(user.UserID.String(), user.Netlink)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID.String(), user.Netlink)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout 将令牌 jti 加入 Redis 黑名单直至自然过期
//
// Redis 不可用时登出降级为客户端丢弃令牌，不报错。
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.cache == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("令牌拉黑失败", zap.Error(err))
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserInfo{
		UserID:  user.UserID.String(),
		Netlink: user.Netlink,
		Name:    user.Name,
	}, nil
}
