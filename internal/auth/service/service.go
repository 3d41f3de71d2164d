package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/knitware/stitch-erp/internal/auth/repository"
	"github.com/knitware/stitch-erp/internal/config"
)

// Services 认证服务集合。rdb可为nil（本地开发无Redis）
type Services struct {
	Auth *AuthService
}

// NewServices 创建认证服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, jwtCfg config.JWTConfig) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, rdb, jwtCfg),
	}
}
