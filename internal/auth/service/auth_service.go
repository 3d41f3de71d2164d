package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/knitware/stitch-erp/internal/auth/entity"
	"github.com/knitware/stitch-erp/internal/auth/repository"
	"github.com/knitware/stitch-erp/internal/config"
)

// refresh token 在 Redis 中的键前缀
const refreshKeyPrefix = "auth:refresh:"

// RegisterAdminRequest 初始化管理员请求
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPair 令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResult 登录结果
type LoginResult struct {
	TokenPair
	User *entity.User `json:"user"`
}

// AuthService 认证服务。rdb 可为 nil（本地开发无 Redis），
// 此时刷新令牌只校验签名和类型，不做服务端吊销。
type AuthService struct {
	users  *repository.UserRepository
	rdb    *redis.Client
	jwtCfg config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, rdb *redis.Client, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, rdb: rdb, jwtCfg: jwtCfg}
}

// RegisterAdmin 初始化系统管理员，仅在没有任何用户时允许
func (s *AuthService) RegisterAdmin(ctx context.Context, req *RegisterAdminRequest) (*entity.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("系统已有用户，不能重复初始化管理员")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String()[:32],
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Email:        req.Email,
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login 用户名密码登录，返回令牌对和用户信息
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("用户名或密码错误")
		}
		return nil, err
	}

	if user.Status != entity.UserStatusActive {
		return nil, fmt.Errorf("账号已禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("用户名或密码错误")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Refresh 校验刷新令牌并轮换，旧JTI作废
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	jti, _ := claims["jti"].(string)
	userID, _ := claims["sub"].(string)
	if jti == "" || userID == "" {
		return nil, fmt.Errorf("无效的刷新令牌")
	}

	if s.rdb != nil {
		if _, err := s.rdb.Get(ctx, refreshKeyPrefix+jti).Result(); err != nil {
			return nil, fmt.Errorf("刷新令牌已失效")
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("用户不存在")
	}
	if user.Status != entity.UserStatusActive {
		return nil, fmt.Errorf("账号已禁用")
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, refreshKeyPrefix+jti)
	}

	return s.generateTokenPair(ctx, user)
}

// Logout 登出，作废刷新令牌。令牌无法解析时直接返回成功（幂等）
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	if jti, _ := claims["jti"].(string); jti != "" && s.rdb != nil {
		s.rdb.Del(ctx, refreshKeyPrefix+jti)
	}
	return nil
}

// Me 查询当前用户
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) parseRefreshToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("无效的刷新令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("无效的刷新令牌")
	}
	if claims["type"] != "refresh" {
		return nil, fmt.Errorf("无效的刷新令牌")
	}
	return claims, nil
}

// generateTokenPair 生成访问令牌和刷新令牌，刷新令牌JTI写入Redis
func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iss":   s.jwtCfg.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.jwtCfg.AccessTokenExpire).Unix(),
		"jti":   uuid.New().String(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"iss":  s.jwtCfg.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.jwtCfg.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, refreshKeyPrefix+refreshJti, user.ID, s.jwtCfg.RefreshTokenExpire)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtCfg.AccessTokenExpire.Seconds()),
	}, nil
}
