package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/knitware/stitch-erp/internal/auth/entity"
	"github.com/knitware/stitch-erp/internal/auth/repository"
	"github.com/knitware/stitch-erp/internal/auth/service"
	"github.com/knitware/stitch-erp/internal/config"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	jwtCfg := config.JWTConfig{
		Secret:             testutil.JWTSecret,
		AccessTokenExpire:  2 * time.Hour,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "stitch-erp",
	}
	svc := service.NewServices(repos, nil, jwtCfg)
	h := NewHandlers(svc)

	router.POST("/api/v1/auth/register-admin", h.Auth.RegisterAdmin)
	router.POST("/api/v1/auth/login", h.Auth.Login)
	router.POST("/api/v1/auth/refresh", h.Auth.Refresh)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Auth.Me)
	api.POST("/auth/logout", h.Auth.Logout)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func loginAs(t *testing.T, env *testutil.TestEnv, username, password string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Login as %s failed: status %d body %s", username, w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestAuthRegisterAdminBootstrap(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register-admin", map[string]string{
		"username": "admin",
		"password": "super-secret-1",
		"name":     "系统管理员",
		"email":    "admin@knitware.io",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["username"] != "admin" || data["role"] != entity.RoleAdmin {
		t.Errorf("Unexpected admin payload: %v", data)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Password material must not appear in the response body")
	}

	// 已有用户后再次初始化被拒绝
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register-admin", map[string]string{
		"username": "admin2",
		"password": "super-secret-2",
		"name":     "second",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 on second bootstrap, got %d", w.Code)
	}
	if msg := testutil.ParseResponse(w)["message"].(string); !strings.Contains(msg, "不能重复") {
		t.Errorf("Unexpected message: %s", msg)
	}
}

func TestAuthLoginFlow(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "merch01", "knit-pass-123", entity.RoleMerchandiser)

	// 密码错误
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "merch01",
		"password": "wrong",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 on wrong password, got %d", w.Code)
	}

	// 用户不存在时返回同样的提示
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "ghost",
		"password": "whatever",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 on unknown user, got %d", w.Code)
	}
	if msg := testutil.ParseResponse(w)["message"].(string); !strings.Contains(msg, "用户名或密码错误") {
		t.Errorf("Unknown user should not be distinguishable: %s", msg)
	}

	data := loginAs(t, env, "merch01", "knit-pass-123")
	accessToken, _ := data["access_token"].(string)
	refreshToken, _ := data["refresh_token"].(string)
	if accessToken == "" || refreshToken == "" {
		t.Fatal("Expected both tokens in login result")
	}
	if data["expires_in"].(float64) != 7200 {
		t.Errorf("Expected expires_in 7200, got %v", data["expires_in"])
	}
	user := data["user"].(map[string]interface{})
	if user["username"] != "merch01" || user["role"] != entity.RoleMerchandiser {
		t.Errorf("Unexpected user payload: %v", user)
	}

	// 签发的access token能通过认证中间件
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, accessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /auth/me, got %d: %s", w.Code, w.Body.String())
	}
	me := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if me["username"] != "merch01" {
		t.Errorf("Expected merch01 from /auth/me, got %v", me["username"])
	}
}

func TestAuthRefreshRotation(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "merch02", "knit-pass-456", entity.RoleMerchandiser)
	data := loginAs(t, env, "merch02", "knit-pass-456")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": data["refresh_token"].(string),
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on refresh, got %d: %s", w.Code, w.Body.String())
	}
	pair := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pair["refresh_token"] == data["refresh_token"] {
		t.Error("Refresh must rotate the refresh token")
	}
	if tok, _ := pair["access_token"].(string); tok == "" {
		t.Error("Expected a new access token")
	}

	// access token不能当刷新令牌用
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": data["access_token"].(string),
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 when refreshing with an access token, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "not-a-jwt",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 on malformed refresh token, got %d", w.Code)
	}
}

func TestAuthDisabledUser(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "frozen", "knit-pass-789", entity.RoleViewer)
	data := loginAs(t, env, "frozen", "knit-pass-789")

	if err := env.DB.Model(&entity.User{}).Where("username = ?", "frozen").
		Update("status", entity.UserStatusDisabled).Error; err != nil {
		t.Fatalf("Failed to disable user: %v", err)
	}

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "frozen",
		"password": "knit-pass-789",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for disabled user login, got %d", w.Code)
	}
	if msg := testutil.ParseResponse(w)["message"].(string); !strings.Contains(msg, "禁用") {
		t.Errorf("Unexpected message: %s", msg)
	}

	// 禁用后已持有的刷新令牌也失效
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": data["refresh_token"].(string),
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 refreshing a disabled user, got %d", w.Code)
	}
}

func TestAuthLogoutIdempotent(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "merch03", "knit-pass-000", entity.RoleMerchandiser)
	data := loginAs(t, env, "merch03", "knit-pass-000")
	access := data["access_token"].(string)

	for i := 0; i < 2; i++ {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/logout", map[string]string{
			"refresh_token": data["refresh_token"].(string),
		}, access)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 on logout (attempt %d), got %d", i+1, w.Code)
		}
	}

	// 无法解析的令牌同样返回成功
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/logout", map[string]string{
		"refresh_token": "garbage",
	}, access)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on logout with malformed token, got %d", w.Code)
	}
}

func TestAuthMeRequiresToken(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
