package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/knitware/stitch-erp/internal/middleware"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func probeRouter() *gin.Engine {
	r := testutil.SetupRouter()
	r.GET("/probe", middleware.JWTAuth(testutil.JWTSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"name":    c.GetString("user_name"),
			"email":   c.GetString("user_email"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func TestJWTAuthTokenSources(t *testing.T) {
	r := probeRouter()
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "GET", "/probe", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Bearer header auth failed: %d %s", w.Code, w.Body.String())
	}

	// 导出下载场景走query param
	w = testutil.DoRequest(r, "GET", "/probe?token="+token, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Query param auth failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/probe", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
	if testutil.ParseResponse(w)["code"].(float64) != 40100 {
		t.Errorf("Expected code 40100, got %v", testutil.ParseResponse(w)["code"])
	}
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	r := probeRouter()

	// 错误密钥签名
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "u1", "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedStr, _ := forged.SignedString([]byte("wrong-secret"))
	w := testutil.DoRequest(r, "GET", "/probe", nil, forgedStr)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for forged token, got %d", w.Code)
	}

	// 已过期
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "u1", "role": "admin",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredStr, _ := expired.SignedString([]byte(testutil.JWTSecret))
	w = testutil.DoRequest(r, "GET", "/probe", nil, expiredStr)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for expired token, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/probe", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for garbage token, got %d", w.Code)
	}
}

func TestJWTAuthClaimsInContext(t *testing.T) {
	r := probeRouter()
	token := testutil.GenerateTestToken("u-42", "王采", "wang@test.com", "merchandiser")

	w := testutil.DoRequest(r, "GET", "/probe", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := testutil.ParseResponse(w)
	if body["user_id"] != "u-42" {
		t.Errorf("Expected user_id u-42, got %v", body["user_id"])
	}
	if body["name"] != "王采" {
		t.Errorf("Expected name 王采, got %v", body["name"])
	}
	if body["role"] != "merchandiser" {
		t.Errorf("Expected role merchandiser, got %v", body["role"])
	}
}

func TestRequireRoleGates(t *testing.T) {
	r := testutil.SetupRouter()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.DELETE("/admin-only", middleware.JWTAuth(testutil.JWTSecret), middleware.RequireRole("admin"), ok)
	r.GET("/merch-area", middleware.JWTAuth(testutil.JWTSecret), middleware.RequireRole("merchandiser"), ok)

	admin := testutil.GenerateTestToken("u-a", "管理员", "a@test.com", "admin")
	merch := testutil.GenerateTestToken("u-m", "跟单员", "m@test.com", "merchandiser")
	viewer := testutil.GenerateTestToken("u-v", "访客", "v@test.com", "viewer")

	w := testutil.DoRequest(r, "DELETE", "/admin-only", nil, viewer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for viewer on admin route, got %d", w.Code)
	}
	if testutil.ParseResponse(w)["code"].(float64) != 40312 {
		t.Errorf("Expected code 40312, got %v", testutil.ParseResponse(w)["code"])
	}

	w = testutil.DoRequest(r, "DELETE", "/admin-only", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/merch-area", nil, merch)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for matching role, got %d", w.Code)
	}

	// admin放行所有角色门槛
	w = testutil.DoRequest(r, "GET", "/merch-area", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin on merch route, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/merch-area", nil, viewer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for viewer on merch route, got %d", w.Code)
	}
}
