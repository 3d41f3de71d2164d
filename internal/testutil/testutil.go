package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	authentity "github.com/knitware/stitch-erp/internal/auth/entity"
	catentity "github.com/knitware/stitch-erp/internal/catalog/entity"
	mdmentity "github.com/knitware/stitch-erp/internal/mdm/entity"
	"github.com/knitware/stitch-erp/internal/middleware"
	omsentity "github.com/knitware/stitch-erp/internal/oms/entity"
	smpentity "github.com/knitware/stitch-erp/internal/sample/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "stitch-erp-jwt-secret-key-2025"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory SQLite database and migrates all
// domain tables. Each test gets its own named database so parallel tests do
// not share state; the single-connection pool keeps every session on the
// same in-memory instance.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, migrate := range []func(*gorm.DB) error{
		mdmentity.AutoMigrate,
		catentity.AutoMigrate,
		omsentity.AutoMigrate,
		smpentity.AutoMigrate,
		authentity.AutoMigrate,
	} {
		if err := migrate(db); err != nil {
			t.Fatalf("Failed to migrate test tables: %v", err)
		}
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, email, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"role":  role,
		"iss":   "stitch-erp",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default admin test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Admin", "admin@test.com", "admin")
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a handler.Response-like map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedTestUser creates a test user with a bcrypt password hash
func SeedTestUser(t *testing.T, db *gorm.DB, username, password, role string) *authentity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user := &authentity.User{
		ID:           fmt.Sprintf("user-%d", time.Now().UnixNano()%1000000),
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Email:        username + "@test.com",
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedTestColor creates a color row for tests that need master data
func SeedTestColor(t *testing.T, db *gorm.DB, id, code, name string) *mdmentity.Color {
	t.Helper()
	color := &mdmentity.Color{
		ID:        id,
		Code:      code,
		Name:      name,
		Status:    mdmentity.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("Failed to seed test color: %v", err)
	}
	return color
}

// SeedTestSize creates a size row for tests that need master data
func SeedTestSize(t *testing.T, db *gorm.DB, id, code, name string, sortOrder int) *mdmentity.Size {
	t.Helper()
	size := &mdmentity.Size{
		ID:        id,
		Code:      code,
		Name:      name,
		SortOrder: sortOrder,
		Status:    mdmentity.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("Failed to seed test size: %v", err)
	}
	return size
}
