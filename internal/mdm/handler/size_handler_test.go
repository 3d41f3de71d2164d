package handler

import (
	"net/http"
	"testing"

	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func setupSizeTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, nil)
	h := NewHandlers(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/mdm/sizes", h.Size.List)
	api.GET("/mdm/sizes/all", h.Size.ListAll)
	api.POST("/mdm/sizes", h.Size.Create)
	api.PUT("/mdm/sizes/:id", h.Size.Update)
	api.DELETE("/mdm/sizes/:id", h.Size.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestSizeListSortOrder(t *testing.T) {
	env := setupSizeTest(t)
	token := testutil.DefaultTestToken()

	seeds := []map[string]interface{}{
		{"code": "L", "name": "大码", "sort_order": 3},
		{"code": "S", "name": "小码", "sort_order": 1},
		{"code": "M", "name": "中码", "sort_order": 2},
	}
	for _, seed := range seeds {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/sizes", seed, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed size %v failed: %d %s", seed["code"], w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/sizes", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("Expected 3 sizes, got %d", len(items))
	}
	want := []string{"S", "M", "L"}
	for i, code := range want {
		got := items[i].(map[string]interface{})["code"]
		if got != code {
			t.Errorf("Position %d: expected %s, got %v", i, code, got)
		}
	}
}

func TestSizeListAllExcludesDisabled(t *testing.T) {
	env := setupSizeTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTestSize(t, env.DB, "sz-s", "S", "小码", 1)
	stale := testutil.SeedTestSize(t, env.DB, "sz-m", "M", "中码", 2)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/mdm/sizes/"+stale.ID, map[string]interface{}{
		"status": "inactive",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Disable size failed: %d %s", w.Code, w.Body.String())
	}

	// 下拉引用接口只返回启用项
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/sizes/all", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 active size, got %d", len(items))
	}
	if items[0].(map[string]interface{})["code"] != "S" {
		t.Errorf("Expected S, got %v", items[0].(map[string]interface{})["code"])
	}
}

func TestSizeUpdateSortOrderZero(t *testing.T) {
	env := setupSizeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/sizes", map[string]interface{}{
		"code": "XS", "name": "加小码", "sort_order": 5,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// 指针字段允许把排序改回0
	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/mdm/sizes/"+id, map[string]interface{}{
		"sort_order": 0,
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["sort_order"].(float64) != 0 {
		t.Errorf("Expected sort_order 0, got %v", data["sort_order"])
	}
}
