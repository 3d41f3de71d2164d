package handler

import (
	"net/http"
	"testing"

	"github.com/knitware/stitch-erp/internal/catalog/repository"
	"github.com/knitware/stitch-erp/internal/catalog/service"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func setupCatalogTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos)
	h := NewHandlers(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/catalog/items", h.CatalogItem.List)
	api.GET("/catalog/items/:id", h.CatalogItem.Get)
	api.POST("/catalog/items", h.CatalogItem.Create)
	api.POST("/catalog/items/preview-id", h.CatalogItem.PreviewID)
	api.PUT("/catalog/items/:id", h.CatalogItem.Update)
	api.DELETE("/catalog/items/:id", h.CatalogItem.Delete)
	api.GET("/catalog/yarns", h.Yarn.List)
	api.POST("/catalog/yarns", h.Yarn.Create)
	api.PUT("/catalog/yarns/:id", h.Yarn.Update)
	api.GET("/catalog/fabrics", h.Fabric.List)
	api.POST("/catalog/fabrics", h.Fabric.Create)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func createItem(t *testing.T, env *testutil.TestEnv, token, name, category string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/catalog/items", map[string]interface{}{
		"name":     name,
		"category": category,
		"unit":     "pcs",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create item %s failed: %d %s", name, w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestCatalogItemIDAllocation(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	// 流水号全局递增，与名称、类目无关
	first := createItem(t, env, token, "Button", "trims")
	if first["product_id"] != "BUTTON_TRI_0001" {
		t.Errorf("Expected BUTTON_TRI_0001, got %v", first["product_id"])
	}

	second := createItem(t, env, token, "Zipper", "accessories")
	if second["product_id"] != "ZIPPER_ACC_0002" {
		t.Errorf("Expected ZIPPER_ACC_0002, got %v", second["product_id"])
	}

	third := createItem(t, env, token, "Button", "trims")
	if third["product_id"] != "BUTTON_TRI_0003" {
		t.Errorf("Expected BUTTON_TRI_0003, got %v", third["product_id"])
	}
}

func TestCatalogItemNameNormalization(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	item := createItem(t, env, token, "T-Shirt #1!", "finished_goods")
	if item["product_id"] != "T_SHIRT_1_FIN_0001" {
		t.Errorf("Expected T_SHIRT_1_FIN_0001, got %v", item["product_id"])
	}
}

func TestCatalogItemPreviewIDDoesNotConsume(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	createItem(t, env, token, "Button", "trims")

	// 预览不占号
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/catalog/items/preview-id", map[string]interface{}{
		"name":     "Label",
		"category": "trims",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	preview := testutil.ParseResponse(w)["data"].(map[string]interface{})["product_id"]
	if preview != "LABEL_TRI_0002" {
		t.Errorf("Expected preview LABEL_TRI_0002, got %v", preview)
	}

	created := createItem(t, env, token, "Label", "trims")
	if created["product_id"] != "LABEL_TRI_0002" {
		t.Errorf("Expected created LABEL_TRI_0002, got %v", created["product_id"])
	}
}

func TestCatalogItemIDSurvivesRename(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	item := createItem(t, env, token, "Button", "trims")
	id := item["id"].(string)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/catalog/items/"+id, map[string]interface{}{
		"name": "Horn Button",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["name"] != "Horn Button" {
		t.Errorf("Expected renamed item, got %v", data["name"])
	}
	if data["product_id"] != "BUTTON_TRI_0001" {
		t.Errorf("Expected product_id unchanged after rename, got %v", data["product_id"])
	}
}

func TestCatalogItemInvalidCategory(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/catalog/items", map[string]interface{}{
		"name":     "Mystery",
		"category": "unknown",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid category, got %d: %s", w.Code, w.Body.String())
	}
}

func TestYarnCRUD(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/catalog/yarns", map[string]interface{}{
		"code":         "YRN-001",
		"name":         "美丽诺羊毛",
		"count":        "2/28NM",
		"composition":  "100% Merino Wool",
		"price_per_kg": 118.5,
		"currency":     "CNY",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/catalog/yarns/"+id, map[string]interface{}{
		"price_per_kg": 120.0,
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["price_per_kg"].(float64) != 120.0 {
		t.Errorf("Expected updated price 120, got %v", data["price_per_kg"])
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/catalog/yarns?search=美丽诺", nil, token)
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 yarn by search, got %d", len(items))
	}
}
