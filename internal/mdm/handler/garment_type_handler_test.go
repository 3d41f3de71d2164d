package handler

import (
	"net/http"
	"testing"

	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func setupGarmentTypeTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, nil)
	h := NewHandlers(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/mdm/garment-types", h.GarmentType.List)
	api.GET("/mdm/garment-types/all", h.GarmentType.ListAll)
	api.GET("/mdm/garment-types/:id", h.GarmentType.Get)
	api.POST("/mdm/garment-types", h.GarmentType.Create)
	api.PUT("/mdm/garment-types/:id", h.GarmentType.Update)
	api.DELETE("/mdm/garment-types/:id", h.GarmentType.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestGarmentTypeGaugeNormalization(t *testing.T) {
	env := setupGarmentTypeTest(t)
	token := testutil.DefaultTestToken()

	// 裸数字输入统一转为存储形态
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/garment-types", map[string]interface{}{
		"code":     "GT-001",
		"name":     "圆领套衫",
		"category": "sweater",
		"gauges":   "12,14",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["gauges"] != "12 GG,14 GG" {
		t.Errorf("Expected stored gauges 12 GG,14 GG, got %v", data["gauges"])
	}
	if data["gauges_display"] != "12,14" {
		t.Errorf("Expected display gauges 12,14, got %v", data["gauges_display"])
	}

	// 已带GG的输入保持不变（幂等）
	id := data["id"].(string)
	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/mdm/garment-types/"+id, map[string]interface{}{
		"gauges": "12 GG, 16",
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["gauges"] != "12 GG,16 GG" {
		t.Errorf("Expected stored gauges 12 GG,16 GG, got %v", data2["gauges"])
	}
}

func TestGarmentTypeGetReturnsBothForms(t *testing.T) {
	env := setupGarmentTypeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/garment-types", map[string]interface{}{
		"code":   "GT-002",
		"name":   "开衫",
		"gauges": "7gg",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/garment-types/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["gauges"] != "7gg" {
		t.Errorf("Expected stored gauges 7gg kept as-is, got %v", data["gauges"])
	}
	if data["gauges_display"] != "7" {
		t.Errorf("Expected display gauges 7, got %v", data["gauges_display"])
	}
}

func TestGarmentTypeNotFound(t *testing.T) {
	env := setupGarmentTypeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/garment-types/no-such-id", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
