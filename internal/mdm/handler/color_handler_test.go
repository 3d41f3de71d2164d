package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
	"github.com/knitware/stitch-erp/internal/middleware"
	"github.com/knitware/stitch-erp/internal/testutil"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func setupColorTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, nil)
	h := NewHandlers(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/mdm/colors", h.Color.List)
	api.GET("/mdm/colors/all", h.Color.ListAll)
	api.GET("/mdm/colors/:id", h.Color.Get)
	api.POST("/mdm/colors", h.Color.Create)
	api.PUT("/mdm/colors/:id", h.Color.Update)
	api.DELETE("/mdm/colors/:id", middleware.RequireRole("admin"), h.Color.Delete)
	api.POST("/mdm/colors/import", h.Color.Import)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestColorAutoClassification(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	// 留空的归类字段按hex自动补全
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", map[string]interface{}{
		"code":     "CLR-001",
		"name":     "大红",
		"hex_code": "#FF0000",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["family"] != "Red" {
		t.Errorf("Expected family Red, got %v", data["family"])
	}
	if data["value"] != "Bright" {
		t.Errorf("Expected value Bright, got %v", data["value"])
	}
	if data["r"].(float64) != 255 || data["g"].(float64) != 0 || data["b"].(float64) != 0 {
		t.Errorf("Expected RGB 255/0/0, got %v/%v/%v", data["r"], data["g"], data["b"])
	}

	// 显式给出的归类不被覆盖
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", map[string]interface{}{
		"code":     "CLR-002",
		"name":     "勃艮第红",
		"hex_code": "#FF0000",
		"family":   "Burgundy",
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["family"] != "Burgundy" {
		t.Errorf("Expected explicit family Burgundy, got %v", data2["family"])
	}
	if data2["value"] != "Bright" {
		t.Errorf("Expected auto value Bright, got %v", data2["value"])
	}
}

func TestColorMalformedHexStoredVerbatim(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", map[string]interface{}{
		"code":     "CLR-BAD",
		"name":     "缺井号",
		"hex_code": "FF0000",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["hex_code"] != "FF0000" {
		t.Errorf("Expected hex stored verbatim, got %v", data["hex_code"])
	}
	if data["family"] != "" || data["value"] != "" {
		t.Errorf("Expected classification skipped, got %v/%v", data["family"], data["value"])
	}
}

func TestColorUpdateReclassifies(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", map[string]interface{}{
		"code":     "CLR-UPD",
		"name":     "海军蓝",
		"hex_code": "#0000FF",
		"family":   "Navy",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// family留空时按hex重新归类
	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/mdm/colors/"+id, map[string]interface{}{
		"family": "",
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["family"] != "Blue" {
		t.Errorf("Expected reclassified family Blue, got %v", data["family"])
	}
}

func TestColorDuplicateCode(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{"code": "CLR-DUP", "name": "重复色", "hex_code": "#00FF00"}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", body, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for duplicate code, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestColorListFilters(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	hexes := map[string]string{"CLR-R": "#FF0000", "CLR-G": "#008000", "CLR-B": "#0000FF"}
	for code, hex := range hexes {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/mdm/colors", map[string]interface{}{
			"code":     code,
			"name":     "色" + code,
			"hex_code": hex,
		}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed color %s failed: %d %s", code, w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/colors?family=Green", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 green color, got %d", len(items))
	}
	if items[0].(map[string]interface{})["code"] != "CLR-G" {
		t.Errorf("Expected CLR-G, got %v", items[0].(map[string]interface{})["code"])
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/colors?search=CLR-R", nil, token)
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if int(data2["pagination"].(map[string]interface{})["total"].(float64)) != 1 {
		t.Errorf("Expected search total 1, got %v", data2["pagination"])
	}
}

func TestColorImportCSVWithGBK(t *testing.T) {
	env := setupColorTest(t)
	token := testutil.DefaultTestToken()

	csv := "编码,名称,色号,潘通\n" +
		"CLR-101,正黑,#000000,19-0303 TCX\n" +
		"CLR-102,米白,#E8E4DC,\n" +
		",缺编码,#FF0000,\n"

	// 旧版ERP导出为GBK编码
	gbk, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(csv))
	if err != nil {
		t.Fatalf("Encode GBK fixture: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "colors.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(gbk)
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/v1/mdm/colors/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["imported"].(float64)) != 2 {
		t.Errorf("Expected 2 imported, got %v", data["imported"])
	}
	if int(data["failed"].(float64)) != 1 {
		t.Errorf("Expected 1 failed, got %v", data["failed"])
	}

	// 导入行同样走自动归类，GBK中文名称解码正确
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/colors?search=CLR-101", nil, token)
	items := testutil.ParseResponse(w2)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected imported color found, got %d items", len(items))
	}
	imported := items[0].(map[string]interface{})
	if imported["family"] != "Black" {
		t.Errorf("Expected imported family Black, got %v", imported["family"])
	}
	if imported["name"] != "正黑" {
		t.Errorf("Expected decoded name 正黑, got %v", imported["name"])
	}
}

func TestColorDeleteRequiresAdminRole(t *testing.T) {
	env := setupColorTest(t)

	color := testutil.SeedTestColor(t, env.DB, "clr-del-1", "CLR-DEL", "待删色")

	viewer := testutil.GenerateTestToken("u-viewer", "访客", "viewer@test.com", "viewer")
	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/mdm/colors/"+color.ID, nil, viewer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for viewer delete, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/mdm/colors/"+color.ID, nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin delete, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/colors/"+color.ID, nil, testutil.DefaultTestToken())
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestColorRequiresAuth(t *testing.T) {
	env := setupColorTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/mdm/colors", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
