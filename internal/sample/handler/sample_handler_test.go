package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/knitware/stitch-erp/internal/sample/repository"
	"github.com/knitware/stitch-erp/internal/sample/service"
	"github.com/knitware/stitch-erp/internal/testutil"
)

func setupSampleTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, nil, "stitch-erp")
	h := NewHandlers(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/samples", h.Sample.List)
	api.GET("/samples/:id", h.Sample.Get)
	api.POST("/samples", h.Sample.Create)
	api.PUT("/samples/:id/steps/basics", h.Sample.StepBasics)
	api.PUT("/samples/:id/steps/materials", h.Sample.StepMaterials)
	api.PUT("/samples/:id/steps/colorways", h.Sample.StepColorways)
	api.PUT("/samples/:id/steps/workmanship", h.Sample.StepWorkmanship)
	api.POST("/samples/:id/submit", h.Sample.Submit)
	api.PUT("/samples/:id/status", h.Sample.UpdateStatus)
	api.GET("/samples/:id/activities", h.Sample.ListActivities)
	api.GET("/samples/:id/attachments", h.Attachment.List)
	api.POST("/samples/:id/attachments", h.Attachment.Upload)
	api.GET("/samples/:id/attachments/:attachmentId/download", h.Attachment.Download)
	api.DELETE("/samples/:id/attachments/:attachmentId", h.Attachment.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func createSample(t *testing.T, env *testutil.TestEnv, token string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/samples", map[string]interface{}{}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create sample failed: %d %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func fillStep(t *testing.T, env *testutil.TestEnv, token, sampleID, step string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/steps/"+step, body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Step %s failed: %d %s", step, w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func basicsBody() map[string]interface{} {
	return map[string]interface{}{
		"buyer":    "Nordic Knit AB",
		"style_no": "NK-2025-088",
		"due_date": "2025-09-30",
		"priority": "high",
	}
}

func materialsBody() map[string]interface{} {
	return map[string]interface{}{
		"lines": []map[string]interface{}{
			{"kind": "yarn", "name": "2/28NM 美丽诺羊毛", "usage": "大身", "quantity": 0.45, "unit": "kg"},
			{"kind": "trim", "name": "树脂纽扣 18L", "usage": "门襟", "quantity": 6, "unit": "pcs"},
		},
	}
}

func colorwaysBody() map[string]interface{} {
	return map[string]interface{}{
		"lines": []map[string]interface{}{
			{"color_name": "Navy", "size_name": "M", "quantity": 1},
			{"color_name": "Oatmeal", "size_name": "M", "quantity": 1},
		},
	}
}

func workmanshipBody() map[string]interface{} {
	return map[string]interface{}{
		"workmanship":         "12针平纹，下摆1x1罗纹，套口缝合",
		"washing_instruction": "30度手洗，平铺晾干",
	}
}

func submitSample(t *testing.T, env *testutil.TestEnv, token, sampleID string) {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/samples/"+sampleID+"/submit", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Submit failed: %d %s", w.Code, w.Body.String())
	}
}

func setSampleStatus(t *testing.T, env *testutil.TestEnv, token, sampleID, status string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/status", map[string]interface{}{
		"status": status,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Status %s failed: %d %s", status, w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestSampleWizardFlow(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	wantNo := fmt.Sprintf("SR-%s-0001", time.Now().Format("20060102"))
	if sample["request_no"] != wantNo {
		t.Errorf("Expected request_no %s, got %v", wantNo, sample["request_no"])
	}
	if sample["status"] != "draft" || sample["current_step"].(float64) != 0 {
		t.Errorf("Expected draft step 0, got %v step %v", sample["status"], sample["current_step"])
	}
	if sample["round"].(float64) != 1 {
		t.Errorf("Expected round 1, got %v", sample["round"])
	}

	after := fillStep(t, env, token, sampleID, "basics", basicsBody())
	if after["current_step"].(float64) != 1 || after["basics_done"] != true {
		t.Errorf("Expected step 1 after basics, got %v done=%v", after["current_step"], after["basics_done"])
	}

	after = fillStep(t, env, token, sampleID, "materials", materialsBody())
	if after["current_step"].(float64) != 2 {
		t.Errorf("Expected step 2 after materials, got %v", after["current_step"])
	}

	after = fillStep(t, env, token, sampleID, "colorways", colorwaysBody())
	if after["current_step"].(float64) != 3 {
		t.Errorf("Expected step 3 after colorways, got %v", after["current_step"])
	}

	after = fillStep(t, env, token, sampleID, "workmanship", workmanshipBody())
	if after["current_step"].(float64) != 4 {
		t.Errorf("Expected step 4 after workmanship, got %v", after["current_step"])
	}

	submitSample(t, env, token, sampleID)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/samples/"+sampleID, nil, token)
	detail := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if detail["status"] != "submitted" {
		t.Errorf("Expected submitted, got %v", detail["status"])
	}
	if detail["submitted_at"] == nil {
		t.Error("Expected submitted_at to be set")
	}
	if len(detail["materials"].([]interface{})) != 2 {
		t.Errorf("Expected 2 materials, got %v", detail["materials"])
	}
	if len(detail["colorways"].([]interface{})) != 2 {
		t.Errorf("Expected 2 colorways, got %v", detail["colorways"])
	}

	// 提交后向导锁定
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/steps/basics", basicsBody(), token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 editing submitted sample, got %d", w.Code)
	}
}

func TestSampleSubmitRequiresAllSteps(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)
	fillStep(t, env, token, sampleID, "basics", basicsBody())

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/samples/"+sampleID+"/submit", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for incomplete wizard, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "用料清单") {
		t.Errorf("Expected missing step named in message, got %s", w.Body.String())
	}
}

func TestSampleStepProgressIsContiguous(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	fillStep(t, env, token, sampleID, "basics", basicsBody())
	// 跳过用料直接填配色：配色完成但步骤停在1
	after := fillStep(t, env, token, sampleID, "colorways", colorwaysBody())
	if after["colorways_done"] != true {
		t.Error("Expected colorways_done after filling colorways")
	}
	if after["current_step"].(float64) != 1 {
		t.Errorf("Expected step to stay at 1 with materials missing, got %v", after["current_step"])
	}

	// 补上用料后连续完成到3
	after = fillStep(t, env, token, sampleID, "materials", materialsBody())
	if after["current_step"].(float64) != 3 {
		t.Errorf("Expected step 3 after filling the gap, got %v", after["current_step"])
	}
}

func TestSampleRequestNoSequence(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	day := time.Now().Format("20060102")
	first := createSample(t, env, token)
	second := createSample(t, env, token)

	if first["request_no"] != fmt.Sprintf("SR-%s-0001", day) {
		t.Errorf("Expected SR-%s-0001, got %v", day, first["request_no"])
	}
	if second["request_no"] != fmt.Sprintf("SR-%s-0002", day) {
		t.Errorf("Expected SR-%s-0002, got %v", day, second["request_no"])
	}
}

func TestSampleRejectIncrementsRound(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)
	fillStep(t, env, token, sampleID, "basics", basicsBody())
	fillStep(t, env, token, sampleID, "materials", materialsBody())
	fillStep(t, env, token, sampleID, "colorways", colorwaysBody())
	fillStep(t, env, token, sampleID, "workmanship", workmanshipBody())
	submitSample(t, env, token, sampleID)

	setSampleStatus(t, env, token, sampleID, "in_development")
	sent := setSampleStatus(t, env, token, sampleID, "sample_sent")
	if sent["sent_at"] == nil {
		t.Error("Expected sent_at to be set")
	}

	rejected := setSampleStatus(t, env, token, sampleID, "rejected")
	if rejected["round"].(float64) != 1 {
		t.Errorf("Expected round 1 at rejection, got %v", rejected["round"])
	}
	if rejected["decided_at"] == nil {
		t.Error("Expected decided_at to be set")
	}

	// 驳回后重新开发，轮次递增
	redo := setSampleStatus(t, env, token, sampleID, "in_development")
	if redo["round"].(float64) != 2 {
		t.Errorf("Expected round 2 after re-development, got %v", redo["round"])
	}

	// 操作日志完整记录了流转
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/samples/"+sampleID+"/activities", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("List activities failed: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) < 8 {
		t.Errorf("Expected at least 8 activity entries, got %d", len(items))
	}
	actions := make(map[string]bool)
	for _, item := range items {
		actions[item.(map[string]interface{})["action"].(string)] = true
	}
	for _, want := range []string{"create", "step_update", "submit", "status_change"} {
		if !actions[want] {
			t.Errorf("Expected action %s in activity log", want)
		}
	}
}

func TestSampleStatusGuards(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	// 草稿不能直接流转到submitted，必须走提交接口
	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/status", map[string]interface{}{
		"status": "submitted",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for draft->submitted via status, got %d", w.Code)
	}

	// 草稿可取消
	cancelled := setSampleStatus(t, env, token, sampleID, "cancelled")
	if cancelled["status"] != "cancelled" {
		t.Errorf("Expected cancelled, got %v", cancelled["status"])
	}

	// 已取消不能再流转
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/status", map[string]interface{}{
		"status": "in_development",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 transitioning cancelled sample, got %d", w.Code)
	}
}

func TestSampleInvalidMaterialKind(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/steps/materials", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"kind": "button", "name": "纽扣"},
		},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid kind, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "无效的用料类型") {
		t.Errorf("Unexpected message: %s", w.Body.String())
	}
}

func TestSampleDuplicateColorwayLine(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/samples/"+sampleID+"/steps/colorways", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"color_name": "Navy", "size_name": "M", "quantity": 1},
			{"color_name": "Navy", "size_name": "M", "quantity": 2},
		},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate colorway, got %d", w.Code)
	}
}
