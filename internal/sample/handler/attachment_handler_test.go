package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knitware/stitch-erp/internal/testutil"
)

func uploadAttachment(t *testing.T, env *testutil.TestEnv, token, sampleID, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/v1/samples/"+sampleID+"/attachments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func TestSampleAttachmentLifecycle(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	sample := createSample(t, env, token)
	sampleID := sample["id"].(string)

	w := uploadAttachment(t, env, token, sampleID, "tech-pack.pdf", []byte("%PDF-1.4 fixture"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Upload failed: %d %s", w.Code, w.Body.String())
	}
	attachment := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if attachment["file_name"] != "tech-pack.pdf" {
		t.Errorf("Expected file_name tech-pack.pdf, got %v", attachment["file_name"])
	}
	if attachment["object_key"] == "" {
		t.Error("Expected object_key to be assigned")
	}

	wl := testutil.DoRequest(env.Router, "GET", "/api/v1/samples/"+sampleID+"/attachments", nil, token)
	items := testutil.ParseResponse(wl)["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(items))
	}

	// 未配置对象存储时下载报错
	wd := testutil.DoRequest(env.Router, "GET", "/api/v1/samples/"+sampleID+"/attachments/"+attachment["id"].(string)+"/download", nil, token)
	if wd.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 without object storage, got %d", wd.Code)
	}

	wdel := testutil.DoRequest(env.Router, "DELETE", "/api/v1/samples/"+sampleID+"/attachments/"+attachment["id"].(string), nil, token)
	if wdel.Code != http.StatusOK {
		t.Fatalf("Delete failed: %d %s", wdel.Code, wdel.Body.String())
	}

	wl = testutil.DoRequest(env.Router, "GET", "/api/v1/samples/"+sampleID+"/attachments", nil, token)
	// 空列表序列化为 null
	items, _ = testutil.ParseResponse(wl)["data"].([]interface{})
	if len(items) != 0 {
		t.Errorf("Expected 0 attachments after delete, got %d", len(items))
	}
}

func TestSampleAttachmentUnknownSample(t *testing.T) {
	env := setupSampleTest(t)
	token := testutil.DefaultTestToken()

	w := uploadAttachment(t, env, token, "no-such-id", "sketch.png", []byte("png"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown sample, got %d", w.Code)
	}

	wl := testutil.DoRequest(env.Router, "GET", "/api/v1/samples/no-such-id/attachments", nil, token)
	if wl.Code != http.StatusNotFound {
		t.Errorf("Expected 404 listing attachments of unknown sample, got %d", wl.Code)
	}
}
