package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type fakeImportService struct {
	calls      int
	lastSource string
	readBytes  int64
}

func (f *fakeImportService) ImportContent(_ context.Context, source string, content io.Reader, _ string, _ int) (*types.ImportRun, error) {
	f.calls++
	f.lastSource = source
	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return nil, err
	}
	f.readBytes = n
	return &types.ImportRun{ID: uuid.New(), Source: source, Status: "done"}, nil
}

func (f *fakeImportService) ImportStaged(context.Context, string) (*types.ImportRun, error) {
	return nil, nil
}

func (f *fakeImportService) GetRun(context.Context, uuid.UUID) (*types.ImportRun, error) {
	return nil, nil
}

func (f *fakeImportService) ListRuns(context.Context, int) ([]*types.ImportRun, error) {
	return nil, nil
}

func (f *fakeImportService) StagedFeedNames() []string { return nil }

func newUploadRouter(t *testing.T, svc *fakeImportService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	router := gin.New()
	router.POST("/admin/imports", NewImportHandler(log, svc).UploadFeed)
	return router
}

func multipartFeed(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("feed", "feed.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestUploadFeedAcceptsMultipart(t *testing.T) {
	svc := &fakeImportService{}
	router := newUploadRouter(t, svc)

	payload := []byte("header\nToyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n")
	body, contentType := multipartFeed(t, payload)

	req := httptest.NewRequest(http.MethodPost, "/admin/imports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.calls != 1 || svc.lastSource != "upload:feed.csv" {
		t.Fatalf("service not invoked as expected: calls=%d source=%q", svc.calls, svc.lastSource)
	}
	if svc.readBytes != int64(len(payload)) {
		t.Fatalf("expected %d bytes read, got %d", len(payload), svc.readBytes)
	}
}

func TestUploadFeedRejectsOversizedFile(t *testing.T) {
	prev := maxFeedUploadBytes
	maxFeedUploadBytes = 1024
	t.Cleanup(func() { maxFeedUploadBytes = prev })

	svc := &fakeImportService{}
	router := newUploadRouter(t, svc)

	body, contentType := multipartFeed(t, bytes.Repeat([]byte("x"), 2048))

	req := httptest.NewRequest(http.MethodPost, "/admin/imports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
	if svc.calls != 0 {
		t.Fatalf("oversized upload must never reach the service, calls=%d", svc.calls)
	}
}

func TestUploadFeedRawBody(t *testing.T) {
	svc := &fakeImportService{}
	router := newUploadRouter(t, svc)

	raw := "header\nToyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n"
	req := httptest.NewRequest(http.MethodPost, "/admin/imports", strings.NewReader(raw))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.calls != 1 || svc.lastSource != "upload" {
		t.Fatalf("service not invoked as expected: calls=%d source=%q", svc.calls, svc.lastSource)
	}
}
