package hytech_middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hytech-racing/car-search-webserver/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type dummyHandler struct {
	called *bool
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	*d.called = true
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Success"))
}

func TestRequestLogger_LogsOneLinePerRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	var ctxLogger *zap.Logger
	handler := chiMiddleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/cars/search?colour=red", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusTeapot, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
	require.NotNil(t, ctxLogger)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/cars/search", fields["path"])
	assert.Equal(t, "colour=red", fields["query"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, resp.Header().Get("X-Request-ID"), fields["request_id"])
}

func TestCrashRecovery_WritesCrashFile(t *testing.T) {
	dir := t.TempDir()
	recorder := logging.NewCrashRecorder(dir, 5)
	recorder.Record("before the crash")

	handler := CrashRecovery(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	resp := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/cars/export", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["message"])

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(dir + "/" + files[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(content), "Panic: boom")
	assert.Contains(t, string(content), "before the crash")
}

func TestCrashRecovery_PassesThrough(t *testing.T) {
	called := false
	handler := CrashRecovery(nil)(&dummyHandler{called: &called})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBodySizeLimit_ValidBody(t *testing.T) {
	called := false
	handler := BodySizeLimit(1000)(&dummyHandler{called: &called})

	req := httptest.NewRequest(http.MethodPost, "/cars/batch", io.NopCloser(bytes.NewReader(make([]byte, 200))))
	req.ContentLength = 200
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBodySizeLimit_DeclaredTooLarge(t *testing.T) {
	handler := BodySizeLimit(100)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Handler should not be called if the body is too large")
	}))

	req := httptest.NewRequest(http.MethodPost, "/cars/batch", bytes.NewReader(make([]byte, 200)))
	req.ContentLength = 200
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestBodySizeLimit_UndeclaredTooLarge(t *testing.T) {
	var readErr error
	handler := BodySizeLimit(100)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/cars/batch", bytes.NewReader(make([]byte, 200)))
	req.ContentLength = -1
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}
