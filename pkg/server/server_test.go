package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/observability"
	"github.com/matzehuels/stadump/pkg/pipeline"
)

type fixture struct {
	runner  *pipeline.Runner
	handler http.Handler
	body    []byte
	want    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := baseline.NewFileStore(t.TempDir())
	require.NoError(t, err)

	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	runner := pipeline.NewRunner(store, logger)
	t.Cleanup(func() { runner.Close() })

	body, err := os.ReadFile("testdata/alu.json")
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/alu.dump")
	require.NoError(t, err)

	return &fixture{
		runner:  runner,
		handler: New(runner, Config{}, nil).Handler(),
		body:    body,
		want:    string(want),
	}
}

func (f *fixture) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestDump(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/dump", f.body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, f.want, rec.Body.String())
	assert.Equal(t, baseline.Hash([]byte(f.want)), rec.Header().Get(HeaderHash))
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(HeaderLines))
}

func TestDumpLegacy(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/dump?legacy=true", f.body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "out_edges: 1 \n")
	assert.Contains(t, rec.Body.String(), "req: nan")
}

func TestDumpErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		target string
		body   []byte
		code   errors.Code
	}{
		{"bad json", "/dump", []byte("{"), errors.ErrCodeInvalidFormat},
		{"unknown format", "/dump?format=xml", f.body, errors.ErrCodeInvalidFormat},
		{"bad bool", "/dump?legacy=maybe", f.body, errors.ErrCodeInvalidInput},
		{"bad snapshot", "/dump", []byte(`{"graph":{"nodes":[{"id":0,"type":"SOURCE"}],"edges":[{"id":0,"src":0,"sink":7}]}}`), errors.ErrCodeInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestBaselineLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/baselines", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"baselines":[]}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/baselines/designs%2Falu", f.body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var saved baseline.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "designs/alu", saved.Name)
	assert.Equal(t, f.want, saved.Text)

	rec = f.do(t, http.MethodGet, "/baselines", nil)
	assert.JSONEq(t, `{"baselines":["designs/alu"]}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/baselines/designs%2Falu", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got baseline.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved.Revision, got.Revision)

	rec = f.do(t, http.MethodPost, "/baselines/designs%2Falu/check", f.body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var check CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.True(t, check.Match)
	assert.Empty(t, check.Diff)

	rec = f.do(t, http.MethodDelete, "/baselines/designs%2Falu", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/baselines/designs%2Falu", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeBaselineNotFound, decodeError(t, rec).Code)
}

func TestCheckMismatch(t *testing.T) {
	f := newFixture(t)
	stale := strings.Replace(f.want, "req: 10", "req: 11", 1)
	_, err := f.runner.SaveText(context.Background(), "alu", []byte(stale), dump.Options{})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/baselines/alu/check", f.body)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var check CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.False(t, check.Match)
	assert.Contains(t, check.Diff, "req: 11")
	assert.Contains(t, check.Diff, "req: 10")
}

func TestCheckMissingBaseline(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/baselines/alu/check", f.body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidBaselineName(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/baselines/..%2Fetc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeInvalidName, decodeError(t, rec).Code)
}

func TestBodyTooLarge(t *testing.T) {
	f := newFixture(t)
	f.handler = New(f.runner, Config{MaxBodyBytes: 64}, nil).Handler()

	for _, target := range []string{"/dump", "/dump?format=yaml", "/baselines/alu/check"} {
		rec := f.do(t, http.MethodPost, target, f.body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, target)
		assert.Equal(t, errors.ErrCodeTooLarge, decodeError(t, rec).Code, target)
	}

	rec := f.do(t, http.MethodPost, "/dump", []byte("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "small malformed body stays a format error")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidSnapshot, http.StatusBadRequest},
		{errors.ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeBaselineNotFound, http.StatusNotFound},
		{errors.ErrCodeBaselineMismatch, http.StatusConflict},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.code), "statusFor(%q)", tt.code)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	f := newFixture(t)
	f.do(t, http.MethodGet, "/healthz", nil)
	f.do(t, http.MethodGet, "/baselines/missing", nil)

	assert.Equal(t, []string{"GET /healthz", "GET /baselines/missing"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.statuses)
}

func TestDefaultConfig(t *testing.T) {
	cfg := Config{Addr: ":9000"}.withDefaults()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, DefaultConfig().ReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultConfig().MaxBodyBytes, cfg.MaxBodyBytes)
}

func TestListenAndServeShutdown(t *testing.T) {
	f := newFixture(t)
	srv := New(f.runner, Config{Addr: "127.0.0.1:0"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
