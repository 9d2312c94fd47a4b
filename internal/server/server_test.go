package server_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentapi/internal/dataset"
	"studentapi/internal/handler"
	"studentapi/internal/model"
	"studentapi/internal/server"
	"studentapi/internal/service"
)

func setupServer(t *testing.T, opts server.Options) *server.Server {
	t.Helper()

	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<h1>Students</h1>"), 0o644))
	staticDir := filepath.Join(dir, "static")
	require.NoError(t, os.Mkdir(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o644))

	ds, err := dataset.New([]model.Student{
		{Name: "Alice Johnson", Total: 433},
		{Name: "Bob Smith", Total: 410},
		{Name: "Carl Lee", Total: 200},
	})
	require.NoError(t, err)

	studentHandler := handler.NewStudentHandler(service.NewStudentService(ds))
	pageHandler := handler.NewPageHandler(index, staticDir)
	return server.New(server.NewRouter(studentHandler, pageHandler), opts)
}

func TestRoutes(t *testing.T) {
	srv := setupServer(t, server.Options{})

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{"Threshold", http.MethodPost, "/students/above-threshold", `{"threshold":400}`, http.StatusOK, `"count":2`},
		{"Invalid threshold", http.MethodPost, "/students/above-threshold", `{"threshold":"x"}`, http.StatusBadRequest, "Invalid threshold"},
		{"Wrong method", http.MethodPut, "/students/above-threshold", `{"threshold":400}`, http.StatusMethodNotAllowed, ""},
		{"GET falls through to static files", http.MethodGet, "/students/above-threshold", "", http.StatusNotFound, ""},
		{"Health", http.MethodGet, "/healthz", "", http.StatusOK, `"students":3`},
		{"Landing page", http.MethodGet, "/", "", http.StatusOK, "<h1>Students</h1>"},
		{"Landing page HEAD", http.MethodHead, "/", "", http.StatusOK, ""},
		{"Static asset", http.MethodGet, "/app.js", "", http.StatusOK, "console.log(1)"},
		{"Unknown asset", http.MethodGet, "/missing.css", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestCORS(t *testing.T) {
	srv := setupServer(t, server.Options{CORSOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodPost, "/students/above-threshold", strings.NewReader(`{"threshold":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStop(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	srv := setupServer(t, server.Options{Addr: addr, ShutdownTimeout: time.Second})
	errCh := srv.Start()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, srv.Stop(context.Background()))
	_, open := <-errCh
	assert.False(t, open)
}
