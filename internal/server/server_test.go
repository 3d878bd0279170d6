package server_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrgen/internal/capacity"
	"github.com/cristianadrielbraun/qrgen/internal/config"
	"github.com/cristianadrielbraun/qrgen/internal/qr"
	"github.com/cristianadrielbraun/qrgen/internal/server"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRouter(t *testing.T, environ map[string]string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.FromMap(environ)
	require.NoError(t, err)
	return server.NewRouter(cfg, discard, qr.NewEncoder())
}

func do(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// httptest requests target example.com, so this origin passes the guard.
var sameOrigin = map[string]string{"Origin": "http://example.com"}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestHealth(t *testing.T) {
	router := newRouter(t, map[string]string{"SERVICE_NAME": "QR Test"})
	w := do(router, http.MethodGet, "/api/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "QR Test", body["service"])
	assert.Positive(t, body["timestamp"])
}

func TestGenerate(t *testing.T) {
	router := newRouter(t, map[string]string{"ALLOWED_API_KEY": "k3y"})

	t.Run("svg by default", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test"}`, sameOrigin)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("png data url", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test","format":"png"}`, sameOrigin)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Format    string `json:"format"`
			DataURL   string `json:"data_url"`
			SizeBytes int    `json:"size_bytes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "png", body.Format)
		require.True(t, strings.HasPrefix(body.DataURL, "data:image/png;base64,"))

		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(body.DataURL, "data:image/png;base64,"))
		require.NoError(t, err)
		assert.Equal(t, len(raw), body.SizeBytes)

		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, img.Bounds().Dx(), 400)
		assert.GreaterOrEqual(t, img.Bounds().Dy(), 400)
	})

	t.Run("invalid format", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test","format":"bogus"}`, sameOrigin)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), "<svg")
		assert.Contains(t, w.Body.String(), "Invalid format")
	})

	t.Run("missing data", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"format":"svg"}`, sameOrigin)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing 'data' field"}`, w.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":`, sameOrigin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty data is encodable", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":""}`, sameOrigin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("too large to encode", func(t *testing.T) {
		body := jsonBody(t, map[string]string{"data": strings.Repeat("a", 5000)})
		w := do(router, http.MethodPost, "/api/generate", body, sameOrigin)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "5000 bytes")
	})

	t.Run("direct call denied", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test"}`, nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "direct calls not allowed")
		assert.NotContains(t, w.Body.String(), "key")
	})

	t.Run("foreign origin denied", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test"}`, map[string]string{"Origin": "https://evil.test"})
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "origin mismatch")
	})

	t.Run("api key allows direct call", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/generate", `{"data":"test"}`, map[string]string{"X-API-Key": "k3y"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGenerateBodyLimit(t *testing.T) {
	router := newRouter(t, map[string]string{"MAX_BODY_BYTES": "64"})
	body := jsonBody(t, map[string]string{"data": strings.Repeat("a", 200)})

	w := do(router, http.MethodPost, "/api/generate", body, sameOrigin)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestQRQuery(t *testing.T) {
	router := newRouter(t, nil)

	t.Run("svg", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/qr?data=hello%20world", "", sameOrigin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("png", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/qr?data=hello&format=png", "", sameOrigin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"format":"png"`)
	})

	t.Run("missing data", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/qr?format=svg", "", sameOrigin)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing 'data' query parameter")
	})

	t.Run("empty format", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/qr?data=x&format=", "", sameOrigin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gated", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/qr?data=x", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCheckCapacity(t *testing.T) {
	router := newRouter(t, nil)

	probe := func(t *testing.T, data string) capacity.Report {
		t.Helper()
		w := do(router, http.MethodPost, "/api/check-capacity", jsonBody(t, map[string]string{"data": data}), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var r capacity.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
		return r
	}

	t.Run("empty string", func(t *testing.T) {
		r := probe(t, "")
		assert.True(t, r.IsWithinLimit)
		assert.Zero(t, r.ByteCount)
		assert.Zero(t, r.PercentageUsed)
		assert.Positive(t, r.MaxCapacityBytes)
		assert.Equal(t, 2953, r.TheoreticalMax)
	})

	t.Run("5000 bytes is reported, not rejected", func(t *testing.T) {
		r := probe(t, strings.Repeat("a", 5000))
		assert.False(t, r.IsWithinLimit)
		assert.Positive(t, r.BytesOver)
		assert.Zero(t, r.BytesRemaining)
	})

	t.Run("within limit round-trips through generate", func(t *testing.T) {
		data := strings.Repeat("Lorem ipsum dolor sit amet. ", 50)
		r := probe(t, data)
		require.True(t, r.IsWithinLimit)

		w := do(router, http.MethodPost, "/api/generate", jsonBody(t, map[string]string{"data": data}), sameOrigin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing data", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/check-capacity", `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPages(t *testing.T) {
	router := newRouter(t, nil)

	w := do(router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="generate-btn"`)

	w = do(router, http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>http://example.com/</loc>")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{"PORT": "127.0.0.1:0", "SHUTDOWN_TIMEOUT": "1s"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, cfg, http.NotFoundHandler(), discard) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
