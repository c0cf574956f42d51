package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-superset/internal/config"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		DataRoot:           t.TempDir(),
		Seasons:            []string{"2020-21"},
		DefaultSeason:      "2020-21",
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		ExportDir:          t.TempDir(),
	}
}

func TestNewHTTPServer_ServesHealthAndSeasons(t *testing.T) {
	cfg := testConfig(t)
	logger := logging.NewNop()

	srv, err := NewHTTPServer(cfg, NewServices(cfg, logger), logger)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	for _, path := range []string{"/healthz", "/v1/seasons"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestNewHTTPServer_MissingDataIsUnavailable(t *testing.T) {
	cfg := testConfig(t)
	logger := logging.NewNop()

	srv, err := NewHTTPServer(cfg, NewServices(cfg, logger), logger)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/2020-21/options", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for a season without id_dict.csv, got %d", rec.Code)
	}
}

func TestNewHTTPServer_Validation(t *testing.T) {
	cfg := testConfig(t)
	if _, err := NewHTTPServer(cfg, nil, nil); err == nil {
		t.Fatalf("expected error for nil services")
	}

	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(cfg, NewServices(cfg, nil), nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
