package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winsbygroup.com/brvalida/internal/config"
	"winsbygroup.com/brvalida/internal/middleware"
	"winsbygroup.com/brvalida/internal/server"
)

func build(t *testing.T, mutate func(cfg *config.Config)) *server.Server {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := server.Build(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func get(srv *server.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func customerCount(t *testing.T, srv *server.Server) int {
	t.Helper()
	rec := get(srv, "/clientes")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return len(list)
}

func TestBuildMemoryStore(t *testing.T) {
	srv := build(t, nil)

	assert.Nil(t, srv.DB)
	assert.Nil(t, srv.Redis)
	assert.Equal(t, ":3004", srv.HTTP.Addr)

	t.Run("health", func(t *testing.T) {
		rec := get(srv, "/livez")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())

		rec = get(srv, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Ready", rec.Body.String())
	})

	t.Run("banner", func(t *testing.T) {
		rec := get(srv, "/")
		assert.Equal(t, "API de validação de CPF, CNPJ e CEP", rec.Body.String())
	})

	t.Run("seeded", func(t *testing.T) {
		assert.Equal(t, 4, customerCount(t, srv))
	})

	t.Run("request id", func(t *testing.T) {
		rec := get(srv, "/valida-cpf/52998224725")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("metrics", func(t *testing.T) {
		get(srv, "/valida-cnpj/11222333000181")

		rec := get(srv, "/metrics")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `document_validations_total{kind="cnpj",result="valid"}`)
		assert.Contains(t, body, `http_requests_total{method="GET",path="/valida-cnpj/:cnpj",status="200"}`)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := get(srv, "/nao-existe")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
	})
}

func TestBuildEmpty(t *testing.T) {
	srv := build(t, func(cfg *config.Config) { cfg.Seed = false })
	assert.Equal(t, 0, customerCount(t, srv))
}

func TestBuildSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "brvalida.db")

	srv := build(t, func(cfg *config.Config) {
		cfg.Store = config.StoreSQLite
		cfg.DBPath = dbPath
	})
	require.NotNil(t, srv.DB)
	assert.Equal(t, 4, customerCount(t, srv))

	rec := get(srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Reopening a populated database does not seed twice
	require.NoError(t, srv.Close())
	again := build(t, func(cfg *config.Config) {
		cfg.Store = config.StoreSQLite
		cfg.DBPath = dbPath
	})
	assert.Equal(t, 4, customerCount(t, again))
}

func TestBuildSharedMemoryDatabase(t *testing.T) {
	srv := build(t, func(cfg *config.Config) {
		cfg.Store = config.StoreSQLite
		cfg.DBPath = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/clientes/12345678901", nil)
	srv.Echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, get(srv, "/clientes/12345678901").Code)
	assert.Equal(t, 3, customerCount(t, srv))
}

func TestReadyzRedisDown(t *testing.T) {
	srv := build(t, func(cfg *config.Config) {
		// Nothing listens on port 1
		cfg.Redis.Addr = "127.0.0.1:1"
	})
	require.NotNil(t, srv.Redis)

	rec := get(srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Redis not ready", rec.Body.String())
}
