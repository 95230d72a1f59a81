package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eirsyl/shardadvisor/pkg/advisor"
	"github.com/eirsyl/shardadvisor/pkg/cache"
	"github.com/eirsyl/shardadvisor/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	report *runner.Report
	err    error
}

func (s stubSource) Last() (*runner.Report, error) {
	return s.report, s.err
}

func get(t *testing.T, srv *HTTPServer, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSuggestionsUnavailable(t *testing.T) {
	srv, err := NewHTTPServer(":0", nil, stubSource{}, nil)
	require.NoError(t, err)

	rec := get(t, srv, "/suggestions")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	srv, err = NewHTTPServer(":0", nil, stubSource{err: errors.New("cluster unavailable")}, nil)
	require.NoError(t, err)

	rec = get(t, srv, "/suggestions")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "cluster unavailable")
}

func TestSuggestions(t *testing.T) {
	report := &runner.Report{
		Cluster: "Production",
		Method:  advisor.MethodLoad,
		Suggestions: []advisor.MoveSuggestion{
			{Index: "orders", Shard: 0, FromNode: "n1", ToNode: "n2"},
		},
	}
	srv, err := NewHTTPServer(":0", nil, stubSource{report: report}, nil)
	require.NoError(t, err)

	rec := get(t, srv, "/suggestions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded runner.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, report.Suggestions, decoded.Suggestions)
	assert.Equal(t, "Production", decoded.Cluster)
}

func TestBackup(t *testing.T) {
	srv, err := NewHTTPServer(":0", nil, stubSource{}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/backup").Code)

	store, err := cache.NewBoltStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	srv, err = NewHTTPServer(":0", nil, stubSource{}, store.DB())
	require.NoError(t, err)

	rec := get(t, srv, "/backup")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestMetricsAndIndex(t *testing.T) {
	srv, err := NewHTTPServer(":9300", map[string]string{"Version": "test"}, stubSource{}, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9300", srv.GetListenAddr())

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "shardadvisor_"))

	rec = get(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test")
	assert.Contains(t, rec.Body.String(), "/suggestions")
}
