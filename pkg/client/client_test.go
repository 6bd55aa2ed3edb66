package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "testuser", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"query":"testuser","status":"success","users":[{"login":"testuser1"}],"total_count":1,"duration_ms":500}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	state, err := c.Search("testuser")
	require.NoError(t, err)
	assert.Equal(t, "testuser", state.Query)
	assert.Equal(t, 1, state.TotalCount)
	assert.Equal(t, int64(500), state.DurationMS)
	require.Len(t, state.Users, 1)
	assert.Equal(t, "testuser1", state.Users[0].Login)
}

func TestGetUserRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"login":"octocat","repos":[{"id":1,"name":"hello-world","stargazers_count":12}]}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	result, err := c.GetUserRepos("octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", result.Login)
	require.Len(t, result.Repos, 1)
	assert.Equal(t, "hello-world", result.Repos[0].Name)
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).HealthCheck())
}

func TestNon200IsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"REPO_FETCH_FAILED","message":"Failed to fetch repositories."}}`, http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.GetUserRepos("octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
