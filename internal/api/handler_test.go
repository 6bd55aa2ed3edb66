package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-user-search/internal/config"
	"github.com/kurihiro0119/github-user-search/internal/domain"
	"github.com/kurihiro0119/github-user-search/internal/gh"
	"github.com/kurihiro0119/github-user-search/internal/repocache"
	"github.com/kurihiro0119/github-user-search/internal/search"
)

type stubGitHub struct {
	mu           sync.Mutex
	searchResult *gh.UserSearchResult
	searchErr    error
	repos        map[string][]domain.Repo
	repoErr      error
	repoCalls    map[string]int
}

func newStubGitHub() *stubGitHub {
	return &stubGitHub{
		repos:     make(map[string][]domain.Repo),
		repoCalls: make(map[string]int),
	}
}

func (s *stubGitHub) SearchUsers(_ context.Context, _ string) (*gh.UserSearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if s.searchResult == nil {
		return &gh.UserSearchResult{Items: []domain.User{}}, nil
	}
	return s.searchResult, nil
}

func (s *stubGitHub) ListRepos(_ context.Context, login string) ([]domain.Repo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repoCalls[login]++
	if s.repoErr != nil {
		return nil, s.repoErr
	}
	return s.repos[login], nil
}

func setupRouter(t *testing.T, client gh.Client, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	cache := repocache.New()
	loader := search.NewLoader(client, cache, log)
	controller := search.NewController(client, cache, loader, log)
	handler := NewHandler(controller, loader)

	router, err := SetupRoutes(handler, cfg, log)
	require.NoError(t, err)
	return router
}

func prodConfig() *config.Config {
	return &config.Config{
		Mode:         config.ModeProduction,
		GitHubAPIURL: "https://api.github.com",
	}
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	// Give the request a cancelable context so ReverseProxy uses ctx.Done()
	// instead of the http.CloseNotifier path, which ResponseRecorder lacks.
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	router.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t, newStubGitHub(), prodConfig())

	w := doGet(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSearchEndpoint(t *testing.T) {
	stub := newStubGitHub()
	stub.searchResult = &gh.UserSearchResult{
		TotalCount: 3,
		Items: []domain.User{
			{Login: "testuser1"},
			{Login: "testuser2"},
			{Login: "testuser3"},
		},
	}
	router := setupRouter(t, stub, prodConfig())

	w := doGet(router, "/api/v1/search?q=testuser")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data domain.SearchState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, domain.StatusSuccess, body.Data.Status)
	assert.Equal(t, 3, body.Data.TotalCount)
	require.Len(t, body.Data.Users, 3)
	assert.Equal(t, "testuser1", body.Data.Users[0].Login)
}

func TestSearchEndpointMissingQuery(t *testing.T) {
	router := setupRouter(t, newStubGitHub(), prodConfig())

	for _, path := range []string{"/api/v1/search", "/api/v1/search?q=%20%20"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	}
}

func TestSearchEndpointFailureSurfacesStateError(t *testing.T) {
	stub := newStubGitHub()
	stub.searchErr = errors.New("boom")
	router := setupRouter(t, stub, prodConfig())

	w := doGet(router, "/api/v1/search?q=testuser")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data domain.SearchState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, domain.StatusFailed, body.Data.Status)
	assert.Equal(t, "Failed to fetch users.", body.Data.Error)
	assert.Empty(t, body.Data.Users)
}

func TestUserReposEndpoint(t *testing.T) {
	stub := newStubGitHub()
	desc := "docs"
	stub.repos["octocat"] = []domain.Repo{
		{ID: 1, Name: "hello-world", Description: &desc, StarCount: 12, URL: "https://github.com/octocat/hello-world"},
	}
	router := setupRouter(t, stub, prodConfig())

	w := doGet(router, "/api/v1/users/octocat/repos")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Login   string        `json:"login"`
			Repos   []domain.Repo `json:"repos"`
			Message string        `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "octocat", body.Data.Login)
	require.Len(t, body.Data.Repos, 1)
	assert.Equal(t, "hello-world", body.Data.Repos[0].Name)
	assert.Empty(t, body.Data.Message)

	// Second request is served from cache
	w = doGet(router, "/api/v1/users/octocat/repos")
	require.Equal(t, http.StatusOK, w.Code)
	stub.mu.Lock()
	assert.Equal(t, 1, stub.repoCalls["octocat"])
	stub.mu.Unlock()
}

func TestUserReposEndpointEmptyList(t *testing.T) {
	stub := newStubGitHub()
	stub.repos["newuser"] = []domain.Repo{}
	router := setupRouter(t, stub, prodConfig())

	w := doGet(router, "/api/v1/users/newuser/repos")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No repositories found.", body.Data.Message)
}

func TestUserReposEndpointFailure(t *testing.T) {
	stub := newStubGitHub()
	stub.repoErr = errors.New("boom")
	router := setupRouter(t, stub, prodConfig())

	w := doGet(router, "/api/v1/users/octocat/repos")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "REPO_FETCH_FAILED", body.Error.Code)
	assert.Equal(t, "Failed to fetch repositories.", body.Error.Message)
}

func TestRequestIDHeader(t *testing.T) {
	router := setupRouter(t, newStubGitHub(), prodConfig())

	w := doGet(router, "/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestDevelopmentProxyStripsPrefix(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	cfg := &config.Config{
		Mode:         config.ModeDevelopment,
		GitHubAPIURL: upstream.URL,
	}
	router := setupRouter(t, newStubGitHub(), cfg)

	w := doGet(router, "/api/github/users/octocat/repos")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users/octocat/repos", gotPath)
}

func TestProxyNotMountedInProduction(t *testing.T) {
	router := setupRouter(t, newStubGitHub(), prodConfig())

	w := doGet(router, "/api/github/users/octocat/repos")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
