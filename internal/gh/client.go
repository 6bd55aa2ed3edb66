package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kurihiro0119/github-user-search/internal/domain"
)

// PerPage is the fixed page size for user search. Exactly one page of
// results is requested; there is no pagination.
const PerPage = 10

// Response is the raw outcome of a GET request
type Response struct {
	StatusCode int
	Body       []byte
}

// Getter is the transport dependency: anything capable of issuing a GET
// and returning the status and body, or an error on transport failure.
type Getter interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// httpGetter implements Getter on net/http
type httpGetter struct {
	client *http.Client
}

// NewHTTPGetter returns the default transport with a 30 second timeout
func NewHTTPGetter() Getter {
	return &httpGetter{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *httpGetter) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// UserSearchResult is the envelope returned by the user search endpoint
type UserSearchResult struct {
	TotalCount int           `json:"total_count"`
	Items      []domain.User `json:"items"`
}

// Client is the GitHub API surface the application depends on
type Client interface {
	// SearchUsers searches for users matching the query (first page only)
	SearchUsers(ctx context.Context, query string) (*UserSearchResult, error)

	// ListRepos retrieves the public repositories of a user
	ListRepos(ctx context.Context, login string) ([]domain.Repo, error)
}

// client implements Client against a configured base URL
type client struct {
	baseURL string
	getter  Getter
}

// NewClient creates a new GitHub client. The base URL is either the direct
// API host or the development proxy prefix; the getter may be nil, in which
// case the default HTTP transport is used.
func NewClient(baseURL string, getter Getter) Client {
	if getter == nil {
		getter = NewHTTPGetter()
	}
	return &client{
		baseURL: baseURL,
		getter:  getter,
	}
}

// SearchUsers issues GET <base>/search/users?q=<query>&per_page=10
func (c *client) SearchUsers(ctx context.Context, query string) (*UserSearchResult, error) {
	u := fmt.Sprintf("%s/search/users?q=%s&per_page=%d", c.baseURL, url.QueryEscape(query), PerPage)

	var result UserSearchResult
	if err := c.get(ctx, u, &result); err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []domain.User{}
	}
	return &result, nil
}

// ListRepos issues GET <base>/users/<login>/repos. The response is a bare
// array, no envelope.
func (c *client) ListRepos(ctx context.Context, login string) ([]domain.Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(login))

	var repos []domain.Repo
	if err := c.get(ctx, u, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []domain.Repo{}
	}
	return repos, nil
}

func (c *client) get(ctx context.Context, url string, result interface{}) error {
	resp, err := c.getter.Get(ctx, url)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error: %d - %s", resp.StatusCode, string(resp.Body))
	}

	return json.Unmarshal(resp.Body, result)
}
