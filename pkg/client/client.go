package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kurihiro0119/github-user-search/internal/domain"
)

// Client is the API client for the github-user-search service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search runs a user search and returns the resulting search state
func (c *Client) Search(query string) (*domain.SearchState, error) {
	params := url.Values{}
	params.Set("q", query)

	var response struct {
		Data *domain.SearchState `json:"data"`
	}
	if err := c.get("/api/v1/search", params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// UserRepos holds a user's repository list as returned by the service
type UserRepos struct {
	Login   string        `json:"login"`
	Repos   []domain.Repo `json:"repos"`
	Message string        `json:"message"`
}

// GetUserRepos retrieves the public repositories of a user
func (c *Client) GetUserRepos(login string) (*UserRepos, error) {
	path := fmt.Sprintf("/api/v1/users/%s/repos", url.PathEscape(login))

	var response struct {
		Data *UserRepos `json:"data"`
	}
	if err := c.get(path, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// HealthCheck checks if the API is healthy
func (c *Client) HealthCheck() error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", nil, &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("unhealthy status: %s", response.Status)
	}
	return nil
}

func (c *Client) get(path string, params url.Values, result interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	resp, err := c.httpClient.Get(u.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
