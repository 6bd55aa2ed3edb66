// Package repocache memoizes a user's repository list keyed by login.
package repocache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/kurihiro0119/github-user-search/internal/domain"
)

// Cache maps a GitHub login to that user's repository list, in API response
// order. Entries never expire and are never evicted individually; the whole
// cache is cleared when a new top-level search is issued. A key is present
// if and only if a fetch for that login completed successfully since the
// last Clear.
type Cache struct {
	store *gocache.Cache
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the cached repository list for a login
func (c *Cache) Get(login string) ([]domain.Repo, bool) {
	v, found := c.store.Get(login)
	if !found {
		return nil, false
	}
	repos, ok := v.([]domain.Repo)
	if !ok {
		return nil, false
	}
	return repos, true
}

// Has reports whether a completed fetch exists for the login
func (c *Cache) Has(login string) bool {
	_, found := c.store.Get(login)
	return found
}

// Set stores the repository list for a login, replacing any prior entry
func (c *Cache) Set(login string, repos []domain.Repo) {
	c.store.Set(login, repos, gocache.NoExpiration)
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.store.Flush()
}

// Len returns the number of cached logins
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
