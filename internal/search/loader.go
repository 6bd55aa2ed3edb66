package search

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-user-search/internal/domain"
	apperrors "github.com/kurihiro0119/github-user-search/internal/errors"
	"github.com/kurihiro0119/github-user-search/internal/gh"
	"github.com/kurihiro0119/github-user-search/internal/repocache"
)

// Loader fetches a user's repositories at most once per cache generation
// and serves cached results on repeat requests without a network call.
//
// Only completed fetches de-duplicate: two loads for the same uncached
// login racing before the first resolves can both hit the network. The
// presence check guards the cache, not in-flight requests.
type Loader struct {
	client gh.Client
	cache  *repocache.Cache
	log    logrus.FieldLogger

	mu      sync.Mutex
	loading string
	err     string
}

// NewLoader creates a loader writing into the given cache
func NewLoader(client gh.Client, cache *repocache.Cache, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{
		client: client,
		cache:  cache,
		log:    log,
	}
}

// Load returns the repositories for a login, from cache when a fetch has
// already completed. On failure no cache entry is written, so a later Load
// retries. The loading marker is cleared when the request settles either way.
func (l *Loader) Load(ctx context.Context, login string) ([]domain.Repo, error) {
	if repos, ok := l.cache.Get(login); ok {
		return repos, nil
	}

	l.mu.Lock()
	l.loading = login
	l.err = ""
	l.mu.Unlock()

	repos, err := l.client.ListRepos(ctx, login)

	l.mu.Lock()
	if l.loading == login {
		l.loading = ""
	}
	if err != nil {
		appErr := apperrors.NewRepoFetchError(err)
		l.err = appErr.Message
		l.mu.Unlock()
		l.log.WithField("login", login).WithError(err).Error("repository fetch failed")
		return nil, appErr
	}
	l.cache.Set(login, repos)
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{
		"login": login,
		"repos": len(repos),
	}).Info("repositories fetched")
	return repos, nil
}

// LoadingLogin returns the login currently loading repositories, or ""
func (l *Loader) LoadingLogin() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the user-facing repository fetch error, or ""
func (l *Loader) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Reset clears the loading marker and error. The controller calls this
// when a new search resets the cache.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = ""
	l.err = ""
}
