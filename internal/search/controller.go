// Package search owns the query lifecycle: the debounced search state
// machine and the per-user repository loader.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-user-search/internal/debounce"
	"github.com/kurihiro0119/github-user-search/internal/domain"
	apperrors "github.com/kurihiro0119/github-user-search/internal/errors"
	"github.com/kurihiro0119/github-user-search/internal/gh"
	"github.com/kurihiro0119/github-user-search/internal/repocache"
)

// Controller drives the user search state machine. A non-empty debounced
// query moves it Idle -> Searching and clears prior results alongside the
// repository cache; the response moves it to Success or Failed. An empty or
// whitespace-only query resets to the idle baseline without a request.
//
// In-flight requests are not cancelled and responses apply in arrival
// order, so a slow earlier search can overwrite a faster later one. Each
// search carries a request ID so the interleaving is visible in logs.
type Controller struct {
	client gh.Client
	cache  *repocache.Cache
	loader *Loader
	log    logrus.FieldLogger

	mu    sync.Mutex
	state domain.SearchState
	subs  []func(domain.SearchState)

	now func() time.Time
}

// NewController creates a controller. The loader may be nil when repository
// browsing is not wired in; log may be nil to use the standard logger.
func NewController(client gh.Client, cache *repocache.Cache, loader *Loader, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		client: client,
		cache:  cache,
		loader: loader,
		log:    log,
		state:  domain.NewSearchState(),
		now:    time.Now,
	}
}

// BindDebouncer registers the query-change transition as a subscriber on a
// debounced input value.
func (c *Controller) BindDebouncer(d *debounce.Debouncer[string]) {
	d.Subscribe(c.OnQueryChange)
}

// OnQueryChange handles a change of the debounced query value
func (c *Controller) OnQueryChange(query string) {
	term := strings.TrimSpace(query)
	if term == "" {
		c.reset()
		return
	}
	go c.search(context.Background(), term)
}

// Search triggers a manually-submitted search using the raw input,
// bypassing the debounce window. It follows the same transitions and
// clearing behavior as a debounced search.
func (c *Controller) Search(query string) {
	c.OnQueryChange(query)
}

// SearchAndWait runs a search to completion and returns the resulting
// state. Used by callers that need the outcome in hand, like the HTTP API.
func (c *Controller) SearchAndWait(ctx context.Context, query string) domain.SearchState {
	term := strings.TrimSpace(query)
	if term == "" {
		c.reset()
		return c.State()
	}
	c.search(ctx, term)
	return c.State()
}

// State returns a copy of the current search state
func (c *Controller) State() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.state)
}

// Subscribe registers a callback invoked after every state transition
func (c *Controller) Subscribe(fn func(domain.SearchState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// search runs the Searching -> Success/Failed cycle for a non-empty term
func (c *Controller) search(ctx context.Context, term string) {
	requestID := uuid.New().String()

	c.mu.Lock()
	start := c.now()
	c.state = domain.SearchState{
		Query:      term,
		Status:     domain.StatusSearching,
		Users:      []domain.User{},
		DurationMS: domain.DurationUnset,
		RequestID:  requestID,
	}
	c.cache.Clear()
	if c.loader != nil {
		c.loader.Reset()
	}
	searching := copyState(c.state)
	c.mu.Unlock()
	c.notify(searching)

	c.log.WithFields(logrus.Fields{
		"query":      term,
		"request_id": requestID,
	}).Info("searching users")

	result, err := c.client.SearchUsers(ctx, term)

	c.mu.Lock()
	if err != nil {
		appErr := apperrors.NewUserSearchError(err)
		c.state.Status = domain.StatusFailed
		c.state.Users = []domain.User{}
		c.state.TotalCount = 0
		c.state.Error = appErr.Message
		c.log.WithFields(logrus.Fields{
			"query":      term,
			"request_id": requestID,
		}).WithError(err).Error("user search failed")
	} else {
		c.state.Status = domain.StatusSuccess
		c.state.Users = result.Items
		c.state.TotalCount = result.TotalCount
		c.state.DurationMS = c.now().Sub(start).Milliseconds()
		c.state.Error = ""
		c.log.WithFields(logrus.Fields{
			"query":       term,
			"request_id":  requestID,
			"total_count": result.TotalCount,
			"duration_ms": c.state.DurationMS,
		}).Info("user search completed")
	}
	done := copyState(c.state)
	c.mu.Unlock()
	c.notify(done)
}

// reset returns to the empty idle baseline without issuing a request
func (c *Controller) reset() {
	c.mu.Lock()
	c.state = domain.NewSearchState()
	c.cache.Clear()
	if c.loader != nil {
		c.loader.Reset()
	}
	idle := copyState(c.state)
	c.mu.Unlock()
	c.notify(idle)
}

func (c *Controller) notify(state domain.SearchState) {
	c.mu.Lock()
	subs := make([]func(domain.SearchState), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func copyState(s domain.SearchState) domain.SearchState {
	out := s
	out.Users = make([]domain.User, len(s.Users))
	copy(out.Users, s.Users)
	return out
}
