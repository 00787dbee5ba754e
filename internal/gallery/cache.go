package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/diploma-scanner/internal/types"
	"golang.org/x/sync/singleflight"
)

// DefaultBuildTimeout bounds one shared gallery build.
const DefaultBuildTimeout = 2 * time.Minute

// Cache keeps the last built gallery for a fixed time so repeated page
// requests do not each walk the GitHub API. Concurrent misses share one build.
type Cache struct {
	client       *Client
	ttl          time.Duration
	buildTimeout time.Duration
	now          func() time.Time

	group singleflight.Group

	mu     sync.RWMutex
	repos  []types.Repo
	loaded time.Time
	valid  bool
}

// NewCache wraps client. A ttl <= 0 disables caching.
func NewCache(client *Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl, buildTimeout: DefaultBuildTimeout, now: time.Now}
}

// Repos returns the cached gallery, rebuilding it when stale.
//
// The shared build is detached from any one caller: a caller whose ctx ends
// gets ctx.Err() while the build carries on for the others, bounded by the
// build timeout.
func (c *Cache) Repos(ctx context.Context) ([]types.Repo, error) {
	if repos, ok := c.fresh(); ok {
		return repos, nil
	}

	ch := c.group.DoChan("gallery", func() (any, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.buildTimeout)
		defer cancel()

		repos, err := c.client.Gallery(buildCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.repos, c.loaded, c.valid = repos, c.now(), true
		c.mu.Unlock()
		return repos, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]types.Repo), nil
	}
}

func (c *Cache) fresh() ([]types.Repo, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || c.now().Sub(c.loaded) >= c.ttl {
		return nil, false
	}
	return c.repos, true
}
