package details

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch, which outlives any single caller's context
const fetchTimeout = 30 * time.Second

// Result is what the details view renders
type Result struct {
	Details *domain.MovieDetails
	// Stale is set when Details came from the cache because the refresh failed
	Stale bool
	// ErrorMessage is set when there is nothing to show
	ErrorMessage string
}

// Loader implements the cache-then-network details workflow
type Loader struct {
	client domain.DetailsClient
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
}

// NewLoader creates a loader
func NewLoader(client domain.DetailsClient, cache *Cache, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, cache: cache, logger: logger}
}

// Load serves id. A cached record is handed to onCached (if non-nil) before the network
// refresh starts. A fresh record overwrites the cache and clears staleness; a failed
// refresh falls back to the cached record marked Stale, or to an error message.
// Concurrent loads of the same id share one request; cancelling one caller leaves
// the request running for the others.
func (l *Loader) Load(ctx context.Context, id string, onCached func(*domain.MovieDetails)) Result {
	cached, hasCached := l.cache.Get(id)
	if hasCached && onCached != nil {
		onCached(cached)
	}

	ch := l.group.DoChan(id, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		d, err := l.client.Details(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrNotFound
		}
		l.cache.Put(id, *d)
		return d, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return Result{Details: cached}
	}
	if ctx.Err() != nil {
		return Result{Details: cached}
	}
	v, err, shared := res.Val, res.Err, res.Shared

	if err == nil {
		d := *v.(*domain.MovieDetails)
		l.logger.Debug("details loaded", "id", id, "shared", shared)
		return Result{Details: &d}
	}

	l.logger.Warn("details refresh failed", "id", id, "cached", hasCached, "error", err)
	if hasCached {
		return Result{Details: cached, Stale: true}
	}
	if errors.Is(err, domain.ErrRateLimited) {
		return Result{ErrorMessage: domain.MsgRateLimited}
	}
	return Result{ErrorMessage: domain.MsgFailedToLoad}
}
