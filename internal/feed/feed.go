// Package feed keeps a periodically refreshed copy of every comment.
package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/metrics"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 5 * time.Second

const nudgeTimeout = 30 * time.Second

// Status describes the state of the last refresh.
type Status struct {
	Loading   bool
	LastError string
	UpdatedAt time.Time
}

// Feed caches the newest-first comment list read from a gateway.
type Feed struct {
	gateway  comment.Gateway
	interval time.Duration
	log      zerolog.Logger
	group    singleflight.Group

	mu       sync.Mutex
	comments []*comment.Comment
	status   Status
	stopped  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a feed over g. A non-positive interval uses DefaultInterval.
func New(g comment.Gateway, interval time.Duration, log zerolog.Logger) *Feed {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Feed{
		gateway:  g,
		interval: interval,
		log:      log.With().Str("component", "feed").Logger(),
		comments: []*comment.Comment{},
	}
}

// Start loads the feed immediately and then every interval until Stop is
// called or ctx is cancelled. Calling Start on a running feed does nothing.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	if f.done != nil || f.stopped {
		f.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.done = make(chan struct{})
	done := f.done
	f.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		f.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.Refresh(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for the poller to exit. Results that arrive
// after Stop are discarded.
func (f *Feed) Stop() {
	f.mu.Lock()
	f.stopped = true
	cancel, done := f.cancel, f.done
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Refresh queries the gateway now. Concurrent callers share a single
// in-flight query. The returned error is that query's failure, if any.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return nil
	}
	f.status.Loading = true
	f.mu.Unlock()

	_, err, _ := f.group.Do("refresh", func() (any, error) {
		comments, err := f.gateway.QueryAll(ctx)
		f.apply(comments, err)
		return nil, err
	})
	if errors.Is(err, comment.ErrCollectionAbsent) {
		return nil
	}
	return err
}

// Nudge schedules a refresh in the background and returns immediately.
func (f *Feed) Nudge() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), nudgeTimeout)
		defer cancel()
		_ = f.Refresh(ctx)
	}()
}

func (f *Feed) apply(comments []*comment.Comment, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped {
		return
	}
	f.status.Loading = false

	switch {
	case errors.Is(err, comment.ErrCollectionAbsent):
		metrics.FeedRefreshesTotal.WithLabelValues("absent").Inc()
		f.comments = []*comment.Comment{}
		f.status.LastError = ""
		f.status.UpdatedAt = time.Now()
	case err != nil:
		metrics.FeedRefreshesTotal.WithLabelValues("error").Inc()
		f.status.LastError = err.Error()
		f.log.Warn().Err(err).Int("cached", len(f.comments)).Msg("refreshing messages failed, keeping cached list")
		return
	default:
		metrics.FeedRefreshesTotal.WithLabelValues("ok").Inc()
		if comments == nil {
			comments = []*comment.Comment{}
		}
		f.comments = comments
		f.status.LastError = ""
		f.status.UpdatedAt = time.Now()
	}
	metrics.FeedSize.Set(float64(len(f.comments)))
}

// Snapshot returns a copy of the cached list and the current status.
func (f *Feed) Snapshot() ([]*comment.Comment, Status) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*comment.Comment, len(f.comments))
	copy(out, f.comments)
	return out, f.status
}
