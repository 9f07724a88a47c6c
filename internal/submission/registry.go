package submission

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/golden-profile/internal/comment"
)

// ErrUnknownBoard is returned for a board id that was never issued or has expired.
var ErrUnknownBoard = errors.New("page expired, reload to comment")

// DefaultSlots are the carousel photos, in display order.
var DefaultSlots = []string{"cute", "lazy", "christmas"}

// Option configures a Boards registry.
type Option func(*Boards)

// WithOnPosted registers a callback run after every saved comment.
func WithOnPosted(fn func(*comment.Comment)) Option {
	return func(r *Boards) { r.onPosted = fn }
}

// WithSlots overrides the slot ids each new board starts with.
func WithSlots(ids ...string) Option {
	return func(r *Boards) { r.slots = ids }
}

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Boards) { r.now = now }
}

// Boards issues one Board per page view and expires idle ones.
type Boards struct {
	gateway  comment.Gateway
	ttl      time.Duration
	slots    []string
	onPosted func(*comment.Comment)
	now      func() time.Time

	mu     sync.Mutex
	boards map[string]*Board
}

// NewBoards creates a registry whose boards write through g and expire
// after ttl without activity.
func NewBoards(g comment.Gateway, ttl time.Duration, opts ...Option) *Boards {
	r := &Boards{
		gateway: g,
		ttl:     ttl,
		slots:   DefaultSlots,
		now:     time.Now,
		boards:  make(map[string]*Board),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New issues a fresh board and returns its id.
func (r *Boards) New() (string, *Board) {
	b := NewBoard(r.gateway, r.slots)
	b.onPosted = r.onPosted
	b.now = r.now
	b.touched = r.now()

	id := uuid.NewString()
	r.mu.Lock()
	r.boards[id] = b
	r.mu.Unlock()
	return id, b
}

// Get returns the board with the given id and marks it active.
func (r *Boards) Get(id string) (*Board, error) {
	r.mu.Lock()
	b, ok := r.boards[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrUnknownBoard
	}

	b.mu.Lock()
	b.touched = r.now()
	b.mu.Unlock()
	return b, nil
}

// Len returns the number of live boards.
func (r *Boards) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}

// Discard closes a board. A submission still running for it completes
// but its result is not applied.
func (r *Boards) Discard(id string) {
	r.mu.Lock()
	b, ok := r.boards[id]
	delete(r.boards, id)
	r.mu.Unlock()
	if ok {
		b.close()
	}
}

// Prune discards boards idle for longer than the ttl and returns how many
// were removed. Boards with a submission running are kept.
func (r *Boards) Prune() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*Board
	for id, b := range r.boards {
		if b.idleSince().Before(cutoff) && !b.busy() {
			expired = append(expired, b)
			delete(r.boards, id)
		}
	}
	r.mu.Unlock()

	for _, b := range expired {
		b.close()
	}
	return len(expired)
}
