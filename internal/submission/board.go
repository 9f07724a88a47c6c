// Package submission tracks per-photo comment drafts and drives a draft
// through validation and persistence.
package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/metrics"
)

var (
	// ErrInFlight is returned when a slot already has a submission running.
	ErrInFlight = errors.New("a comment for this photo is already being posted")

	// ErrAlreadyPosted is returned when a slot has already posted its comment.
	ErrAlreadyPosted = errors.New("a comment for this photo was already posted")

	// ErrUnknownSlot is returned for a slot id the board does not have.
	ErrUnknownSlot = errors.New("unknown photo")
)

// State is the position of a slot in the submission state machine.
type State int

// Idle -> Validating -> Submitting -> Succeeded. A failed insert goes back to Idle.
const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Slot is the client-side state for one carousel photo.
type Slot struct {
	ID        string
	Draft     comment.Input
	State     State
	Saved     *comment.Comment
	Liked     bool
	LastError string
}

// Posted reports whether the slot's comment was saved.
func (s Slot) Posted() bool {
	return s.State == Succeeded
}

// Pending reports whether a submission is running for the slot.
func (s Slot) Pending() bool {
	return s.State == Validating || s.State == Submitting
}

// Board holds the slot state for one page view.
type Board struct {
	gateway  comment.Gateway
	onPosted func(*comment.Comment)
	now      func() time.Time

	mu      sync.Mutex
	slots   map[string]*Slot
	order   []string
	touched time.Time
	closed  bool
}

// NewBoard creates a board with one idle slot per id.
func NewBoard(g comment.Gateway, slotIDs []string) *Board {
	b := &Board{
		gateway: g,
		now:     time.Now,
		slots:   make(map[string]*Slot, len(slotIDs)),
	}
	b.touched = b.now()
	for _, id := range slotIDs {
		if _, ok := b.slots[id]; ok {
			continue
		}
		b.slots[id] = &Slot{ID: id}
		b.order = append(b.order, id)
	}
	return b
}

// Slot returns a copy of the slot's state.
func (b *Board) Slot(id string) (Slot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.slots[id]
	if !ok {
		return Slot{}, ErrUnknownSlot
	}
	return *s, nil
}

// Slots returns copies of all slots in board order.
func (b *Board) Slots() []Slot {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Slot, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.slots[id])
	}
	return out
}

// SetDraft stores draft input for a slot without submitting it.
func (b *Board) SetDraft(id string, draft comment.Input) (Slot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.slots[id]
	if !ok {
		return Slot{}, ErrUnknownSlot
	}
	if s.State == Idle {
		s.Draft = draft
	}
	b.touched = b.now()
	return *s, nil
}

// Like records a local like acknowledgment. Likes are never persisted.
func (b *Board) Like(id string) (Slot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.slots[id]
	if !ok {
		return Slot{}, ErrUnknownSlot
	}
	if !s.Liked {
		s.Liked = true
		metrics.LikesTotal.Inc()
	}
	b.touched = b.now()
	return *s, nil
}

// Submit validates raw and, when it passes, inserts it through the gateway.
// At most one submission runs per slot; the draft is kept on any failure and
// cleared once the comment is saved.
func (b *Board) Submit(ctx context.Context, id string, raw comment.Input) Outcome {
	b.mu.Lock()
	s, ok := b.slots[id]
	switch {
	case !ok:
		b.mu.Unlock()
		return Outcome{Err: ErrUnknownSlot}
	case s.Pending():
		snap := *s
		b.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("in_flight").Inc()
		return Outcome{Slot: snap, Err: ErrInFlight}
	case s.Posted():
		snap := *s
		b.mu.Unlock()
		return Outcome{Slot: snap, Err: ErrAlreadyPosted}
	}
	s.Draft = raw
	s.State = Validating
	s.LastError = ""
	b.touched = b.now()
	b.mu.Unlock()

	in, err := comment.Validate(raw)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return b.finish(id, nil, err)
	}

	b.mu.Lock()
	s.State = Submitting
	b.mu.Unlock()

	c, err := b.gateway.Insert(ctx, in)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return b.finish(id, nil, err)
	}

	metrics.SubmissionsTotal.WithLabelValues("posted").Inc()
	out := b.finish(id, c, nil)
	if b.onPosted != nil {
		b.onPosted(c)
	}
	return out
}

// finish applies the result of a submission unless the board was discarded
// while the insert was running.
func (b *Board) finish(id string, c *comment.Comment, err error) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.slots[id]
	if b.closed {
		snap := *s
		snap.State = Idle
		if err == nil {
			snap.State = Succeeded
			snap.Saved = c
		}
		return Outcome{Slot: snap, Comment: c, Err: err}
	}

	if err != nil {
		s.State = Idle
		s.LastError = err.Error()
	} else {
		s.State = Succeeded
		s.Saved = c
		s.Draft = comment.Input{}
		s.LastError = ""
	}
	b.touched = b.now()
	return Outcome{Slot: *s, Comment: c, Err: err}
}

// close marks the board discarded so late results are not applied.
func (b *Board) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *Board) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.touched
}

func (b *Board) busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.slots {
		if s.Pending() {
			return true
		}
	}
	return false
}
