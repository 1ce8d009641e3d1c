package services

import (
	"context"
	"sync"
)

// OpToken is an opaque handle bound to one logical operation. A later
// operation's token invalidates the predecessor's in-flight work.
// Tokens are never reused.
type OpToken struct {
	id uint64
}

// Lifecycle enforces last-submitted-wins semantics: each new search
// submission, mode change, or page turn begins a new operation, which
// cancels the context of the previous one. A response arriving for a
// superseded token is discarded without updating any cached state and
// without being treated as an error.
type Lifecycle struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewLifecycle creates a lifecycle controller.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Begin starts a new logical operation: the previous operation's
// context is cancelled and a fresh derived context plus token are
// returned.
func (l *Lifecycle) Begin(ctx context.Context) (context.Context, OpToken) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	opCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.seq++
	return opCtx, OpToken{id: l.seq}
}

// Current reports whether the token still identifies the latest
// operation. Results carried by stale tokens must be dropped.
func (l *Lifecycle) Current(tok OpToken) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return tok.id == l.seq
}

// CommitIfCurrent runs publish only when the token still identifies
// the latest operation. Check and publication happen in one critical
// section, so a newer submission beginning between them cannot be
// overwritten by a stale result.
func (l *Lifecycle) CommitIfCurrent(tok OpToken, publish func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tok.id != l.seq {
		return false
	}
	publish()
	return true
}

// Close cancels any outstanding operation. Used on component teardown.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
