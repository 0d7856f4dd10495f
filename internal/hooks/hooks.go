// Package hooks provides the before/after notification points fired
// around every balance mutation. Before-listeners receive a mutable
// mutation they may rewrite or cancel; after-listeners receive the
// final, as-committed values.
package hooks

import (
	"context"

	"github.com/playforge/economy/internal/domain"
)

// Op tags the mutating operation a hook fires for.
type Op string

// Mutating operations.
const (
	OpSet      Op = "set"
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpTransfer Op = "transfer"
)

// Mutation carries the inputs of a pending balance mutation.
// ReceiverUUID, Tax and Received are set for transfers only.
type Mutation struct {
	Op           Op
	UUID         string
	CurrencyType string
	Amount       int64
	ReceiverUUID string
	Tax          int64
	Received     int64
	Reason       domain.Reason

	cancelled bool
}

// Cancel vetoes the mutation; no storage write will happen.
func (m *Mutation) Cancel() { m.cancelled = true }

// Cancelled reports whether a listener vetoed the mutation.
func (m *Mutation) Cancelled() bool { return m.cancelled }

// BeforeFunc is called with a mutable mutation before any storage write.
type BeforeFunc func(ctx context.Context, m *Mutation)

// AfterFunc is called with the committed mutation values.
type AfterFunc func(ctx context.Context, m Mutation)

// Ring is a synchronous listener chain. Listeners must be registered
// before the ledger starts serving; registration is not safe for
// concurrent use with Run* calls. Listeners must not re-enter the same
// balance row synchronously.
type Ring struct {
	before []BeforeFunc
	after  []AfterFunc
}

// NewRing returns an empty listener chain.
func NewRing() *Ring { return &Ring{} }

// Before registers a cancellable pre-mutation listener.
func (r *Ring) Before(fn BeforeFunc) { r.before = append(r.before, fn) }

// After registers a post-commit listener.
func (r *Ring) After(fn AfterFunc) { r.after = append(r.after, fn) }

// RunBefore invokes the before-listeners in registration order and
// reports whether the mutation may proceed. The chain stops at the
// first cancellation.
func (r *Ring) RunBefore(ctx context.Context, m *Mutation) bool {
	for _, fn := range r.before {
		fn(ctx, m)

		if m.cancelled {
			return false
		}
	}

	return true
}

// RunAfter invokes the after-listeners with a copy of the committed values.
func (r *Ring) RunAfter(ctx context.Context, m Mutation) {
	for _, fn := range r.after {
		fn(ctx, m)
	}
}
