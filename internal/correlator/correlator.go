// Package correlator implements the transaction correlator (§4.C.2): a
// per-connection registry of which transaction ids are outstanding, and
// the ack-coalescing rule that lets wait-for-response swallow an interim
// ack and keep waiting for the terminal frame.
//
// The actual wait/deliver mechanism is napmap (component B, §2's
// "response-wait primitive used by the plugin surface"): a transaction id
// is the key, the eventually-arriving frame (or poisoning error) is the
// value, and Dispatch's job is exactly one Insert per resolved
// transaction. The correlator itself only tracks the thin bit of
// metadata napmap has no notion of — which of WaitAck/WaitResponse a
// pending transaction is waiting for, so Dispatch can decide whether an
// ack resolves it or gets swallowed.
package correlator

import (
	"context"
	"sync"

	"github.com/jarust-go/jarust/japrotocol"
	"github.com/jarust-go/jarust/napmap"
)

// Wait distinguishes the two request primitives that register a slot.
// Fire-and-forget never calls Register at all.
type Wait int

const (
	// WaitAck resolves on the first frame carrying the transaction,
	// whatever its kind.
	WaitAck Wait = iota
	// WaitResponse resolves only on a terminal frame (success, event,
	// error); interim acks are swallowed and the wait continues.
	WaitResponse
)

// Result is what a registered slot eventually receives: either a frame or
// a poisoning error (transport closed).
type Result struct {
	Frame japrotocol.Frame
	Err   error
}

// Correlator is the transaction registry. The zero value is not usable;
// construct with New.
type Correlator struct {
	nap *napmap.NapMap[string, Result]

	mu      sync.Mutex
	kinds   map[string]Wait
	cancels map[string]context.CancelFunc
}

// New returns an empty correlator whose napmap is bounded to capacity
// resident (resolved) transactions, per §6's "capacity" config field.
func New(capacity int) *Correlator {
	return &Correlator{
		nap:     napmap.New[string, Result](capacity),
		kinds:   make(map[string]Wait),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Register records txn as outstanding with the given wait kind and
// returns the channel the caller should await: the result of napmap's
// Get(txn), wrapped in the external deadline §4.B's contract requires,
// delivered asynchronously so the caller can select it against a timeout
// or ctx.Done() alongside it.
func (c *Correlator) Register(txn string, kind Wait) <-chan Result {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.kinds[txn] = kind
	c.cancels[txn] = cancel
	c.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		if v, ok := c.nap.GetContext(ctx, txn); ok {
			out <- v
		}
	}()
	return out
}

// Deregister removes txn's pending-wait bookkeeping and cancels its
// napmap wait, used when a caller's context is canceled or its deadline
// elapses (§5 "Cancellation") so the Register goroutine above does not
// block forever waiting on a transaction nothing will ever complete.
func (c *Correlator) Deregister(txn string) {
	c.mu.Lock()
	delete(c.kinds, txn)
	cancel, ok := c.cancels[txn]
	delete(c.cancels, txn)
	c.mu.Unlock()

	if ok {
		cancel()
	}
}

// Dispatch is called by the receive loop for every inbound frame that
// carries a transaction id. It returns true if the frame was consumed by
// the correlator (either because it completed a pending transaction, or
// because it was an interim ack being swallowed for a wait-for-response)
// and should not also be routed by the router.
func (c *Correlator) Dispatch(frame japrotocol.Frame) bool {
	if frame.Transaction == "" {
		return false
	}

	c.mu.Lock()
	kind, ok := c.kinds[frame.Transaction]
	if !ok {
		c.mu.Unlock()
		return false
	}

	terminal := frame.Janus.IsTerminal()
	if kind == WaitAck || terminal {
		delete(c.kinds, frame.Transaction)
		delete(c.cancels, frame.Transaction)
		c.mu.Unlock()
		c.nap.Insert(frame.Transaction, Result{Frame: frame})
		return true
	}
	c.mu.Unlock()
	// WaitResponse + non-terminal (an ack): swallow it, keep waiting.
	return true
}

// PoisonAll completes every outstanding transaction with err (transport
// closure, §4.D.1, §7) and clears the pending-wait bookkeeping.
func (c *Correlator) PoisonAll(err error) {
	c.mu.Lock()
	txns := make([]string, 0, len(c.kinds))
	for txn := range c.kinds {
		txns = append(txns, txn)
	}
	c.kinds = make(map[string]Wait)
	c.cancels = make(map[string]context.CancelFunc)
	c.mu.Unlock()

	for _, txn := range txns {
		c.nap.Insert(txn, Result{Err: err})
	}
}

// Len reports the number of outstanding (not yet resolved) transactions.
// Useful for tests.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.kinds)
}
