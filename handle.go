package jarust

import (
	"context"
	"sync"
	"time"

	"github.com/jarust-go/jarust/internal/router"
	"github.com/jarust-go/jarust/japrotocol"
)

// HandleState is the handle's lifecycle state (§4.D.4: Attached ->
// Detached). A hangup leaves the handle Attached (media down, signaling
// still live); only an explicit Detach or a destroyed parent session moves
// it to Detached. A server-sent detached frame is delivered on the
// handle's events and closes that channel, but does not change State.
type HandleState int

const (
	HandleAttached HandleState = iota
	HandleDetached
)

func (s HandleState) String() string {
	if s == HandleDetached {
		return "Detached"
	}
	return "Attached"
}

// detachReason distinguishes why a handle moved to Detached. Reserved for
// callers that want to distinguish an explicit detach from one cascaded
// from a destroyed session; both currently deliver the same synthetic
// event shape.
type detachReason int

const (
	detachExplicit detachReason = iota
	detachBySession
)

// Handle is a client-side endpoint bound to one plugin instance within
// one session (§3). It holds a back-reference to its session (and,
// through it, the connection) sufficient to send on the shared
// transport, never the other way around.
type Handle struct {
	id      uint64
	plugin  string
	session *Session

	mu    sync.Mutex
	state HandleState
}

// ID returns the handle's server-assigned id.
func (h *Handle) ID() uint64 { return h.id }

// Plugin returns the plugin name this handle was attached to.
func (h *Handle) Plugin() string { return h.plugin }

// State returns the handle's current lifecycle state.
func (h *Handle) State() HandleState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Handle) envelope(verb japrotocol.Verb) japrotocol.Envelope {
	return japrotocol.NewEnvelope(verb).WithSession(h.session.id).WithHandle(h.id)
}

// FireAndForget sends body (and optional jsep) with no correlator slot,
// per §4.D.3.
func (h *Handle) FireAndForget(ctx context.Context, body interface{}, jsep interface{}) error {
	env := h.envelope(japrotocol.VerbMessage).WithBody(body).WithJsep(jsep)
	return h.session.conn.mux.FireAndForget(ctx, env)
}

// SendWaitAck sends body (and optional jsep) and resolves on the first
// frame for the allocated transaction, returning that transaction's id
// (§4.D.3).
func (h *Handle) SendWaitAck(ctx context.Context, body interface{}, jsep interface{}, timeout time.Duration) (string, error) {
	env := h.envelope(japrotocol.VerbMessage).WithBody(body).WithJsep(jsep)
	frame, err := h.session.conn.mux.WaitForAck(ctx, env, timeout)
	if err != nil {
		return "", err
	}
	return frame.Transaction, nil
}

// SendWaitResponse sends body (and optional jsep) and resolves on the
// first terminal frame for the allocated transaction (§4.D.3, §4.C.2).
func (h *Handle) SendWaitResponse(ctx context.Context, body interface{}, jsep interface{}, timeout time.Duration) (japrotocol.Frame, error) {
	env := h.envelope(japrotocol.VerbMessage).WithBody(body).WithJsep(jsep)
	return h.session.conn.mux.WaitForResponse(ctx, env, timeout)
}

// Trickle sends a single ICE candidate under "candidate", fire-and-forget:
// Janus does not ack individual trickle candidates.
func (h *Handle) Trickle(ctx context.Context, candidate interface{}) error {
	env := h.envelope(japrotocol.VerbTrickle).WithField("candidate", candidate)
	return h.session.conn.mux.FireAndForget(ctx, env)
}

// TrickleComplete signals end-of-candidates with the documented
// {"completed": true} sentinel.
func (h *Handle) TrickleComplete(ctx context.Context) error {
	env := h.envelope(japrotocol.VerbTrickle).WithField("candidate", map[string]interface{}{"completed": true})
	return h.session.conn.mux.FireAndForget(ctx, env)
}

// Hangup sends {janus:"hangup"} fire-and-forget; per §4.D.4 it leaves the
// handle Attached (media down, signaling still usable) until an explicit
// Detach or server-sent "detached".
func (h *Handle) Hangup(ctx context.Context) error {
	env := h.envelope(japrotocol.VerbHangup)
	return h.session.conn.mux.FireAndForget(ctx, env)
}

// Detach sends {janus:"detach"}, and on a successful reply moves the handle
// to Detached, delivers the synthetic terminal Detached event, and closes
// its route (§4.D.2, §4.D.4).
func (h *Handle) Detach(ctx context.Context, timeout time.Duration) error {
	env := h.envelope(japrotocol.VerbDetach)
	_, err := h.session.conn.mux.WaitForResponse(ctx, env, timeout)
	if err != nil {
		return err
	}

	h.detachLocal(detachExplicit)
	h.session.dropHandle(h.id)
	return nil
}

// detachLocal performs the local half of a Detached transition: flips
// state, publishes the synthetic terminal event onto the handle's own
// route (so a still-running plugin adapter observes it), then removes
// the route. Idempotent; called from both Handle.Detach and
// Session.destroyLocal.
func (h *Handle) detachLocal(reason detachReason) {
	h.mu.Lock()
	if h.state == HandleDetached {
		h.mu.Unlock()
		return
	}
	h.state = HandleDetached
	h.mu.Unlock()

	end := router.HandleEnd(h.session.id, h.id)
	synthetic := japrotocol.Frame{
		Janus:   japrotocol.KindDetached,
		Session: h.session.id,
		Sender:  h.id,
	}
	h.session.conn.mux.Router().PublishToEnd(end, synthetic)
	h.session.conn.mux.Router().RemoveSubroute(end)
}
