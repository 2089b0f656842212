// Package jamux is the multiplex interface, component C of the design:
// it owns the transport, runs the single receive loop per connection,
// and implements the three request primitives (fire-and-forget,
// wait-for-ack, wait-for-response) on top of the correlator and router.
package jamux

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jarust-go/jarust/internal/correlator"
	"github.com/jarust-go/jarust/internal/router"
	"github.com/jarust-go/jarust/jaerror"
	"github.com/jarust-go/jarust/japrotocol"
	"github.com/jarust-go/jarust/transport"
)

// Mux is the multiplex interface. One Mux per Connection.
type Mux struct {
	transport transport.Transport
	gen       transport.TransactionGenerator
	router    *router.Router
	corr      *correlator.Correlator
	logger    zerolog.Logger

	apisecret string

	// sendMu serializes the transport's send path per §5: "at most one
	// send is in flight at a time to preserve message framing."
	sendMu sync.Mutex

	closeOnce sync.Once
}

// New builds a Mux over an already-connected transport. capacity bounds
// the correlator's napmap (§6's "capacity" config field).
func New(tr transport.Transport, rt *router.Router, gen transport.TransactionGenerator, apisecret string, logger zerolog.Logger, capacity int) *Mux {
	return &Mux{
		transport: tr,
		gen:       gen,
		router:    rt,
		corr:      correlator.New(capacity),
		apisecret: apisecret,
		logger:    logger,
	}
}

// NextTransaction allocates a fresh transaction id from the injected
// generator.
func (m *Mux) NextTransaction() string {
	return m.gen.Generate()
}

// Router exposes the router for connection/session/handle lifecycle code
// that needs to add or remove subroutes.
func (m *Mux) Router() *router.Router { return m.router }

func (m *Mux) send(ctx context.Context, env japrotocol.Envelope) error {
	env.WithAPISecret(m.apisecret)

	data, err := json.Marshal(map[string]interface{}(env))
	if err != nil {
		return fmt.Errorf("jamux: marshal envelope: %w", err)
	}

	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	if err := m.transport.Send(ctx, data); err != nil {
		return fmt.Errorf("%w: %v", jaerror.ErrSendError, err)
	}
	return nil
}

// FireAndForget sends env without registering a correlator slot and
// returns once the transport send completes (§4.C.2).
func (m *Mux) FireAndForget(ctx context.Context, env japrotocol.Envelope) error {
	env["transaction"] = m.NextTransaction()
	return m.send(ctx, env)
}

// WaitForAck sends env, registers a slot, and resolves on the first frame
// carrying this transaction, ignoring later frames for the same
// transaction (they become routed events if they address a handle).
func (m *Mux) WaitForAck(ctx context.Context, env japrotocol.Envelope, timeout time.Duration) (japrotocol.Frame, error) {
	return m.waitFor(ctx, env, timeout, correlator.WaitAck)
}

// WaitForResponse sends env, registers a slot, and resolves on the first
// terminal frame (success, plugin-result event, or error) for this
// transaction; an interim ack is swallowed and the wait continues.
func (m *Mux) WaitForResponse(ctx context.Context, env japrotocol.Envelope, timeout time.Duration) (japrotocol.Frame, error) {
	return m.waitFor(ctx, env, timeout, correlator.WaitResponse)
}

func (m *Mux) waitFor(ctx context.Context, env japrotocol.Envelope, timeout time.Duration, kind correlator.Wait) (japrotocol.Frame, error) {
	txn := m.NextTransaction()
	env["transaction"] = txn

	ch := m.corr.Register(txn, kind)

	if err := m.send(ctx, env); err != nil {
		m.corr.Deregister(txn)
		return japrotocol.Frame{}, err
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return japrotocol.Frame{}, res.Err
		}
		if res.Frame.Janus == japrotocol.KindError {
			return japrotocol.Frame{}, frameToJanusError(res.Frame)
		}
		return res.Frame, nil
	case <-time.After(timeout):
		m.corr.Deregister(txn)
		return japrotocol.Frame{}, jaerror.ErrRequestTimeout
	case <-ctx.Done():
		m.corr.Deregister(txn)
		return japrotocol.Frame{}, ctx.Err()
	}
}

func frameToJanusError(frame japrotocol.Frame) error {
	if frame.Err == nil {
		return jaerror.ErrUnexpectedResponse
	}
	return &jaerror.JanusError{
		Code:   jaerror.JanusCodeFromInt(frame.Err.Code),
		Reason: frame.Err.Reason,
	}
}

// Run is the single receive-loop task per connection (§4.C.4, §5). It
// consumes the transport's inbound channel, classifying and routing each
// frame, and returns once the transport's channel closes or ctx is done;
// either way every outstanding request fails with ErrTransportNotOpened.
func (m *Mux) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			m.corr.PoisonAll(jaerror.ErrTransportNotOpened)
			return ctx.Err()
		case data, ok := <-m.transport.Receive():
			if !ok {
				m.corr.PoisonAll(jaerror.ErrTransportNotOpened)
				return jaerror.ErrTransportNotOpened
			}
			m.handleFrame(data)
		}
	}
}

func (m *Mux) handleFrame(data []byte) {
	frame, err := japrotocol.ParseFrame(data)
	if err != nil {
		m.logger.Warn().Err(err).Msg("dropping frame: failed to decode")
		return
	}

	if m.corr.Dispatch(frame) {
		// Consumed by an outstanding request primitive: either delivered to
		// the awaiting caller or swallowed as an interim ack. Either way it
		// does not also get routed to a subscriber channel.
		return
	}

	path, routable := m.router.PathOfFrame(frame)
	if !routable {
		m.logger.Debug().Str("janus", string(frame.Janus)).Msg("dropping connection-scoped frame with no matching transaction")
		return
	}

	// §4.C.4: only plugin/handle-generic/session-level events route; an
	// uncorrelated ack, keepalive echo, success, or server_info has no
	// awaiting slot (Dispatch already returned false above) and no
	// subscriber to deliver to, so it is dropped here rather than
	// published — a keepalive ack in particular would otherwise pile up
	// forever in a session route nothing drains.
	if !frame.Janus.IsRoutable() {
		m.logger.Debug().Str("janus", string(frame.Janus)).Str("path", path).Msg("dropping non-routable frame with no matching transaction")
		return
	}

	m.router.Publish(path, frame)

	// A server-sent detached is the handle's terminal event: close its
	// route once the frame is queued so the subscriber sees it last.
	if frame.Janus == japrotocol.KindDetached && frame.HasHandle() {
		m.router.RemoveSubroute(router.HandleEnd(frame.Session, frame.Sender))
	}
}
