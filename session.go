package jarust

import (
	"context"
	"sync"
	"time"

	"github.com/jarust-go/jarust/internal/router"
	"github.com/jarust-go/jarust/jaerror"
	"github.com/jarust-go/jarust/japrotocol"
)

// Session holds a server-assigned id, a back-reference to its connection,
// and a mapping handle-id -> handle (§3's Session entity). Its id never
// changes; attach on a destroyed session fails with SessionNotFound.
type Session struct {
	id   uint64
	conn *Connection

	mu        sync.Mutex
	handles   map[uint64]*Handle
	watcher   watcherHandle
	destroyed bool

	// events is the relayed session-level subroute (§2: "the session's
	// subroute receives frames addressed to the session with no
	// handle"): a session-scoped event with no sender, e.g. a
	// session-wide error notification. Closed when the session is
	// destroyed and its route is removed.
	events chan japrotocol.Frame

	keepAliveCancel context.CancelFunc
}

// Events returns the channel of frames addressed to this session with no
// specific handle. It is closed once the session is destroyed.
func (s *Session) Events() <-chan japrotocol.Frame { return s.events }

// watcherHandle is the narrow view of transport.SessionWatcher a session
// needs to stop its own long-poll task; kept as a locally-declared
// interface (rather than importing transport here) since only the stop
// half is ever needed after CreateSession has already started it.
type watcherHandle interface {
	StopWatching(sessionID uint64)
}

// ID returns the session's server-assigned id.
func (s *Session) ID() uint64 { return s.id }

func (s *Session) startKeepAlive(intervalSeconds int) {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.keepAliveCancel = cancel
	s.mu.Unlock()

	go s.runKeepAlive(ctx, time.Duration(intervalSeconds)*time.Second)
}

// runKeepAlive fires {janus:"keepalive", session_id} every interval until
// ctx is canceled (session destroyed) or a send fails, per §4.C.5: it
// never invalidates the session on its own, it just logs and exits.
func (s *Session) runKeepAlive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			env := japrotocol.NewEnvelope(japrotocol.VerbKeepAlive).WithSession(s.id)
			if err := s.conn.mux.FireAndForget(ctx, env); err != nil {
				s.conn.cfg.Logger.Warn().Err(err).Uint64("session_id", s.id).Msg("keepalive send failed, stopping")
				return
			}
		}
	}
}

// Attach sends {janus:"attach", plugin}, registers the new handle's route,
// and returns the handle plus a channel of its raw (undecoded) events, per
// §4.D.2. Attaching on a destroyed session fails with a SessionNotFound
// JanusError without going to the wire.
func (s *Session) Attach(ctx context.Context, plugin string, timeout time.Duration) (*Handle, <-chan japrotocol.Frame, error) {
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return nil, nil, &jaerror.JanusError{Code: jaerror.CodeSessionNotFound, Reason: "session destroyed"}
	}

	env := japrotocol.NewEnvelope(japrotocol.VerbAttach).WithSession(s.id).WithPlugin(plugin)
	frame, err := s.conn.mux.WaitForResponse(ctx, env, timeout)
	if err != nil {
		return nil, nil, err
	}
	if frame.Data == nil {
		return nil, nil, jaerror.ErrUnexpectedResponse
	}

	handleID := frame.Data.ID
	rawEvents := s.conn.mux.Router().AddSubroute(router.HandleEnd(s.id, handleID))

	handle := &Handle{
		id:      handleID,
		plugin:  plugin,
		session: s,
		state:   HandleAttached,
	}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		s.conn.mux.Router().RemoveSubroute(router.HandleEnd(s.id, handleID))
		return nil, nil, &jaerror.JanusError{Code: jaerror.CodeSessionNotFound, Reason: "session destroyed"}
	}
	s.handles[handleID] = handle
	s.mu.Unlock()

	eventsOut := make(chan japrotocol.Frame, s.conn.cfg.Capacity)
	go relayFrames(rawEvents, eventsOut)

	return handle, eventsOut, nil
}

// relayFrames forwards everything off an unbounded router subroute onto a
// plain buffered channel, closing the output when the source closes.
func relayFrames(sub interface {
	Recv() (japrotocol.Frame, bool)
}, out chan<- japrotocol.Frame) {
	defer close(out)
	for {
		frame, ok := sub.Recv()
		if !ok {
			return
		}
		out <- frame
	}
}

// Destroy sends {janus:"destroy"}, removes the session from its
// connection, and tears down every attached handle (§4.D.2, §4.D.4: a
// destroyed session drops all its handles, each firing its own Detached
// transition).
func (s *Session) Destroy(ctx context.Context, timeout time.Duration) error {
	env := japrotocol.NewEnvelope(japrotocol.VerbDestroy).WithSession(s.id)
	_, err := s.conn.mux.WaitForResponse(ctx, env, timeout)

	s.destroyLocal()
	s.conn.dropSession(s.id)

	return err
}

// destroyLocal tears down local state (keep-alive, watcher, handles,
// routes) without talking to the wire; used both by Destroy and by the
// owning connection's own Destroy.
func (s *Session) destroyLocal() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	if s.keepAliveCancel != nil {
		s.keepAliveCancel()
	}
	watcher := s.watcher
	handles := make([]*Handle, 0, len(s.handles))
	for _, h := range s.handles {
		handles = append(handles, h)
	}
	s.handles = nil
	s.mu.Unlock()

	if watcher != nil {
		watcher.StopWatching(s.id)
	}

	for _, h := range handles {
		h.detachLocal(detachBySession)
	}

	s.conn.mux.Router().RemoveSubroute(router.SessionEnd(s.id))
}

func (s *Session) dropHandle(id uint64) {
	s.mu.Lock()
	delete(s.handles, id)
	s.mu.Unlock()
}
