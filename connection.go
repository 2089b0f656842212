package jarust

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jarust-go/jarust/internal/jamux"
	"github.com/jarust-go/jarust/internal/router"
	"github.com/jarust-go/jarust/jaconfig"
	"github.com/jarust-go/jarust/jaerror"
	"github.com/jarust-go/jarust/japrotocol"
	"github.com/jarust-go/jarust/transport"
)

// decodeRaw unmarshals a frame's untouched wire bytes into v, used for
// reply shapes (server info, plugin payloads) the core itself does not
// promote onto japrotocol.Frame.
func decodeRaw(raw json.RawMessage, v interface{}) error {
	return json.Unmarshal(raw, v)
}

// ServerInfo is the decoded reply to {"janus":"info"}.
type ServerInfo struct {
	ServerName string `json:"name"`
	Version    int    `json:"version"`
	VersionStr string `json:"version_string"`
	Author     string `json:"author"`
}

// Connection owns one transport instance, one receive pump, one
// transaction generator, one router keyed "root/…", and a mapping
// session-id -> session, per §3's Connection entity.
type Connection struct {
	cfg       jaconfig.Config
	transport transport.Transport
	mux       *jamux.Mux

	mu       sync.Mutex
	sessions map[uint64]*Session
	closed   bool

	group      *errgroup.Group
	cancelPump context.CancelFunc
}

// Connect opens a connection over tr using cfg, and spawns the receive
// pump bound to ctx: canceling ctx tears the pump down exactly as Destroy
// does, in addition to the lifetime Destroy controls explicitly. The
// caller owns tr's lifetime through Connection.Destroy.
//
// Mirrors the teacher's Connect(ctx, wsURL, secret): the receive pump is
// started via an errgroup.Group so a hard transport failure propagates
// as an error callers can observe with Wait, instead of being silently
// swallowed.
func Connect(ctx context.Context, cfg jaconfig.Config, tr transport.Transport) (*Connection, error) {
	rt := router.New(cfg.ServerRoot, cfg.Logger)
	mux := jamux.New(tr, rt, cfg.TransactionGenerator, cfg.APISecret, cfg.Logger, cfg.Capacity)

	pumpCtx, cancel := context.WithCancel(ctx)
	group, pumpCtx := errgroup.WithContext(pumpCtx)

	conn := &Connection{
		cfg:        cfg,
		transport:  tr,
		mux:        mux,
		sessions:   make(map[uint64]*Session),
		group:      group,
		cancelPump: cancel,
	}

	group.Go(func() error { return mux.Run(pumpCtx) })

	return conn, nil
}

// Wait blocks until the receive pump task ends and returns its error, the
// Go analogue of the teacher's WaitForGroup helper.
func (c *Connection) Wait() error {
	return c.group.Wait()
}

// ServerInfo sends {"janus":"info"} and returns the decoded reply
// (§4.D.1).
func (c *Connection) ServerInfo(ctx context.Context, timeout time.Duration) (*ServerInfo, error) {
	// info replies with a single server_info frame carrying the request's
	// transaction; there is no separate ack+response pair to coalesce, so
	// this is a wait-for-ack request.
	env := japrotocol.NewEnvelope(japrotocol.VerbInfo)
	frame, err := c.mux.WaitForAck(ctx, env, timeout)
	if err != nil {
		return nil, err
	}
	var info ServerInfo
	if err := decodeRaw(frame.Raw, &info); err != nil {
		return nil, fmt.Errorf("jarust: decode server info: %w", err)
	}
	return &info, nil
}

// CreateSession sends {"janus":"create"}, registers the new session's
// route, and spawns its keep-alive task (and, for restful transports, its
// long-poll task), per §4.D.1.
func (c *Connection) CreateSession(ctx context.Context, keepaliveSeconds int, timeout time.Duration) (*Session, error) {
	env := japrotocol.NewEnvelope(japrotocol.VerbCreate)
	frame, err := c.mux.WaitForResponse(ctx, env, timeout)
	if err != nil {
		return nil, err
	}
	if frame.Data == nil {
		return nil, jaerror.ErrUnexpectedResponse
	}

	sessionID := frame.Data.ID
	rawEvents := c.mux.Router().AddSubroute(router.SessionEnd(sessionID))

	events := make(chan japrotocol.Frame, c.cfg.Capacity)
	go relayFrames(rawEvents, events)

	session := &Session{
		id:      sessionID,
		conn:    c,
		handles: make(map[uint64]*Handle),
		events:  events,
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.mux.Router().RemoveSubroute(router.SessionEnd(sessionID))
		return nil, jaerror.ErrTransportNotOpened
	}
	c.sessions[sessionID] = session
	c.mu.Unlock()

	if keepaliveSeconds > 0 {
		session.startKeepAlive(keepaliveSeconds)
	}

	if watcher, ok := c.transport.(transport.SessionWatcher); ok {
		if err := watcher.WatchSession(ctx, sessionID); err != nil {
			c.cfg.Logger.Warn().Err(err).Uint64("session_id", sessionID).Msg("failed to start long-poll watch")
		} else {
			session.watcher = watcher
		}
	}

	return session, nil
}

// Destroy cancels all owned tasks, closes the transport, and poisons
// every outstanding slot with ErrTransportNotOpened (§4.D.1, §7). It is
// idempotent.
func (c *Connection) Destroy() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	sessions := make([]*Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.sessions = nil
	c.mu.Unlock()

	for _, s := range sessions {
		s.destroyLocal()
	}

	c.cancelPump()
	err := c.transport.Close()
	_ = c.group.Wait()
	return err
}

func (c *Connection) dropSession(id uint64) {
	c.mu.Lock()
	delete(c.sessions, id)
	c.mu.Unlock()
}
