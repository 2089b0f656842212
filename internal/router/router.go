// Package router implements the subroute table the receive loop publishes
// onto: connection-level "root", session-level "root/{session}" and
// handle-level "root/{session}/{handle}" paths, each backed by an
// unbounded sink. Grounded on the original's jarust_interface
// websocket/router.rs, translated from its tokio RwLock<HashMap<...>>
// into a single coarse-grained lock per §5's "each guarded by a single
// coarse-grained lock" requirement.
package router

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jarust-go/jarust/internal/unbounded"
	"github.com/jarust-go/jarust/japrotocol"
)

// Router maps route paths to unbounded subscriber channels.
type Router struct {
	rootPath string
	logger   zerolog.Logger

	mu     sync.RWMutex
	routes map[string]*unbounded.Chan[japrotocol.Frame]
}

// New builds a router rooted at rootPath (the connection's server_root,
// e.g. "janus").
func New(rootPath string, logger zerolog.Logger) *Router {
	return &Router{
		rootPath: rootPath,
		logger:   logger,
		routes:   make(map[string]*unbounded.Chan[japrotocol.Frame]),
	}
}

// AddSubroute registers an unbounded receive channel at root/end and
// returns it.
func (r *Router) AddSubroute(end string) *unbounded.Chan[japrotocol.Frame] {
	path := r.rootPath
	if end != "" {
		path = r.rootPath + "/" + end
	}
	ch := unbounded.New[japrotocol.Frame]()

	r.mu.Lock()
	r.routes[path] = ch
	r.mu.Unlock()

	return ch
}

// RemoveSubroute closes and forgets the channel registered at root/end, if
// any. Called on handle/session destruction.
func (r *Router) RemoveSubroute(end string) {
	path := r.rootPath
	if end != "" {
		path = r.rootPath + "/" + end
	}

	r.mu.Lock()
	ch, ok := r.routes[path]
	delete(r.routes, path)
	r.mu.Unlock()

	if ok {
		ch.Close()
	}
}

// Publish delivers frame on the channel registered at path, if any;
// otherwise it is dropped with a warning trace (§4.C.3).
func (r *Router) Publish(path string, frame japrotocol.Frame) {
	r.mu.RLock()
	ch, ok := r.routes[path]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn().Str("path", path).Msg("dropping frame: no subroute registered")
		return
	}
	ch.Send(frame)
}

// PublishToEnd is Publish's counterpart for callers that only know a
// subroute suffix (as built by SessionEnd/HandleEnd) rather than a full
// path, used to deliver synthetic events (e.g. a handle's terminal
// Detached frame) without reaching into the router's root path.
func (r *Router) PublishToEnd(end string, frame japrotocol.Frame) {
	path := r.rootPath
	if end != "" {
		path = r.rootPath + "/" + end
	}
	r.Publish(path, frame)
}

// PathOfFrame computes "root/{session}" or "root/{session}/{handle}" from
// an inbound frame's session_id/sender, the symmetric counterpart of
// PathOfRequest. Returns "", false for connection-scoped frames (no
// session_id).
func (r *Router) PathOfFrame(frame japrotocol.Frame) (string, bool) {
	if frame.Session == 0 {
		return "", false
	}
	if frame.HasHandle() {
		return fmt.Sprintf("%s/%d/%d", r.rootPath, frame.Session, frame.Sender), true
	}
	return fmt.Sprintf("%s/%d", r.rootPath, frame.Session), true
}

// PathOfRequest is the symmetric helper over an outbound envelope,
// consulted by the ack/response request primitives when they need to
// reason about which subroute a reply would land on.
func (r *Router) PathOfRequest(req map[string]interface{}) (string, bool) {
	sessionID, ok := asUint64(req["session_id"])
	if !ok {
		return "", false
	}
	if handleID, ok := asUint64(req["handle_id"]); ok {
		return fmt.Sprintf("%s/%d/%d", r.rootPath, sessionID, handleID), true
	}
	return fmt.Sprintf("%s/%d", r.rootPath, sessionID), true
}

// SessionEnd builds the subroute suffix for a session-level route.
func SessionEnd(sessionID uint64) string {
	return strconv.FormatUint(sessionID, 10)
}

// HandleEnd builds the subroute suffix for a handle-level route.
func HandleEnd(sessionID, handleID uint64) string {
	return strconv.FormatUint(sessionID, 10) + "/" + strconv.FormatUint(handleID, 10)
}

func asUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int:
		return uint64(n), true
	case int64:
		return uint64(n), true
	case float64:
		return uint64(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
