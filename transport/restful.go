package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// longPollMaxEvents is the maxev query parameter on the long-poll GET,
// matching §6's endpoint table (GET .../{session}?maxev=N&rid=...).
const longPollMaxEvents = 10

// Restful is the polled request/response transport variant (§4.A). A
// single Restful instance backs one connection: plain requests go out as
// POSTs against the base path, and every session created over this
// connection gets its own long-poll goroutine feeding the same inbound
// frame channel.
type Restful struct {
	baseURL    string
	httpClient *http.Client
	frames     chan []byte

	mu      sync.Mutex
	cancels map[uint64]context.CancelFunc
	closed  bool

	logger zerolog.Logger
}

// NewRestful builds a long-poll transport rooted at baseURL (e.g.
// "http://localhost:8088/janus"). Plain POSTs against baseURL handle
// info/create; WatchSession must be called once per session to start its
// long-poll loop, per §4.A ("when a session is created, it MUST spawn a
// polling task").
func NewRestful(baseURL string, logger zerolog.Logger) *Restful {
	return &Restful{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 35 * time.Second},
		frames:     make(chan []byte, 32),
		cancels:    make(map[uint64]context.CancelFunc),
		logger:     logger,
	}
}

// Send implements transport.Transport: POST data to the base path. Higher
// layers target session/handle scoped URLs by including session_id and
// handle_id in the JSON body, matching how a restful Janus transport is
// actually addressed (the core doesn't need to know the URL shape, only
// that sends go "somewhere the server expects").
func (r *Restful) Send(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	select {
	case r.frames <- body:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Receive implements transport.Transport.
func (r *Restful) Receive() <-chan []byte {
	return r.frames
}

// Close implements transport.Transport: stop every session's long-poll
// loop and close the shared frame channel.
func (r *Restful) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.mu.Unlock()
	close(r.frames)
	return nil
}

// WatchSession spawns the long-poll goroutine for sessionID. It
// terminates when ctx is canceled (normally by StopWatching, called from
// session destruction) or when a GET fails, per §4.A: "terminates when
// the session is destroyed or the transport errors."
func (r *Restful) WatchSession(ctx context.Context, sessionID uint64) error {
	watchCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		return fmt.Errorf("jarust/transport: restful transport already closed")
	}
	r.cancels[sessionID] = cancel
	r.mu.Unlock()

	go r.pollLoop(watchCtx, sessionID)
	return nil
}

// StopWatching cancels sessionID's long-poll loop, called on session
// destruction.
func (r *Restful) StopWatching(sessionID uint64) {
	r.mu.Lock()
	cancel, ok := r.cancels[sessionID]
	if ok {
		delete(r.cancels, sessionID)
	}
	r.mu.Unlock()
	if ok {
		cancel()
	}
}

func (r *Restful) pollLoop(ctx context.Context, sessionID uint64) {
	url := fmt.Sprintf("%s/%d?maxev=%d", r.baseURL, sessionID, longPollMaxEvents)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			r.logger.Error().Err(err).Uint64("session_id", sessionID).Msg("failed to build long-poll request")
			return
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Warn().Err(err).Uint64("session_id", sessionID).Msg("long-poll request failed")
			return
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			r.logger.Warn().Err(err).Uint64("session_id", sessionID).Msg("long-poll read failed")
			return
		}

		if len(body) > 0 {
			select {
			case r.frames <- body:
			case <-ctx.Done():
				return
			}
		}
	}
}
