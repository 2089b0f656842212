package transport

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
)

// pingInterval matches the teacher's 30-second websocket ping cadence,
// well inside the 60-second keep-alive window Janus's own docs require.
const pingInterval = 30 * time.Second

// Websocket is the bidirectional socket transport variant (§4.A). It
// wraps nhooyr.io/websocket exactly as the teacher's Gateway does:
// subprotocol "janus-protocol", one Write in flight at a time, a
// background goroutine turning inbound frames into a channel.
type Websocket struct {
	conn *websocket.Conn

	sendMu sync.Mutex

	frames chan []byte

	closeOnce sync.Once
	group     *errgroup.Group
	cancel    context.CancelFunc

	logger zerolog.Logger
}

// DialWebsocket opens a websocket connection to url and starts the
// ping and receive-pump goroutines, the same pair the teacher's Connect
// spawns via an errgroup.Group.
func DialWebsocket(ctx context.Context, url string, logger zerolog.Logger) (*Websocket, error) {
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{"janus-protocol"},
	})
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	group, runCtx := errgroup.WithContext(runCtx)

	ws := &Websocket{
		conn:   conn,
		frames: make(chan []byte, 32),
		group:  group,
		cancel: cancel,
		logger: logger,
	}

	group.Go(func() error { return ws.pingLoop(runCtx) })
	group.Go(func() error { return ws.recvLoop(runCtx) })

	return ws, nil
}

func (w *Websocket) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sendMu.Lock()
			err := w.conn.Ping(ctx)
			w.sendMu.Unlock()
			if err != nil {
				w.logger.Warn().Err(err).Msg("websocket ping failed")
				return err
			}
		}
	}
}

func (w *Websocket) recvLoop(ctx context.Context) error {
	defer close(w.frames)
	for {
		_, data, err := w.conn.Read(ctx)
		if err != nil {
			w.logger.Debug().Err(err).Msg("websocket read loop ending")
			return err
		}
		select {
		case w.frames <- data:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Send implements transport.Transport.
func (w *Websocket) Send(ctx context.Context, data []byte) error {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	return w.conn.Write(ctx, websocket.MessageText, data)
}

// Receive implements transport.Transport.
func (w *Websocket) Receive() <-chan []byte {
	return w.frames
}

// Close implements transport.Transport.
func (w *Websocket) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.conn.Close(websocket.StatusNormalClosure, "closing")
		_ = w.group.Wait()
	})
	return err
}
