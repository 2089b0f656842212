package jamux

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jarust-go/jarust/internal/router"
	"github.com/jarust-go/jarust/japrotocol"
)

// fakeTransport is an in-memory transport.Transport double: Send appends
// to sent, Receive is driven by pushing bytes onto inbound.
type fakeTransport struct {
	sent    [][]byte
	inbound chan []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbound: make(chan []byte, 16)}
}

func (f *fakeTransport) Send(ctx context.Context, data []byte) error {
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeTransport) Receive() <-chan []byte { return f.inbound }

func (f *fakeTransport) Close() error {
	close(f.inbound)
	return nil
}

func (f *fakeTransport) push(t *testing.T, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	f.inbound <- data
}

type seqGen struct{ n int }

func (g *seqGen) Generate() string {
	g.n++
	return "txn"
}

func TestWaitForResponseCoalescesAck(t *testing.T) {
	tr := newFakeTransport()
	rt := router.New("janus", zerolog.Nop())
	m := New(tr, rt, &seqGen{}, "", zerolog.Nop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	done := make(chan japrotocol.Frame, 1)
	errCh := make(chan error, 1)
	go func() {
		frame, err := m.WaitForResponse(context.Background(), japrotocol.NewEnvelope(japrotocol.VerbMessage), time.Second)
		if err != nil {
			errCh <- err
			return
		}
		done <- frame
	}()

	time.Sleep(10 * time.Millisecond)
	tr.push(t, map[string]interface{}{"janus": "ack", "transaction": "txn"})
	time.Sleep(10 * time.Millisecond)
	tr.push(t, map[string]interface{}{"janus": "event", "transaction": "txn", "session_id": 1, "sender": 2})

	select {
	case frame := <-done:
		if frame.Janus != japrotocol.KindEvent {
			t.Errorf("resolved with kind %q, want event", frame.Janus)
		}
	case err := <-errCh:
		t.Fatalf("WaitForResponse failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForResponse never resolved")
	}
}

func TestWaitForResponseTimesOut(t *testing.T) {
	tr := newFakeTransport()
	rt := router.New("janus", zerolog.Nop())
	m := New(tr, rt, &seqGen{}, "", zerolog.Nop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	_, err := m.WaitForResponse(context.Background(), japrotocol.NewEnvelope(japrotocol.VerbMessage), 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestEventsRouteToHandleSubscriber(t *testing.T) {
	tr := newFakeTransport()
	rt := router.New("janus", zerolog.Nop())
	m := New(tr, rt, &seqGen{}, "", zerolog.Nop(), 8)
	sub := rt.AddSubroute(router.HandleEnd(1, 2))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	tr.push(t, map[string]interface{}{"janus": "event", "session_id": 1, "sender": 2})

	frame, ok := sub.Recv()
	if !ok {
		t.Fatal("expected a frame on the handle subroute")
	}
	if frame.Session != 1 || frame.Sender != 2 {
		t.Errorf("unexpected frame %+v", frame)
	}
}

// TestUncorrelatedKeepaliveAckIsNotRouted guards against a keepalive ack
// (fire-and-forget, no correlator slot, carries session_id every K
// seconds) piling up forever in a session route nothing drains (§4.C.4,
// §5's resource-model bound on growth).
func TestUncorrelatedKeepaliveAckIsNotRouted(t *testing.T) {
	tr := newFakeTransport()
	rt := router.New("janus", zerolog.Nop())
	m := New(tr, rt, &seqGen{}, "", zerolog.Nop(), 8)
	sub := rt.AddSubroute(router.SessionEnd(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	tr.push(t, map[string]interface{}{"janus": "ack", "session_id": 1})
	// A genuine routable frame on the same subroute proves the loop kept
	// making progress past the dropped ack rather than stalling.
	tr.push(t, map[string]interface{}{"janus": "timeout", "session_id": 1})

	frame, ok := sub.Recv()
	if !ok {
		t.Fatal("expected the timeout frame on the session subroute")
	}
	if frame.Janus != japrotocol.KindTimeout {
		t.Errorf("got first delivered frame %+v, want the timeout (ack must have been dropped)", frame)
	}
	if sub.Len() != 0 {
		t.Errorf("sub.Len() = %d, want 0: the dropped ack must not also have been queued", sub.Len())
	}
}
