package router

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/jarust-go/jarust/japrotocol"
)

func TestRouterBasicUsage(t *testing.T) {
	r := New("janus", zerolog.Nop())
	one := r.AddSubroute("one")
	two := r.AddSubroute("two")

	r.Publish("janus/one", japrotocol.Frame{Janus: japrotocol.KindAck})
	r.Publish("janus/two", japrotocol.Frame{Janus: japrotocol.KindAck})
	r.Publish("janus/two", japrotocol.Frame{Janus: japrotocol.KindAck})

	if got := one.Len(); got != 1 {
		t.Errorf("channel one buffered %d frames, want 1", got)
	}
	if got := two.Len(); got != 2 {
		t.Errorf("channel two buffered %d frames, want 2", got)
	}
}

func TestRouterPublishToUnknownPathDrops(t *testing.T) {
	r := New("janus", zerolog.Nop())
	// Should not panic and should simply drop.
	r.Publish("janus/404", japrotocol.Frame{Janus: japrotocol.KindAck})
}

func TestPathOfFrame(t *testing.T) {
	r := New("janus", zerolog.Nop())

	path, ok := r.PathOfFrame(japrotocol.Frame{Session: 1, Sender: 2})
	if !ok || path != "janus/1/2" {
		t.Errorf("PathOfFrame(session+handle) = (%q, %v), want (janus/1/2, true)", path, ok)
	}

	path, ok = r.PathOfFrame(japrotocol.Frame{Session: 1})
	if !ok || path != "janus/1" {
		t.Errorf("PathOfFrame(session only) = (%q, %v), want (janus/1, true)", path, ok)
	}

	if _, ok := r.PathOfFrame(japrotocol.Frame{}); ok {
		t.Error("PathOfFrame with no session should report ok=false")
	}
}

func TestRemoveSubrouteClosesChannel(t *testing.T) {
	r := New("janus", zerolog.Nop())
	ch := r.AddSubroute(HandleEnd(1, 2))
	r.RemoveSubroute(HandleEnd(1, 2))

	if _, ok := ch.Recv(); ok {
		t.Error("expected channel to report closed after RemoveSubroute")
	}
}
