// Package echotest is a thin plugin surface over janus.plugin.echotest,
// grounded on the original's echo_test/handle.rs and jahandle_ext.rs:
// Attach wraps the generic handle with a Start helper, and every raw
// event is reshaped into an Event by the japlugin adapter.
package echotest

import (
	"context"
	"time"

	"github.com/jarust-go/jarust"
	"github.com/jarust-go/jarust/japrotocol"
	"github.com/jarust-go/jarust/plugins/japlugin"
)

// PluginID is the janus.plugin.echotest package name Janus expects on
// attach.
const PluginID = "janus.plugin.echotest"

// StartOptions is the echo test's start body: both fields are optional,
// matching the original's StartOptions which only ever sets what the
// caller asked to echo.
type StartOptions struct {
	Audio *bool `json:"audio,omitempty"`
	Video *bool `json:"video,omitempty"`
}

// Handle wraps a generic handle with the echo test's one operation.
type Handle struct {
	*jarust.Handle
}

// Start sends the start request fire-and-forget, matching the original
// EchoTestHandle::start.
func (h *Handle) Start(ctx context.Context, options StartOptions) error {
	return h.FireAndForget(ctx, options, nil)
}

// Attach attaches janus.plugin.echotest on session and wires the plugin
// event adapter over its raw events.
func Attach(ctx context.Context, session *jarust.Session, timeout time.Duration) (*Handle, <-chan Event, error) {
	handle, events, err := japlugin.Attach(ctx, session, PluginID, timeout, decode, wrapGeneric)
	if err != nil {
		return nil, nil, err
	}
	return &Handle{Handle: handle}, events, nil
}

func wrapGeneric(kind japrotocol.FrameKind, frame japrotocol.Frame) Event {
	return GenericEvent{Kind: kind, Frame: frame}
}
