// Package japlugin is the generic plugin event adapter (component E): a
// small listener task installed by every plugin's attach call that drains
// a handle's raw event channel and reshapes each frame into a
// plugin-specific typed event, delivered in order on a per-handle
// subscriber channel.
//
// Each plugin supplies two total functions rather than subclassing a base
// type: one to decode a plugin-addressed frame (event/error) into its own
// event sum, and one to wrap a server-initiated generic handle event
// (hangup, webrtcup, media, slowlink, trickle, timeout, or the terminal
// detached) the same way. Neither may fail: unknown shapes become an
// Other(raw) member of the plugin's own event type, per §4.E / §9's
// "decoders MUST be total".
package japlugin

import (
	"context"
	"time"

	"github.com/jarust-go/jarust"
	"github.com/jarust-go/jarust/japrotocol"
)

// Decoder converts one plugin-addressed frame (a plugin success, a
// plugin-result event, or a plugin error embedded in plugindata.data)
// into a plugin's event type E. It must never fail; unrecognized shapes
// should be returned as the plugin's own Other(raw) variant.
type Decoder[E any] func(japrotocol.Frame) E

// GenericWrapper converts a server-initiated generic handle event (one of
// Detached, Hangup, WebrtcUp, Media, SlowLink, Trickle, Timeout) into the
// plugin's event type E, so callers can switch on a single event type
// regardless of whether an event originated from the plugin or from
// Janus itself.
type GenericWrapper[E any] func(kind japrotocol.FrameKind, frame japrotocol.Frame) E

// Attach attaches plugin on session and installs the adapter loop over the
// resulting raw event channel, returning the handle and a channel of
// decoded plugin events. The subscriber channel is closed exactly once,
// right after the terminal Detached event is forwarded (§4.E).
func Attach[E any](
	ctx context.Context,
	session *jarust.Session,
	plugin string,
	timeout time.Duration,
	decode Decoder[E],
	wrapGeneric GenericWrapper[E],
) (*jarust.Handle, <-chan E, error) {
	handle, raw, err := session.Attach(ctx, plugin, timeout)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan E, 8)
	go adapt(raw, events, decode, wrapGeneric)

	return handle, events, nil
}

// adapt is the per-handle listener task. It forwards every frame in the
// order it was read off the transport and never drops one on a decode
// failure, per §4.E. The router only ever forwards routable kinds
// (§4.C.4), so the default case below is a defensive no-op, not a path
// any well-behaved server frame should reach; it exists so a stray frame
// never gets misreported as a plugin OtherEvent instead of being dropped.
func adapt[E any](raw <-chan japrotocol.Frame, out chan<- E, decode Decoder[E], wrapGeneric GenericWrapper[E]) {
	defer close(out)
	for frame := range raw {
		switch {
		case frame.Janus.IsGenericHandleEvent():
			out <- wrapGeneric(frame.Janus, frame)
		case frame.Janus == japrotocol.KindEvent, frame.Janus == japrotocol.KindError:
			out <- decode(frame)
		}
	}
}
