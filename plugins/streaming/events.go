package streaming

import (
	"encoding/json"

	"github.com/jarust-go/jarust/internal/jatype"
	"github.com/jarust-go/jarust/japrotocol"
)

// Event is the streaming plugin's event sum, per §4.E / §9: an interface
// with an unexported marker so only this package can add variants, plus
// an Other escape so the decoder stays total.
type Event interface {
	isStreamingEvent()
}

// MountpointCreatedEvent is delivered after a successful mountpoint
// creation (typically over the plugin's own admin API; surfaced here for
// completeness since it rides the same event shape as Watch).
type MountpointCreatedEvent struct {
	ID   jatype.JanusID
	Type string
}

func (MountpointCreatedEvent) isStreamingEvent() {}

// MountpointDestroyedEvent is delivered when a mountpoint is torn down.
type MountpointDestroyedEvent struct {
	ID jatype.JanusID
}

func (MountpointDestroyedEvent) isStreamingEvent() {}

// ErrorEvent is a plugin-level failure carried in plugindata.data.
type ErrorEvent struct {
	ErrorCode uint16
	ErrorText string
}

func (ErrorEvent) isStreamingEvent() {}

// GenericEvent wraps a server-initiated handle event not specific to this
// plugin: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
type GenericEvent struct {
	Kind  japrotocol.FrameKind
	Frame japrotocol.Frame
}

func (GenericEvent) isStreamingEvent() {}

// OtherEvent is the total decoder's escape hatch for a plugin payload
// shape this package does not recognize.
type OtherEvent struct {
	Raw json.RawMessage
}

func (OtherEvent) isStreamingEvent() {}

type eventEnvelope struct {
	Streaming string          `json:"streaming"`
	ID        *jatype.JanusID `json:"id,omitempty"`
	Type      string          `json:"type,omitempty"`
}

// decode turns one plugin-addressed frame into an Event. It never fails:
// anything it cannot classify round-trips as OtherEvent (§9: "decoders
// MUST be total").
func decode(frame japrotocol.Frame) Event {
	if frame.Janus == japrotocol.KindError && frame.Err != nil {
		return ErrorEvent{ErrorCode: uint16(frame.Err.Code), ErrorText: frame.Err.Reason}
	}

	if frame.PluginData == nil || frame.PluginData.Data == nil {
		return OtherEvent{Raw: frame.Raw}
	}

	data := frame.PluginData.Data
	if data.IsError() {
		return ErrorEvent{ErrorCode: data.ErrorCode, ErrorText: data.Error}
	}

	var env eventEnvelope
	if err := json.Unmarshal(data.Raw, &env); err != nil {
		return OtherEvent{Raw: data.Raw}
	}

	switch env.Streaming {
	case "created":
		id := jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		return MountpointCreatedEvent{ID: id, Type: env.Type}
	case "destroyed":
		id := jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		return MountpointDestroyedEvent{ID: id}
	}

	return OtherEvent{Raw: data.Raw}
}
