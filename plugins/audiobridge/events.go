package audiobridge

import (
	"encoding/json"

	"github.com/jarust-go/jarust/internal/jatype"
	"github.com/jarust-go/jarust/japrotocol"
)

// Event is the audio bridge's event sum, per §4.E / §9: an interface with
// an unexported marker so only this package can add variants, plus an
// Other escape so the decoder stays total.
type Event interface {
	isAudioBridgeEvent()
}

// JoinedEvent is delivered to a participant after a successful Join.
type JoinedEvent struct {
	Room         jatype.JanusID
	Participants []Participant
}

func (JoinedEvent) isAudioBridgeEvent() {}

// RoomLeftEvent is delivered after a successful Leave.
type RoomLeftEvent struct {
	Room jatype.JanusID
}

func (RoomLeftEvent) isAudioBridgeEvent() {}

// RoomChangedEvent is delivered when room configuration changes while the
// handle is joined (e.g. another participant's Edit).
type RoomChangedEvent struct {
	Room         jatype.JanusID
	Participants []Participant
}

func (RoomChangedEvent) isAudioBridgeEvent() {}

// ResultEvent is a bare {"audiobridge":"event","result":"..."} reply, the
// shape Janus uses for simple acknowledgements that aren't a room CRUD
// reply (those are returned directly by Handle's methods instead).
type ResultEvent struct {
	Result string
}

func (ResultEvent) isAudioBridgeEvent() {}

// ErrorEvent is a plugin-level failure carried in plugindata.data.
type ErrorEvent struct {
	ErrorCode uint16
	ErrorText string
}

func (ErrorEvent) isAudioBridgeEvent() {}

// GenericEvent wraps a server-initiated handle event not specific to this
// plugin: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
type GenericEvent struct {
	Kind  japrotocol.FrameKind
	Frame japrotocol.Frame
}

func (GenericEvent) isAudioBridgeEvent() {}

// OtherEvent is the total decoder's escape hatch for a plugin payload
// shape this package does not recognize.
type OtherEvent struct {
	Raw json.RawMessage
}

func (OtherEvent) isAudioBridgeEvent() {}

type eventEnvelope struct {
	AudioBridge  string          `json:"audiobridge"`
	Room         *jatype.JanusID `json:"room,omitempty"`
	Participants []Participant   `json:"participants,omitempty"`
	Result       string          `json:"result,omitempty"`
}

// decode turns one plugin-addressed frame into an Event. It never fails:
// anything it cannot classify round-trips as OtherEvent.
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

	switch env.AudioBridge {
	case "joined":
		room := jatype.JanusID{}
		if env.Room != nil {
			room = *env.Room
		}
		return JoinedEvent{Room: room, Participants: env.Participants}
	case "left":
		room := jatype.JanusID{}
		if env.Room != nil {
			room = *env.Room
		}
		return RoomLeftEvent{Room: room}
	case "roomchanged":
		room := jatype.JanusID{}
		if env.Room != nil {
			room = *env.Room
		}
		return RoomChangedEvent{Room: room, Participants: env.Participants}
	case "event":
		if env.Result != "" {
			return ResultEvent{Result: env.Result}
		}
	}

	return OtherEvent{Raw: data.Raw}
}
