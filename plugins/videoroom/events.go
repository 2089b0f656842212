package videoroom

import (
	"encoding/json"

	"github.com/jarust-go/jarust/internal/jatype"
	"github.com/jarust-go/jarust/japrotocol"
)

// Event is the video room's event sum, per §4.E / §9: an interface with
// an unexported marker so only this package can add variants, plus an
// Other escape so the decoder stays total.
type Event interface {
	isVideoRoomEvent()
}

// RoomDestroyedEvent is sent to all participants when the room is
// destroyed.
type RoomDestroyedEvent struct {
	Room jatype.JanusID
}

func (RoomDestroyedEvent) isVideoRoomEvent() {}

// RoomJoinedEvent is delivered after a successful JoinAsPublisher or
// JoinAsSubscriber; Jsep is non-nil for a subscriber's "attached" reply.
type RoomJoinedEvent struct {
	ID          jatype.JanusID
	Room        jatype.JanusID
	Description string
	PrivateID   uint64
	Publishers  []Publisher
	Jsep        *japrotocol.Jsep
}

func (RoomJoinedEvent) isVideoRoomEvent() {}

// NewPublisherEvent is sent to all participants when a publisher starts
// publishing.
type NewPublisherEvent struct {
	Room       jatype.JanusID
	Publishers []Publisher
}

func (NewPublisherEvent) isVideoRoomEvent() {}

// ConfiguredEvent is the reply to a successful Publish, carrying the
// negotiated JSEP answer.
type ConfiguredEvent struct {
	Room jatype.JanusID
	Jsep *japrotocol.Jsep
}

func (ConfiguredEvent) isVideoRoomEvent() {}

// TalkingEvent / StoppedTalkingEvent are emitted when audiolevel_event is
// enabled on the room.
type TalkingEvent struct {
	Room       jatype.JanusID
	ID         jatype.JanusID
	AudioLevel int
}

func (TalkingEvent) isVideoRoomEvent() {}

type StoppedTalkingEvent struct {
	Room       jatype.JanusID
	ID         jatype.JanusID
	AudioLevel int
}

func (StoppedTalkingEvent) isVideoRoomEvent() {}

// UnpublishedEvent is delivered to the other participants once a
// publisher's PeerConnection is gone.
type UnpublishedEvent struct {
	Room jatype.JanusID
	ID   jatype.JanusID
}

func (UnpublishedEvent) isVideoRoomEvent() {}

// LeavingEvent is delivered to the other participants when one leaves.
type LeavingEvent struct {
	Room   jatype.JanusID
	Reason string
}

func (LeavingEvent) isVideoRoomEvent() {}

// KickedEvent is delivered when a participant is administratively kicked.
type KickedEvent struct {
	Room        jatype.JanusID
	Participant jatype.JanusID
}

func (KickedEvent) isVideoRoomEvent() {}

// ErrorEvent is a plugin-level failure carried in plugindata.data.
type ErrorEvent struct {
	ErrorCode uint16
	ErrorText string
}

func (ErrorEvent) isVideoRoomEvent() {}

// GenericEvent wraps a server-initiated handle event not specific to this
// plugin: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
type GenericEvent struct {
	Kind  japrotocol.FrameKind
	Frame japrotocol.Frame
}

func (GenericEvent) isVideoRoomEvent() {}

// OtherEvent is the total decoder's escape hatch for a plugin payload
// shape this package does not recognize.
type OtherEvent struct {
	Raw json.RawMessage
}

func (OtherEvent) isVideoRoomEvent() {}

type eventEnvelope struct {
	VideoRoom   string          `json:"videoroom"`
	ID          *jatype.JanusID `json:"id,omitempty"`
	Room        *jatype.JanusID `json:"room,omitempty"`
	PrivateID   uint64          `json:"private_id,omitempty"`
	Description *string         `json:"description,omitempty"`
	Publishers  []Publisher     `json:"publishers,omitempty"`
	Unpublished *jatype.JanusID `json:"unpublished,omitempty"`
	Leaving     string          `json:"leaving,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Kicked      *jatype.JanusID `json:"kicked,omitempty"`
	Configured  string          `json:"configured,omitempty"`
	AudioLevel  int             `json:"audio-level-dBov-avg,omitempty"`
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

	room := jatype.JanusID{}
	if env.Room != nil {
		room = *env.Room
	}

	switch env.VideoRoom {
	case "destroyed":
		return RoomDestroyedEvent{Room: room}
	case "joined", "attached":
		id := jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		description := ""
		if env.Description != nil {
			description = *env.Description
		}
		return RoomJoinedEvent{
			ID:          id,
			Room:        room,
			Description: description,
			PrivateID:   env.PrivateID,
			Publishers:  env.Publishers,
			Jsep:        frame.Jsep,
		}
	case "publishers":
		return NewPublisherEvent{Room: room, Publishers: env.Publishers}
	case "talking":
		id := jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		return TalkingEvent{Room: room, ID: id, AudioLevel: env.AudioLevel}
	case "stopped-talking":
		id := jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		return StoppedTalkingEvent{Room: room, ID: id, AudioLevel: env.AudioLevel}
	case "event":
		if env.Configured != "" {
			return ConfiguredEvent{Room: room, Jsep: frame.Jsep}
		}
		if env.Unpublished != nil {
			return UnpublishedEvent{Room: room, ID: *env.Unpublished}
		}
		if env.Leaving != "" {
			return LeavingEvent{Room: room, Reason: env.Reason}
		}
		if env.Kicked != nil {
			return KickedEvent{Room: room, Participant: *env.Kicked}
		}
	}

	return OtherEvent{Raw: data.Raw}
}
