package legacyvideoroom

import (
	"encoding/json"

	"github.com/jarust-go/jarust/internal/jatype"
	"github.com/jarust-go/jarust/japrotocol"
)

// Publisher is one entry of a "joined"/"publishers" event's publisher
// list, per the original's LegacyVideoRoomPublisher.
type Publisher struct {
	ID        jatype.JanusID `json:"id"`
	Display   string         `json:"display,omitempty"`
	Substream *uint8         `json:"substream,omitempty"`
}

// Event is the legacy video room's event sum, per §4.E / §9: an
// interface with an unexported marker so only this package can add
// variants, plus an Other escape so the decoder stays total.
type Event interface {
	isLegacyVideoRoomEvent()
}

// RoomJoinedEvent is delivered after a successful JoinAsPublisher.
// PrivateID resolves the Open Question on §9: it is surfaced as-is,
// never required or validated.
type RoomJoinedEvent struct {
	ID          jatype.JanusID
	Room        jatype.JanusID
	Description string
	PrivateID   uint64
	Publishers  []Publisher
	Jsep        *japrotocol.Jsep
}

func (RoomJoinedEvent) isLegacyVideoRoomEvent() {}

// SlowLinkEvent is a bare {"videoroom":"slow_link"} notification.
type SlowLinkEvent struct{}

func (SlowLinkEvent) isLegacyVideoRoomEvent() {}

// LeavingEvent is delivered to the other participants when one leaves.
type LeavingEvent struct {
	Room   jatype.JanusID
	Reason string
}

func (LeavingEvent) isLegacyVideoRoomEvent() {}

// KickedEvent is delivered when a participant is administratively kicked.
type KickedEvent struct {
	Room        jatype.JanusID
	Participant jatype.JanusID
}

func (KickedEvent) isLegacyVideoRoomEvent() {}

// ErrorEvent is a plugin-level failure carried in plugindata.data.
type ErrorEvent struct {
	ErrorCode uint16
	ErrorText string
}

func (ErrorEvent) isLegacyVideoRoomEvent() {}

// GenericEvent wraps a server-initiated handle event not specific to this
// plugin: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
type GenericEvent struct {
	Kind  japrotocol.FrameKind
	Frame japrotocol.Frame
}

func (GenericEvent) isLegacyVideoRoomEvent() {}

// OtherEvent is the total decoder's escape hatch for a plugin payload
// shape this package does not recognize.
type OtherEvent struct {
	Raw json.RawMessage
}

func (OtherEvent) isLegacyVideoRoomEvent() {}

type eventEnvelope struct {
	VideoRoom   string          `json:"videoroom"`
	ID          *jatype.JanusID `json:"id,omitempty"`
	Room        *jatype.JanusID `json:"room,omitempty"`
	PrivateID   uint64          `json:"private_id,omitempty"`
	Description *string         `json:"description,omitempty"`
	Publishers  []Publisher     `json:"publishers,omitempty"`
	Leaving     string          `json:"leaving,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Kicked      *jatype.JanusID `json:"kicked,omitempty"`
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

	switch env.VideoRoom {
	case "joined":
		id, room := jatype.JanusID{}, jatype.JanusID{}
		if env.ID != nil {
			id = *env.ID
		}
		if env.Room != nil {
			room = *env.Room
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
	case "slow_link":
		return SlowLinkEvent{}
	case "event":
		if env.Leaving != "" {
			room := jatype.JanusID{}
			if env.Room != nil {
				room = *env.Room
			}
			return LeavingEvent{Room: room, Reason: env.Reason}
		}
		if env.Kicked != nil {
			room := jatype.JanusID{}
			if env.Room != nil {
				room = *env.Room
			}
			return KickedEvent{Room: room, Participant: *env.Kicked}
		}
	}

	return OtherEvent{Raw: data.Raw}
}
