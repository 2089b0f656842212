// Package videoroom is a thin plugin surface over the multistream
// janus.plugin.videoroom, grounded on the original's video_room/events.rs
// and jarust/examples/video_room.rs. Its room CRUD mirrors audiobridge's
// shape since both plugins share the Janus room-based pattern documented
// in §6.
package videoroom

import "github.com/jarust-go/jarust/internal/jatype"

// CreateRoomParams is the subset of the multistream video room's "create"
// request body this client exposes; Janus accepts several dozen more
// fields (codec lists, bitrate caps, recording) that are out of scope
// here.
type CreateRoomParams struct {
	Room        jatype.JanusID `json:"room,omitempty"`
	Description string         `json:"description,omitempty"`
	IsPrivate   bool           `json:"is_private,omitempty"`
	Publishers  int            `json:"publishers,omitempty"`
	Permanent   bool           `json:"permanent,omitempty"`
}

// EditRoomParams is the "edit" request body.
type EditRoomParams struct {
	Room         jatype.JanusID `json:"room"`
	NewIsPrivate bool           `json:"new_is_private"`
}

// PublisherJoinParams is the "joinandconfigure"/"join" request body for a
// publisher session, grounded on VideoRoomPublisherJoinParams.
type PublisherJoinParams struct {
	Room    jatype.JanusID  `json:"room"`
	PType   string          `json:"ptype"`
	ID      *jatype.JanusID `json:"id,omitempty"`
	Display string          `json:"display,omitempty"`
	Token   string          `json:"token,omitempty"`
}

// NewPublisherJoin builds a publisher join request for room.
func NewPublisherJoin(room jatype.JanusID) PublisherJoinParams {
	return PublisherJoinParams{Room: room, PType: "publisher"}
}

// SubscriberJoinParams is the "join" request body for a subscriber
// session, grounded on VideoRoomSubscriberJoinParams.
type SubscriberJoinParams struct {
	Room  jatype.JanusID `json:"room"`
	PType string         `json:"ptype"`
	Feed  jatype.JanusID `json:"feed"`
}

// NewSubscriberJoin builds a subscriber join request for feed within
// room.
func NewSubscriberJoin(room, feed jatype.JanusID) SubscriberJoinParams {
	return SubscriberJoinParams{Room: room, PType: "subscriber", Feed: feed}
}

// PublishParams is the "publish" request body, carried alongside a JSEP
// offer.
type PublishParams struct {
	AudioCodec string `json:"audiocodec,omitempty"`
	VideoCodec string `json:"videocodec,omitempty"`
	Bitrate    int    `json:"bitrate,omitempty"`
}

// RoomInfo is one entry of list_rooms's "rooms" array. Janus omits
// private rooms from this list entirely, mirroring audiobridge's list
// semantics (S5).
type RoomInfo struct {
	Room        jatype.JanusID `json:"room"`
	Description string         `json:"description"`
	NumPublishers int          `json:"num_participants"`
}

// Publisher is one entry of a "joined"/"publishers" event's publisher
// list.
type Publisher struct {
	ID      jatype.JanusID `json:"id"`
	Display string         `json:"display,omitempty"`
}
