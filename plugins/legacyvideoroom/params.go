package legacyvideoroom

import "github.com/jarust-go/jarust/internal/jatype"

// CreateRoomParams is the subset of the deprecated single-stream video
// room's "create" request this client exposes, grounded on the
// original's legacy_video_room/params.rs LegacyVideoRoomCreateParams
// (which lists several dozen fields; only the ones a realistic client
// sets are kept here).
type CreateRoomParams struct {
	Room        *jatype.JanusID `json:"room,omitempty"`
	Description string          `json:"description,omitempty"`
	IsPrivate   bool            `json:"is_private,omitempty"`
	Publishers  int             `json:"publishers,omitempty"`
	Permanent   bool            `json:"permanent,omitempty"`
}

// JoinAsPublisherParams is the "join" request body for a publisher.
// PrivateID resolves the Open Question on §9: the original's handling of
// private_id shifted between optional and required across revisions;
// this client treats it as always-optional and never validates it.
type JoinAsPublisherParams struct {
	Room      jatype.JanusID  `json:"room"`
	PType     string          `json:"ptype"`
	Display   string          `json:"display,omitempty"`
	ID        *jatype.JanusID `json:"id,omitempty"`
	PrivateID *uint64         `json:"private_id,omitempty"`
}

// NewJoinAsPublisher builds a publisher join request for room.
func NewJoinAsPublisher(room jatype.JanusID) JoinAsPublisherParams {
	return JoinAsPublisherParams{Room: room, PType: "publisher"}
}
