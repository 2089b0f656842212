package audiobridge

import "github.com/jarust-go/jarust/internal/jatype"

// CreateRoomParams is the subset of janus.plugin.audiobridge's "create"
// request body this client exposes, grounded on the original's
// audio_bridge_*.rs examples.
type CreateRoomParams struct {
	Room        jatype.JanusID `json:"room"`
	Description string         `json:"description,omitempty"`
	IsPrivate   bool           `json:"is_private,omitempty"`
	Permanent   bool           `json:"permanent,omitempty"`
}

// EditRoomParams is the "edit" request body. Only the fields this client
// exercises (scenario S5's is_private flip) are exposed; Janus accepts
// several more that are out of scope here.
type EditRoomParams struct {
	Room        jatype.JanusID `json:"room"`
	NewIsPrivate bool          `json:"new_is_private"`
}

// JoinParams is the "join" request body.
type JoinParams struct {
	Room      jatype.JanusID  `json:"room"`
	ID        *jatype.JanusID `json:"id,omitempty"`
	Display   string          `json:"display,omitempty"`
	Muted     bool            `json:"muted,omitempty"`
}

// RoomInfo is one entry of list_rooms's "rooms" array. Janus omits
// private rooms from this list entirely (S5), so there is no is_private
// field to decode here.
type RoomInfo struct {
	Room        jatype.JanusID `json:"room"`
	Description string         `json:"description"`
	NumUsers    int            `json:"num_participants"`
}

// Participant is one entry of list_participants's "participants" array.
type Participant struct {
	ID      jatype.JanusID `json:"id"`
	Display string         `json:"display,omitempty"`
	Muted   bool           `json:"muted"`
	Setup   bool           `json:"setup"`
}
