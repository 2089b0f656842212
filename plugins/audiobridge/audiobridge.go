// Package audiobridge is a thin plugin surface over
// janus.plugin.audiobridge: room CRUD plus join/leave/list-participants,
// grounded on the original's audio_bridge/events.rs and the
// audio_bridge_{destroy,exists,join_then_leave} examples. It exercises
// scenario S5 (room CRUD with a random 63-bit room id).
package audiobridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jarust-go/jarust"
	"github.com/jarust-go/jarust/internal/jatype"
	"github.com/jarust-go/jarust/jaerror"
	"github.com/jarust-go/jarust/japrotocol"
	"github.com/jarust-go/jarust/plugins/japlugin"
)

// PluginID is the janus.plugin.audiobridge package name Janus expects on
// attach.
const PluginID = "janus.plugin.audiobridge"

// Handle wraps a generic handle with the audio bridge's request/response
// operations.
type Handle struct {
	*jarust.Handle
}

// Attach attaches janus.plugin.audiobridge on session and wires the
// plugin event adapter over its raw events.
func Attach(ctx context.Context, session *jarust.Session, timeout time.Duration) (*Handle, <-chan Event, error) {
	handle, events, err := japlugin.Attach(ctx, session, PluginID, timeout, decode, wrapGeneric)
	if err != nil {
		return nil, nil, err
	}
	return &Handle{Handle: handle}, events, nil
}

func (h *Handle) request(ctx context.Context, request string, body map[string]interface{}, timeout time.Duration) (*japrotocol.PluginInnerData, error) {
	body["request"] = request
	frame, err := h.SendWaitResponse(ctx, body, nil, timeout)
	if err != nil {
		return nil, err
	}
	if frame.PluginData == nil || frame.PluginData.Data == nil {
		return nil, jaerror.ErrUnexpectedResponse
	}
	if frame.PluginData.Data.IsError() {
		return nil, &jaerror.PluginResponseError{
			ErrorCode: frame.PluginData.Data.ErrorCode,
			ErrorText: frame.PluginData.Data.Error,
		}
	}
	return frame.PluginData.Data, nil
}

// Exists reports whether room is currently configured on the server.
func (h *Handle) Exists(ctx context.Context, room jatype.JanusID, timeout time.Duration) (bool, error) {
	data, err := h.request(ctx, "exists", map[string]interface{}{"room": room}, timeout)
	if err != nil {
		return false, err
	}
	var reply struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(data.Raw, &reply); err != nil {
		return false, fmt.Errorf("audiobridge: decode exists reply: %w", err)
	}
	return reply.Exists, nil
}

// CreateRoom creates a new room, per the original's
// audio_bridge_*_create-style helpers.
func (h *Handle) CreateRoom(ctx context.Context, params CreateRoomParams, timeout time.Duration) error {
	body, err := paramsToBody(params)
	if err != nil {
		return err
	}
	_, err = h.request(ctx, "create", body, timeout)
	return err
}

// EditRoom applies params (currently just new_is_private) to an existing
// room.
func (h *Handle) EditRoom(ctx context.Context, params EditRoomParams, timeout time.Duration) error {
	body, err := paramsToBody(params)
	if err != nil {
		return err
	}
	_, err = h.request(ctx, "edit", body, timeout)
	return err
}

// DestroyRoom removes room from the server.
func (h *Handle) DestroyRoom(ctx context.Context, room jatype.JanusID, timeout time.Duration) error {
	_, err := h.request(ctx, "destroy", map[string]interface{}{"room": room}, timeout)
	return err
}

// ListRooms returns every currently listable (non-private) room.
func (h *Handle) ListRooms(ctx context.Context, timeout time.Duration) ([]RoomInfo, error) {
	data, err := h.request(ctx, "list", map[string]interface{}{}, timeout)
	if err != nil {
		return nil, err
	}
	var reply struct {
		Rooms []RoomInfo `json:"rooms"`
	}
	if err := json.Unmarshal(data.Raw, &reply); err != nil {
		return nil, fmt.Errorf("audiobridge: decode list reply: %w", err)
	}
	return reply.Rooms, nil
}

// Join joins a room; the server's reply (and later events) arrive on the
// handle's event channel rather than as a direct return value, matching
// how Janus answers "join" with an asynchronous "joined" event.
func (h *Handle) Join(ctx context.Context, params JoinParams, timeout time.Duration) error {
	body, err := paramsToBody(params)
	if err != nil {
		return err
	}
	body["request"] = "join"
	_, err = h.SendWaitAck(ctx, body, nil, timeout)
	return err
}

// Leave leaves the room this handle is currently joined to.
func (h *Handle) Leave(ctx context.Context, timeout time.Duration) error {
	_, err := h.request(ctx, "leave", map[string]interface{}{}, timeout)
	return err
}

// ListParticipants lists room's current participants.
func (h *Handle) ListParticipants(ctx context.Context, room jatype.JanusID, timeout time.Duration) ([]Participant, error) {
	data, err := h.request(ctx, "listparticipants", map[string]interface{}{"room": room}, timeout)
	if err != nil {
		return nil, err
	}
	var reply struct {
		Participants []Participant `json:"participants"`
	}
	if err := json.Unmarshal(data.Raw, &reply); err != nil {
		return nil, fmt.Errorf("audiobridge: decode listparticipants reply: %w", err)
	}
	return reply.Participants, nil
}

func paramsToBody(params interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("audiobridge: encode params: %w", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("audiobridge: decode params: %w", err)
	}
	return body, nil
}

func wrapGeneric(kind japrotocol.FrameKind, frame japrotocol.Frame) Event {
	return GenericEvent{Kind: kind, Frame: frame}
}
