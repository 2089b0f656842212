// Package legacyvideoroom is a thin plugin surface over the deprecated
// single-stream janus.plugin.videoroom, kept for backward compatibility,
// grounded on the original's legacy_video_room/handle.rs and
// legacy_video_room/responses.rs.
package legacyvideoroom

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

// PluginID is the janus.plugin.videoroom package name Janus expects on
// attach for the legacy (single-stream) video room.
const PluginID = "janus.plugin.videoroom"

// Handle wraps a generic handle with the legacy video room's operations.
type Handle struct {
	*jarust.Handle
}

// Attach attaches janus.plugin.videoroom on session and wires the plugin
// event adapter over its raw events.
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

// CreatedRoom is the decoded reply to CreateRoom, per the original's
// LegacyVideoRoomCreatedRsp.
type CreatedRoom struct {
	Room      jatype.JanusID `json:"room"`
	Permanent bool           `json:"permanent"`
}

// CreateRoom creates a new legacy video room.
func (h *Handle) CreateRoom(ctx context.Context, params CreateRoomParams, timeout time.Duration) (CreatedRoom, error) {
	body, err := paramsToBody(params)
	if err != nil {
		return CreatedRoom{}, err
	}
	data, err := h.request(ctx, "create", body, timeout)
	if err != nil {
		return CreatedRoom{}, err
	}
	var reply CreatedRoom
	if err := json.Unmarshal(data.Raw, &reply); err != nil {
		return CreatedRoom{}, fmt.Errorf("legacyvideoroom: decode create reply: %w", err)
	}
	return reply, nil
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
		return false, fmt.Errorf("legacyvideoroom: decode exists reply: %w", err)
	}
	return reply.Exists, nil
}

// DestroyRoom removes room from the server.
func (h *Handle) DestroyRoom(ctx context.Context, room jatype.JanusID, timeout time.Duration) error {
	_, err := h.request(ctx, "destroy", map[string]interface{}{"room": room}, timeout)
	return err
}

// Kick removes participant from room, per the original's
// LegacyVideoRoomKickParams.
func (h *Handle) Kick(ctx context.Context, room, participant jatype.JanusID, timeout time.Duration) error {
	_, err := h.request(ctx, "kick", map[string]interface{}{"room": room, "id": participant}, timeout)
	return err
}

// JoinAsPublisher joins room as a publisher; the "joined" reply (with its
// private_id and publisher list) arrives on the handle's event channel
// rather than as a direct return value, matching how Janus answers "join"
// with an asynchronous event.
func (h *Handle) JoinAsPublisher(ctx context.Context, params JoinAsPublisherParams, timeout time.Duration) error {
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

func paramsToBody(params interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("legacyvideoroom: encode params: %w", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("legacyvideoroom: decode params: %w", err)
	}
	return body, nil
}

func wrapGeneric(kind japrotocol.FrameKind, frame japrotocol.Frame) Event {
	return GenericEvent{Kind: kind, Frame: frame}
}
