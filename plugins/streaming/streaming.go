// Package streaming is a thin plugin surface over janus.plugin.streaming,
// grounded on the original's streaming/events.rs: mountpoint listing and
// play/stop, implemented at the same depth as legacyvideoroom since the
// core's Non-goals exclude SDP/media processing but not signaling-level
// mountpoint control.
package streaming

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

// PluginID is the janus.plugin.streaming package name Janus expects on
// attach.
const PluginID = "janus.plugin.streaming"

// Handle wraps a generic handle with the streaming plugin's operations.
type Handle struct {
	*jarust.Handle
}

// Attach attaches janus.plugin.streaming on session and wires the plugin
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

// Mountpoint is one entry of List's "list" array.
type Mountpoint struct {
	ID          jatype.JanusID `json:"id"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"`
}

// List returns every currently listable mountpoint.
func (h *Handle) List(ctx context.Context, timeout time.Duration) ([]Mountpoint, error) {
	data, err := h.request(ctx, "list", map[string]interface{}{}, timeout)
	if err != nil {
		return nil, err
	}
	var reply struct {
		List []Mountpoint `json:"list"`
	}
	if err := json.Unmarshal(data.Raw, &reply); err != nil {
		return nil, fmt.Errorf("streaming: decode list reply: %w", err)
	}
	return reply.List, nil
}

// Watch starts watching mountpoint id; the "created"/"destroyed" style
// reply arrives on the handle's event channel, along with a JSEP offer.
func (h *Handle) Watch(ctx context.Context, id jatype.JanusID, timeout time.Duration) error {
	body := map[string]interface{}{"id": id}
	body["request"] = "watch"
	_, err := h.SendWaitAck(ctx, body, nil, timeout)
	return err
}

// Start confirms readiness to receive the negotiated media, carrying the
// JSEP answer.
func (h *Handle) Start(ctx context.Context, jsep japrotocol.Jsep, timeout time.Duration) error {
	body := map[string]interface{}{"request": "start"}
	_, err := h.SendWaitAck(ctx, body, jsep, timeout)
	return err
}

// Stop ends the current mountpoint playback.
func (h *Handle) Stop(ctx context.Context, timeout time.Duration) error {
	_, err := h.request(ctx, "stop", map[string]interface{}{}, timeout)
	return err
}

func wrapGeneric(kind japrotocol.FrameKind, frame japrotocol.Frame) Event {
	return GenericEvent{Kind: kind, Frame: frame}
}
