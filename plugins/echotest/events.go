package echotest

import (
	"encoding/json"

	"github.com/jarust-go/jarust/japrotocol"
)

// Event is the echo test's event sum, the idiomatic substitute for the
// original's closed Rust enum: an interface with an unexported marker so
// only this package can add variants, plus an Other escape so the
// decoder stays total (§9).
type Event interface {
	isEchoTestEvent()
}

// ResultEvent is the successful reply to Start: {"echotest":"event",
// "result":"ok"}, per spec scenario S4.
type ResultEvent struct {
	Result string
}

func (ResultEvent) isEchoTestEvent() {}

// ErrorEvent is a plugin-level failure carried in plugindata.data as
// {error_code, error}, e.g. Start with an empty body (S4).
type ErrorEvent struct {
	ErrorCode uint16
	ErrorText string
}

func (ErrorEvent) isEchoTestEvent() {}

// GenericEvent wraps a server-initiated handle event not specific to this
// plugin: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
type GenericEvent struct {
	Kind  japrotocol.FrameKind
	Frame japrotocol.Frame
}

func (GenericEvent) isEchoTestEvent() {}

// OtherEvent is the total decoder's escape hatch for a plugin payload
// shape this package does not recognize.
type OtherEvent struct {
	Raw json.RawMessage
}

func (OtherEvent) isEchoTestEvent() {}

type resultPayload struct {
	Result string `json:"result"`
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

	var payload resultPayload
	if err := json.Unmarshal(data.Raw, &payload); err == nil && payload.Result != "" {
		return ResultEvent{Result: payload.Result}
	}

	return OtherEvent{Raw: data.Raw}
}
