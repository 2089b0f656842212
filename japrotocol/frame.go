package japrotocol

import "encoding/json"

// Jsep is the opaque session-description triple Janus carries on a
// client's behalf. The core never inspects sdp; it passes it through.
type Jsep struct {
	Type    string `json:"type"`
	SDP     string `json:"sdp,omitempty"`
	Trickle *bool  `json:"trickle,omitempty"`
}

// ErrorBody is the {code, reason} pair a "janus":"error" frame carries.
type ErrorBody struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// PluginInnerData is plugindata.data: either a plugin-specific success
// payload or a plugin-level {error_code, error} pair. Both branches are
// kept as raw JSON; the plugin adapter decides how to decode them.
type PluginInnerData struct {
	ErrorCode uint16          `json:"error_code,omitempty"`
	Error     string          `json:"error,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

// IsError reports whether plugindata.data held an {error_code, error} pair
// rather than a plugin success payload.
func (d *PluginInnerData) IsError() bool {
	return d != nil && d.ErrorCode != 0
}

// UnmarshalJSON keeps the raw bytes around (for Other(...) decoding in
// plugin adapters) while also picking out the error shape if present.
func (d *PluginInnerData) UnmarshalJSON(data []byte) error {
	d.Raw = append(json.RawMessage(nil), data...)
	var probe struct {
		ErrorCode uint16 `json:"error_code"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	d.ErrorCode = probe.ErrorCode
	d.Error = probe.Error
	return nil
}

// PluginData is the plugindata envelope member: {plugin, data}.
type PluginData struct {
	Plugin string           `json:"plugin"`
	Data   *PluginInnerData `json:"data,omitempty"`
}

// ResponseData is the "data" envelope member carried by success
// responses to create/attach: {"id": <session-or-handle-id>}.
type ResponseData struct {
	ID uint64 `json:"id"`
}

// Frame is a fully decoded inbound message. Every field the core cares
// about is promoted; everything else is left in Raw for callers (plugin
// decoders, Other(...) escapes) that need the untouched bytes.
type Frame struct {
	Janus       FrameKind       `json:"janus"`
	Transaction string          `json:"transaction,omitempty"`
	Session     uint64          `json:"session_id,omitempty"`
	Sender      uint64          `json:"sender,omitempty"`
	Plugin      string          `json:"plugin,omitempty"`
	Data        *ResponseData   `json:"data,omitempty"`
	PluginData  *PluginData     `json:"plugindata,omitempty"`
	Jsep        *Jsep           `json:"jsep,omitempty"`
	Err         *ErrorBody      `json:"error,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// ParseFrame decodes one inbound JSON object into a Frame, keeping the
// original bytes on Raw.
func ParseFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, err
	}
	f.Raw = append(json.RawMessage(nil), data...)
	return f, nil
}

// HasHandle reports whether this frame is addressed to a specific handle
// (sender != 0) as opposed to being session- or connection-scoped.
func (f Frame) HasHandle() bool {
	return f.Sender != 0
}
