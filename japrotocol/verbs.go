package japrotocol

// Verb identifies the value of the outbound "janus" field.
type Verb string

// Outbound verbs the core builds requests for.
const (
	VerbInfo      Verb = "info"
	VerbCreate    Verb = "create"
	VerbAttach    Verb = "attach"
	VerbMessage   Verb = "message"
	VerbTrickle   Verb = "trickle"
	VerbDetach    Verb = "detach"
	VerbDestroy   Verb = "destroy"
	VerbKeepAlive Verb = "keepalive"
	VerbHangup    Verb = "hangup"
)

// FrameKind classifies an inbound frame's "janus" discriminator, per
// §4.C.1's list of values the core interprets.
type FrameKind string

const (
	KindAck          FrameKind = "ack"
	KindSuccess      FrameKind = "success"
	KindError        FrameKind = "error"
	KindServerInfo   FrameKind = "server_info"
	KindEvent        FrameKind = "event"
	KindDetached     FrameKind = "detached"
	KindHangup       FrameKind = "hangup"
	KindTimeout      FrameKind = "timeout"
	KindWebrtcUp     FrameKind = "webrtcup"
	KindMedia        FrameKind = "media"
	KindSlowLink     FrameKind = "slowlink"
	KindTrickle      FrameKind = "trickle"
	KindKeepAlive    FrameKind = "keepalive"
	KindUnrecognized FrameKind = ""
)

// IsTerminal reports whether a frame of this kind resolves a
// wait-for-response request: success, a plugin-result event, or an error.
// An ack is explicitly not terminal; it is swallowed by wait-for-response.
func (k FrameKind) IsTerminal() bool {
	switch k {
	case KindSuccess, KindEvent, KindError:
		return true
	default:
		return false
	}
}

// IsGenericHandleEvent reports whether this kind is a server-initiated
// handle event that the plugin adapter forwards as a generic (non-plugin)
// event: detached, hangup, webrtcup, media, slowlink, trickle, timeout.
// None of these carry a plugindata payload, unlike event/error.
func (k FrameKind) IsGenericHandleEvent() bool {
	switch k {
	case KindDetached, KindHangup, KindWebrtcUp, KindMedia, KindSlowLink, KindTrickle, KindTimeout:
		return true
	default:
		return false
	}
}

// IsRoutable reports whether an uncorrelated frame of this kind (one
// Dispatch found no outstanding transaction for) should be published to
// its session/handle subroute at all, per §4.C.4: "if the classification
// calls for routing (plugin event, handle-generic event, session-level
// event)... if neither applies, drop with a trace." ack, keepalive,
// success, and server_info are always either correlated to a pending
// transaction (and consumed by Dispatch before this is ever consulted) or
// genuinely unsolicited noise with no subscriber — keepalive acks in
// particular arrive every K seconds and must never reach a route nothing
// drains.
func (k FrameKind) IsRoutable() bool {
	switch k {
	case KindEvent, KindError, KindDetached, KindHangup, KindTimeout, KindWebrtcUp, KindMedia, KindSlowLink, KindTrickle:
		return true
	default:
		return false
	}
}
