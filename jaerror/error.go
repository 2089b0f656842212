// Package jaerror carries the error taxonomy the core surfaces to callers.
//
// Kinds mirror a Janus client's external error contract: transport
// failures, protocol-level mistakes, and the Janus/plugin error codes
// reflected back from the gateway. Nothing in this package panics; every
// constructor just builds a value.
package jaerror

import "fmt"

// Sentinel errors a caller can match with errors.Is. Each one corresponds
// to a terminal failure mode of a request primitive or the transport.
var (
	ErrIncompletePacket   = fmt.Errorf("jarust: incomplete packet")
	ErrTransportNotOpened = fmt.Errorf("jarust: transport is not opened")
	ErrSendError          = fmt.Errorf("jarust: send error")
	ErrUnexpectedResponse = fmt.Errorf("jarust: unexpected response")
	ErrRequestTimeout     = fmt.Errorf("jarust: request timeout")
)

// InvalidJanusRequest is returned when the core refuses to build or send a
// malformed outbound envelope.
type InvalidJanusRequest struct {
	Reason string
}

func (e *InvalidJanusRequest) Error() string {
	return fmt.Sprintf("jarust: invalid janus request: %s", e.Reason)
}

// PluginResponseError wraps a plugin-level {error_code, error} pair found
// inside plugindata.data.
type PluginResponseError struct {
	ErrorCode uint16
	ErrorText string
}

func (e *PluginResponseError) Error() string {
	return fmt.Sprintf("jarust: plugin response error {error_code: %d, error: %s}", e.ErrorCode, e.ErrorText)
}

// JanusErrorCode is the numeric code a Janus core or plugin reports inside
// a {"janus":"error"} frame, mapped onto the named taxonomy from the
// gateway's REST documentation.
type JanusErrorCode int

// Named codes. Anything not listed here round-trips through Other.
const (
	CodeUnauthorized         JanusErrorCode = 403
	CodeUnauthorizedPlugin   JanusErrorCode = 405
	CodeTransportSpecific    JanusErrorCode = 450
	CodeMissingRequest       JanusErrorCode = 452
	CodeUnknownRequest       JanusErrorCode = 453
	CodeInvalidJSON          JanusErrorCode = 454
	CodeInvalidJSONObject    JanusErrorCode = 455
	CodeMissingMandatory     JanusErrorCode = 456
	CodeInvalidRequestPath   JanusErrorCode = 457
	CodeSessionNotFound      JanusErrorCode = 458
	CodeHandleNotFound       JanusErrorCode = 459
	CodePluginNotFound       JanusErrorCode = 460
	CodePluginAttach         JanusErrorCode = 461
	CodePluginMessage        JanusErrorCode = 462
	CodePluginDetach         JanusErrorCode = 463
	CodeJsepUnknownType      JanusErrorCode = 464
	CodeJsepInvalidSdp       JanusErrorCode = 465
	CodeTrickleInvalidStream JanusErrorCode = 466
	CodeInvalidElementType   JanusErrorCode = 467
	CodeSessionConflict      JanusErrorCode = 468
	CodeUnexpectedAnswer     JanusErrorCode = 469
	CodeTokenNotFound        JanusErrorCode = 470
	CodeWebrtcState          JanusErrorCode = 471
	CodeNotAcceptingSessions JanusErrorCode = 472
	CodeUnknown              JanusErrorCode = 490
)

var codeNames = map[JanusErrorCode]string{
	CodeUnauthorized:         "Unauthorized",
	CodeUnauthorizedPlugin:   "UnauthorizedPlugin",
	CodeTransportSpecific:    "TransportSpecific",
	CodeMissingRequest:       "MissingRequest",
	CodeUnknownRequest:       "UnknownRequest",
	CodeInvalidJSON:          "InvalidJson",
	CodeInvalidJSONObject:    "InvalidJsonObject",
	CodeMissingMandatory:     "MissingMandatoryElement",
	CodeInvalidRequestPath:   "InvalidRequestPath",
	CodeSessionNotFound:      "SessionNotFound",
	CodeHandleNotFound:       "HandleNotFound",
	CodePluginNotFound:       "PluginNotFound",
	CodePluginAttach:         "PluginAttach",
	CodePluginMessage:        "PluginMessage",
	CodePluginDetach:         "PluginDetach",
	CodeJsepUnknownType:      "JsepUnknownType",
	CodeJsepInvalidSdp:       "JsepInvalidSdp",
	CodeTrickleInvalidStream: "TrickleInvalidStream",
	CodeInvalidElementType:   "InvalidElementType",
	CodeSessionConflict:      "SessionConflict",
	CodeUnexpectedAnswer:     "UnexpectedAnswer",
	CodeTokenNotFound:        "TokenNotFound",
	CodeWebrtcState:          "WebrtcState",
	CodeNotAcceptingSessions: "NotAcceptingSessions",
	CodeUnknown:              "Unknown",
}

// Name returns the taxonomy name for a known code, or "Other" for any
// code outside the documented range.
func (c JanusErrorCode) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Other"
}

func (c JanusErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return fmt.Sprintf("%d (%s)", int(c), name)
	}
	return fmt.Sprintf("%d (Other)", int(c))
}

// JanusCodeFromInt maps a raw numeric code onto the named taxonomy,
// falling back to JanusErrorCode(code) with Name()=="Other" for anything
// undocumented.
func JanusCodeFromInt(code int) JanusErrorCode {
	return JanusErrorCode(code)
}

// JanusError is the translated form of a {"janus":"error"} frame at
// connection, session or handle scope.
type JanusError struct {
	Code   JanusErrorCode
	Reason string
}

func (e *JanusError) Error() string {
	return fmt.Sprintf("jarust: janus error {code: %s, reason: %s}", e.Code, e.Reason)
}

// Is lets callers match on a specific code: errors.Is(err, &jaerror.JanusError{Code: jaerror.CodeSessionNotFound}).
func (e *JanusError) Is(target error) bool {
	other, ok := target.(*JanusError)
	if !ok {
		return false
	}
	if other.Code != 0 && other.Code != e.Code {
		return false
	}
	return true
}
