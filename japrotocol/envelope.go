package japrotocol

// Envelope is the outbound request builder. It mirrors the teacher's
// newRequest(method) map[string]interface{} convention: a loosely typed
// map is simplest to extend with session_id/handle_id/apisecret/jsep
// without a combinatorial struct explosion, and it is what the wire codec
// (encoding/json) wants to marshal anyway.
type Envelope map[string]interface{}

// NewEnvelope builds the minimal request for verb, to be completed by the
// caller (session_id, handle_id, apisecret, body, jsep) before it is
// handed to a request primitive, which stamps in "transaction".
func NewEnvelope(verb Verb) Envelope {
	return Envelope{"janus": string(verb)}
}

// WithSession stamps session_id, matching §4's envelope shape.
func (e Envelope) WithSession(sessionID uint64) Envelope {
	e["session_id"] = sessionID
	return e
}

// WithHandle stamps handle_id.
func (e Envelope) WithHandle(handleID uint64) Envelope {
	e["handle_id"] = handleID
	return e
}

// WithAPISecret stamps apisecret, if non-empty.
func (e Envelope) WithAPISecret(secret string) Envelope {
	if secret != "" {
		e["apisecret"] = secret
	}
	return e
}

// WithBody stamps body, the opaque plugin payload, if non-nil.
func (e Envelope) WithBody(body interface{}) Envelope {
	if body != nil {
		e["body"] = body
	}
	return e
}

// WithJsep stamps jsep, the opaque session-description passthrough, if
// non-nil.
func (e Envelope) WithJsep(jsep interface{}) Envelope {
	if jsep != nil {
		e["jsep"] = jsep
	}
	return e
}

// WithPlugin stamps the plugin name, used only by attach requests.
func (e Envelope) WithPlugin(plugin string) Envelope {
	e["plugin"] = plugin
	return e
}

// WithField stamps an arbitrary extra field (candidate, candidates, and
// similar plugin-specific request members).
func (e Envelope) WithField(key string, value interface{}) Envelope {
	e[key] = value
	return e
}

// Transaction returns the stamped transaction id, if any.
func (e Envelope) Transaction() string {
	txn, _ := e["transaction"].(string)
	return txn
}
