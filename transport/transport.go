// Package transport defines the byte-level duplex the core speaks over,
// and the pluggable transaction-id generation strategy. Both are narrow,
// two-ish-method capability interfaces injected once at connection time,
// per the original's design note preferring dynamic dispatch over
// subclassing.
package transport

import "context"

// Transport is the trait component A describes: fire bytes at the server,
// and produce inbound frames as a channel that closes when the transport
// does. Implementations must make Send safe to call from several
// goroutines at once (the core already serializes sends itself, per §5,
// but a transport used outside the core should not assume that).
type Transport interface {
	// Send fires one outbound message at the server. It may block briefly.
	Send(ctx context.Context, data []byte) error

	// Receive returns a channel of inbound frames. The channel is closed
	// when the transport is done (connection closed, or a hard read
	// error); a closed channel with no further sends is how the core
	// detects transport-level closure (§4.D.3, §7).
	Receive() <-chan []byte

	// Close tears down the underlying connection and causes Receive's
	// channel to close.
	Close() error
}

// TransactionGenerator produces transaction ids for outbound requests. It
// is pluggable (§1's "Transaction-ID generation strategy (pluggable)") so
// callers can swap in their own correlation scheme.
type TransactionGenerator interface {
	Generate() string
}

// SessionWatcher is an optional capability a Transport may implement when
// it needs a per-session background task, as the long-poll restful
// variant does (§4.A). The connection graph type-asserts for this after a
// successful create_session and, if present, starts/stops it alongside
// the session's lifecycle.
type SessionWatcher interface {
	WatchSession(ctx context.Context, sessionID uint64) error
	StopWatching(sessionID uint64)
}
