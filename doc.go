// Package jarust is a Go client for the Janus WebRTC gateway: it owns the
// session/handle object graph, the transaction correlator, the event
// router, and the keep-alive machinery that let higher layers write
// ordinary request/response code against Janus's inherently asynchronous,
// interleaved wire protocol.
//
// Connect opens a connection, Connection.CreateSession opens a session,
// and Session.Attach attaches a plugin handle. Plugin-specific
// request/event shapes live under jarust-go/plugins/...; this package only
// knows about the generic envelope.
package jarust
