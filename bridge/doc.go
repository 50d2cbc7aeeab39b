// Package bridge relays engine diagnostics to a sink owned by a foreign caller.
//
// The engine reports through status.Backend, whose severities and error values
// are Go types. A foreign caller can only receive primitives: a severity code,
// a text slice and a byte slice. Backend adapts one to the other:
//
//	engine ──status.Backend──▶ bridge.Backend ──Sink──▶ foreign object
//	          Report(kind, err, format, args)      Report(Kind, string)
//	          DumpErrorLogs([]byte)                 DumpErrorLogs([]byte)
//
// # Severity codes
//
// Kind is a closed set of numeric codes shared with the C header
// (texbridge-interface.h). Translate maps status.MessageKind onto it one to one.
// The two tables are not generated from a shared definition: adding a severity
// on either side requires updating Translate, Kind and the C enum together,
// otherwise Translate panics on the unknown value.
//
// # Ownership
//
// Take transfers exclusive ownership of a Sink to a Backend for the duration of
// one invocation. Release ends that ownership and, if the sink implements
// Releaser, runs its cleanup exactly once. A Backend is not safe for concurrent
// use; the invocation that owns it is the only caller.
package bridge
