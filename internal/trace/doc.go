// Package trace is the leveled log of the rbind transform.
//
// Every rewrite, declined hoist and piece of advice is reported as an
// Event with a Level and a source position. Events go to a Logger chosen
// by configuration:
//
//   - Nop: drops everything, the default
//   - StreamLogger: formats and writes each event immediately
//   - RingLogger: keeps the last N events in memory (tests, crash dumps)
//   - MultiLogger: fans out to several loggers
//
// # Levels
//
// Levels are ordered debug < info < warn; a logger at level L emits events
// of priority L and above. LevelOff emits nothing.
//
// # Context Propagation
//
// Loggers travel with the context:
//
//	ctx = trace.WithLogger(ctx, logger)
//	trace.FromContext(ctx).Log(&trace.Event{Level: trace.LevelWarn, Msg: "..."})
//
// The text format matches the log lines of the original babel plugin:
//
//	warn/reflective-bind: Cannot transform arrow function ... (src/a.jsx 12:4)
package trace
