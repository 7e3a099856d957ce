// Package diag defines the diagnostic model shared by the lexer, parser,
// transform and driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX/SYN/TRN/IO/CFG ranges), a short Message, the Primary span
// and optional Notes pointing at related locations ("variable reassigned
// here").
//
// Phases never format or print. They emit through a Reporter; BagReporter
// collects into a Bag, which the driver sorts and hands to internal/diagfmt.
//
// The leveled transform log (internal/trace) is a separate channel: it mirrors
// the debug/info/warn stream of the original babel plugin, while diagnostics
// are what `rbind check` reports and what decides the exit code.
package diag
