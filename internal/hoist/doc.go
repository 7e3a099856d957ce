// Package hoist decides whether an inline arrow function can be lifted to
// module level and performs the rewrite.
//
// Analyze walks the closure and collects the outer variables it captures
// and the `this.props`/`this.state` accesses that can be turned into
// parameters. Normalize replaces those accesses with fresh identifiers,
// Hoist moves the body into a top-level function declaration and replaces
// the closure with a call to the bind helper. RewriteBind handles the
// unrelated `fn.bind(ctx, ...)` rewrite.
//
// All functions mutate the tree in place. The symbol table must be rebuilt
// by the caller after every Hoist before analysing the next closure.
package hoist
