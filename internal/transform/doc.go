// Package transform drives the reflective-bind rewrite over one parsed file.
//
// Unit walks the tree once, depth-first and top-down. Every expr.bind(...)
// call becomes a call of the imported helper. Arrow functions reachable
// from a JSX expression container are handed to package hoist: when the
// analysis allows it the arrow moves to a top-level function declaration
// and its slot receives helper(hoisted, this, captured..., accesses...).
// Hoisted bodies are walked again afterwards so nested closures are found
// outer-to-inner. One helper import is added when anything was rewritten.
//
// A file containing the line
//
//	// @no-reflective-bind-babel
//
// is left alone.
package transform
