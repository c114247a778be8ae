// Package render owns the per-line rendering pipeline. Each logical
// line that is on display has one Controller holding four stage flags
// (string, default attributes, syntax highlight, layout) over a cached
// styled-text snapshot. Stages recompute lazily and in a fixed order:
//
//	string → default attributes → syntax highlight → layout
//
// A stale string invalidates everything downstream. The string,
// attribute and layout stages always run synchronously on the
// caller's goroutine; the syntax stage may be handed to a worker by
// PrepareForDisplay, with delivery guarded by a per-request token so
// a superseded or cancelled result is dropped instead of applied.
//
// Controllers live in a Set keyed by row, created when a line enters
// the working set and released when it leaves or its line is deleted.
package render
