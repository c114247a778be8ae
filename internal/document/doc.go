// Package document provides the document-side collaborators of the
// layout engine: a character buffer with extended-grapheme-cluster
// boundary lookup, and a line tree exposing logical line snapshots by
// row or by absolute position.
//
// Positions throughout are character (rune) offsets into the full
// document; byte offsets appear only in Line.ByteStart/ByteEnd, which
// exist for highlighters that work on encoded text.
//
// The package is read-only from the engine's perspective. Edits happen
// outside and are followed by Reindex before any read-side operation
// runs again.
package document
