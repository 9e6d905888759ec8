// Package input provides the text sources that grammars match against.
//
// A Source yields runes one at a time and hands out cheap position marks
// that the engine uses to backtrack. Two concrete sources are provided: an
// in-memory buffer over a string or byte slice, and a buffering reader that
// adapts any io.Reader while keeping marks restorable.
package input
