// Package vfs holds the in-memory file tree a build operates on.
//
// A Tree maps slash-separated relative output paths to Files. Every stage of a
// build borrows the same Tree, mutates it in place and hands it back; only
// Flush writes to disk. Iteration is always in lexical path order so builds
// are deterministic.
package vfs
