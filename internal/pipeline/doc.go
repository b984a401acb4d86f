// Package pipeline runs an ordered list of stages over a virtual file tree.
//
// A Driver loads the source tree, applies each Stage in order, and flushes the
// resulting tree to the destination directory. The first failing stage stops
// the build; nothing is flushed and the BuildResult names the stage together
// with the classified cause.
package pipeline
