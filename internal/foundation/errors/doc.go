// Package errors provides the classified error primitives used across the site builder.
//
// Every failure that can abort a build maps onto one of a small set of
// categories so the CLI can report the kind alongside the message:
//
//   - CategoryConfig: missing or invalid working directory, source directories, flags
//   - CategoryParse: malformed front matter, structure files or template syntax
//   - CategoryStructure: duplicate output paths, unresolved layouts
//   - CategoryCompile: preprocessor (Sass) compilation failures
//   - CategoryFileSystem: read/write failures against the filesystem
//
// Example usage:
//
//	err := errors.ParseError("malformed front matter").
//		WithContext("path", "blog/post.md").
//		WithCause(yamlErr).
//		Build()
package errors
