// Package build composes the page, asset and Sass pipelines from the
// project configuration. Every execution path of the CLI routes through
// Service so stage order and clean-up rules live in one place.
package build
