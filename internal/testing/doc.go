// Package testing contains fixtures and destination-tree assertions shared
// by the integration tests of the build pipelines.
package testing

const (
	testDirPermissions  = 0o755
	testFilePermissions = 0o644
)
