// Package testutil provides test helpers for dot.
//
// It contains tree builders and symlink assertions for filesystem tests,
// and FaultFS, a types.FS wrapper that injects errors for specific paths
// and operations to drive failure-path tests.
package testutil
