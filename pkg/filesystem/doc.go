// Package filesystem provides filesystem implementations for dot.
//
// This package contains implementations of the types.FS interface.
// Test doubles live in pkg/testutil.
package filesystem
