// Package types defines the shared interfaces and data types used
// across dot's packages.
package types
