// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, counters and debug introspection for thruster.
//
// Provides concurrent-safe state handling primitives including:
//   - Typed config snapshots with synchronous reload listeners
//   - Named call counters
//   - Debug probe registration and state export
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
