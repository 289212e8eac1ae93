// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable I/O buffers for callers of the socket façade. The façade itself
// never allocates or retains buffers; pools live on the caller side.
package pool
