// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

// BytePool hands out fixed-size byte slices for Read/Recv calls.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of size-byte buffers.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return bp
}

// Size returns the length of every buffer handed out.
func (bp *BytePool) Size() int { return bp.size }

// Get returns a buffer of exactly Size bytes. Contents are undefined.
func (bp *BytePool) Get() []byte {
	return (*bp.p.Get().(*[]byte))[:bp.size]
}

// Put returns buf to the pool. Buffers with less capacity than Size are
// dropped.
func (bp *BytePool) Put(buf []byte) {
	if cap(buf) < bp.size {
		return
	}
	buf = buf[:bp.size]
	bp.p.Put(&buf)
}
