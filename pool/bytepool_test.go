package pool_test

import (
	"testing"

	"github.com/gcds/thruster/pool"
)

func TestBytePoolSize(t *testing.T) {
	bp := pool.NewBytePool(128)
	b := bp.Get()
	if len(b) != 128 {
		t.Fatalf("len = %d, want 128", len(b))
	}
	bp.Put(b[:10])
	b2 := bp.Get()
	if len(b2) != 128 {
		t.Errorf("reused buffer len = %d, want 128", len(b2))
	}
}

func TestBytePoolDropsShortBuffers(t *testing.T) {
	bp := pool.NewBytePool(64)
	bp.Put(make([]byte, 8))
	for i := 0; i < 4; i++ {
		if b := bp.Get(); len(b) != 64 {
			t.Fatalf("len = %d, want 64", len(b))
		}
	}
}
