// control_test.go: config store reload, counters and probes.
package control

import (
	"sync"
	"testing"
)

type testConfig struct {
	Trace bool
	Level int
}

func TestConfigStore_ReloadOrder(t *testing.T) {
	cs := NewConfigStore(testConfig{Level: 1})
	var seen []string
	cs.OnReload(func(c testConfig) { seen = append(seen, "a") })
	cs.OnReload(func(c testConfig) {
		seen = append(seen, "b")
		// Listeners run outside the lock.
		if cs.Snapshot() != c {
			t.Errorf("snapshot in listener = %+v, want %+v", cs.Snapshot(), c)
		}
	})

	cs.Store(testConfig{Trace: true, Level: 2})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("listener order = %v", seen)
	}

	cs.Update(func(c *testConfig) { c.Level = 3 })
	got := cs.Snapshot()
	if !got.Trace || got.Level != 3 {
		t.Errorf("after Update = %+v", got)
	}
	if len(seen) != 4 {
		t.Errorf("listeners fired %d times, want 4", len(seen))
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	if !m.Updated().IsZero() {
		t.Error("fresh registry should report zero Updated")
	}
	if m.Get("missing") != 0 {
		t.Error("untouched counter should be zero")
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				m.Inc("calls")
			}
		}()
	}
	wg.Wait()
	m.Add("bytes", 512)

	snap := m.Snapshot()
	if snap["calls"] != 1000 || snap["bytes"] != 512 {
		t.Errorf("snapshot = %v", snap)
	}
	if m.Updated().IsZero() {
		t.Error("Updated should be set after Add")
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	if _, ok := dp.Probe("platform.cpus"); !ok {
		t.Error("platform probes not registered")
	}
	dp.RegisterProbe("test.value", func() any { return "ok" })
	if v, ok := dp.Probe("test.value"); !ok || v != "ok" {
		t.Errorf("probe = %v, %v", v, ok)
	}
	dp.RegisterProbe("test.value", func() any { return 2 })
	if dp.DumpState()["test.value"] != 2 {
		t.Error("RegisterProbe should replace")
	}
	if _, ok := dp.Probe("nope"); ok {
		t.Error("unknown probe reported present")
	}
}
