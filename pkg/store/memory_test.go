package store

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoryGetSetDelete(t *testing.T) {
	m := NewMemory[string, int]()
	if _, ok := m.Get("a"); ok {
		t.Fatal("empty store returned a value")
	}
	m.Set("a", 1)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("Get = %d, %v", v, ok)
	}
	m.Delete("a")
	if m.Len() != 0 {
		t.Fatalf("Len = %d after delete", m.Len())
	}
}

func TestMemoryGetOrCreateOnce(t *testing.T) {
	m := NewMemory[string, *int]()
	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.GetOrCreate("k", func() *int {
				atomic.AddInt32(&calls, 1)
				v := 1
				return &v
			})
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Fatalf("create called %d times", calls)
	}
}
