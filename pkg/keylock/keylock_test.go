package keylock

import (
	"sync"
	"testing"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := New()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.WithLock("channel-1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	kl := New()

	kl.Lock("a")
	done := make(chan struct{})
	go func() {
		// Must not block behind the lock on "a".
		kl.WithLock("b", func() {})
		close(done)
	}()
	<-done
	kl.Unlock("a")
}

func TestKeyLock_CleansUpEntries(t *testing.T) {
	kl := New()

	kl.Lock("x")
	kl.Unlock("x")

	kl.mu.Lock()
	defer kl.mu.Unlock()
	if len(kl.locks) != 0 {
		t.Errorf("expected empty lock table, got %d entries", len(kl.locks))
	}
}

func TestKeyLock_UnlockUnheldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unlock of unheld key")
		}
	}()
	New().Unlock("nope")
}
