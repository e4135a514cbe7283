package catalog

import (
	"sync"
	"testing"
)

func TestGateSinglePermit(t *testing.T) {
	var g Gate

	if !g.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if g.TryAcquire() {
		t.Fatal("second acquire should fail while held")
	}
	if !g.InFlight() {
		t.Fatal("gate should report in flight while held")
	}

	g.Release()
	if g.InFlight() {
		t.Fatal("gate should be idle after release")
	}
	if !g.TryAcquire() {
		t.Fatal("acquire should succeed after release")
	}
}

func TestGateConcurrentAcquire(t *testing.T) {
	var g Gate

	const attempts = 64
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	if count != 1 {
		t.Fatalf("want exactly 1 successful acquire, got %d", count)
	}
}
