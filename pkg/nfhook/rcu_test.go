package nfhook

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGraceDomain_SynchronizeWaitsForActiveReaders(t *testing.T) {
	g := newGraceDomain()
	token := g.Enter()

	done := make(chan struct{})
	go func() {
		g.Synchronize()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Synchronize returned while a reader was still active")
	case <-time.After(50 * time.Millisecond):
	}

	g.Exit(token)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Synchronize did not return after the reader exited")
	}
}

func TestGraceDomain_SynchronizeWithNoReadersReturnsImmediately(t *testing.T) {
	g := newGraceDomain()
	done := make(chan struct{})
	go func() {
		g.Synchronize()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Synchronize did not return with no active readers")
	}
}

func TestGraceDomain_ConcurrentEnterExitNeverUnderflows(t *testing.T) {
	g := newGraceDomain()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok := g.Enter()
				g.Exit(tok)
			}
		}()
	}
	wg.Wait()
	g.Synchronize()
	assert.True(t, true)
}
