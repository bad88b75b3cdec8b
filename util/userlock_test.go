package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLockSerializesSameKey(t *testing.T) {
	l := NewUserLock()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("user-1")
			counter++
			l.Unlock("user-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestUserLockReleasesEntryAfterLastUnlock(t *testing.T) {
	l := NewUserLock()
	l.Lock("user-1")
	l.Unlock("user-1")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestUserLockDifferentKeysDoNotBlock(t *testing.T) {
	l := NewUserLock()
	l.Lock("user-1")

	done := make(chan struct{})
	go func() {
		l.Lock("user-2")
		l.Unlock("user-2")
		close(done)
	}()
	<-done

	l.Unlock("user-1")
}

func TestUserLockUnlockOfUnheldKeyPanics(t *testing.T) {
	l := NewUserLock()
	assert.Panics(t, func() { l.Unlock("nobody") })
}
