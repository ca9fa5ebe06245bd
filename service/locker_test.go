// service/locker_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocker_DisjointPairsDoNotBlock(t *testing.T) {
	locker := newAccountLocker()

	release, err := locker.acquire(context.Background(), "A", "B")
	assert.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	releaseCD, err := locker.acquire(ctx, "C", "D")
	assert.NoError(t, err, "disjoint pair must not wait on A/B")
	releaseCD()
}

func TestAccountLocker_SharedAccountTimesOut(t *testing.T) {
	locker := newAccountLocker()

	release, err := locker.acquire(context.Background(), "A", "B")
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.acquire(ctx, "B", "C")
	assert.Equal(t, ErrLockTimeout, err)

	// A timed-out acquire must not leave partial locks behind: C is free.
	ctxC, cancelC := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelC()
	releaseC, err := locker.acquire(ctxC, "C")
	assert.NoError(t, err)
	releaseC()

	release()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	release2, err := locker.acquire(ctx2, "B", "C")
	assert.NoError(t, err, "locks must be reacquirable after release")
	release2()
}

func TestAccountLocker_OppositeOrderDoesNotDeadlock(t *testing.T) {
	locker := newAccountLocker()
	done := make(chan error, 2)

	for i := 0; i < 2; i++ {
		ids := []string{"A", "B"}
		if i == 1 {
			ids = []string{"B", "A"}
		}
		go func(ids []string) {
			for j := 0; j < 100; j++ {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				release, err := locker.acquire(ctx, ids...)
				cancel()
				if err != nil {
					done <- err
					return
				}
				release()
			}
			done <- nil
		}(ids)
	}

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("locker deadlocked on opposite acquisition order")
		}
	}
}
