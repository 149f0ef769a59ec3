package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryEnqueueRespectsCapacity(t *testing.T) {
	q := New(2)

	require.True(t, q.TryEnqueue(FileItem{Filename: "a"}))
	require.True(t, q.TryEnqueue(FileItem{Filename: "b"}))
	assert.True(t, q.IsFull())
	assert.False(t, q.TryEnqueue(FileItem{Filename: "c"}))
}

func TestDequeueIsStrictFIFO(t *testing.T) {
	q := New(3)

	for _, name := range []string{"one", "two", "three"} {
		require.True(t, q.TryEnqueue(FileItem{Filename: name}))
	}

	for _, want := range []string{"one", "two", "three"} {
		assert.Equal(t, want, q.Dequeue().Filename)
	}
}

func TestEnqueueBlocksWhileFullThenUnblocksOnDequeue(t *testing.T) {
	q := New(1)
	require.True(t, q.TryEnqueue(FileItem{Filename: "first"}))

	done := make(chan struct{})
	go func() {
		q.Enqueue(FileItem{Filename: "second"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Enqueue returned before the queue had room")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, "first", q.Dequeue().Filename)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue did not unblock after Dequeue freed a slot")
	}

	assert.Equal(t, "second", q.Dequeue().Filename)
}

func TestSentinelShutsDownWorkers(t *testing.T) {
	q := New(5)
	const workers = 3

	for i := 0; i < workers; i++ {
		q.Sentinel()
	}

	var wg sync.WaitGroup
	seen := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := q.Dequeue()
			seen <- item.Sentinel
		}()
	}

	wg.Wait()
	close(seen)

	for sentinel := range seen {
		assert.True(t, sentinel)
	}
}

func TestDestroyIsIdempotentAndDrains(t *testing.T) {
	q := New(4)
	q.TryEnqueue(FileItem{Filename: "leftover", Payload: []byte("data")})

	q.Destroy()
	q.Destroy()

	assert.Equal(t, 0, q.Len())
}
