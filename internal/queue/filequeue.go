/*
Package queue implements the bounded file-relay queue (spec §4.3): a
fixed-capacity FIFO of FileItem values with blocking enqueue/dequeue and a
non-blocking fullness probe.

Grounded on the channel-as-bounded-queue idiom the teacher already uses for
Room.broadcast/register/unregister (a buffered channel drained by a single
select loop, with a non-blocking select/default variant for "try" semantics)
in chat/room.go — generalized here into a standalone producer/consumer type
with a real blocking Enqueue/Dequeue pair.
*/
package queue

import "sync"

// FileItem is a single pending file relay. Ownership transfers on every
// hand-off: the producer allocates Payload, Enqueue transfers it to the
// queue, Dequeue transfers it to the worker that called it, and that worker
// is responsible for letting Payload become garbage after relay or drop.
type FileItem struct {
	// ID is an opaque correlation ID stamped on enqueue, carried through
	// relay logging only (never sent on the wire).
	ID string

	// Filename is the basename offered by the sender (no path components).
	Filename string

	// Sender is the handle of the uploading client.
	Sender string

	// Target is the handle of the intended recipient.
	Target string

	// Payload is the file's raw bytes.
	Payload []byte

	// Sentinel marks a shutdown marker rather than real work; workers exit
	// on the first sentinel they dequeue instead of relaying it.
	Sentinel bool
}

// Size returns the payload length.
func (f FileItem) Size() int {
	return len(f.Payload)
}

// FileQueue is a fixed-capacity FIFO of FileItem values, safe for any
// number of concurrent producers and consumers.
type FileQueue struct {
	items chan FileItem

	destroyOnce sync.Once
}

// New constructs a FileQueue with the given capacity.
func New(capacity int) *FileQueue {
	return &FileQueue{items: make(chan FileItem, capacity)}
}

// Enqueue blocks while the queue is full; on return the item is owned by
// the queue.
func (q *FileQueue) Enqueue(item FileItem) {
	q.items <- item
}

// TryEnqueue is the non-blocking variant of Enqueue. It returns false iff
// the queue was full.
func (q *FileQueue) TryEnqueue(item FileItem) bool {
	select {
	case q.items <- item:
		return true
	default:
		return false
	}
}

// Dequeue blocks while the queue is empty, transferring ownership of the
// returned item (including its payload buffer) to the caller.
func (q *FileQueue) Dequeue() FileItem {
	return <-q.items
}

// IsFull is a non-blocking snapshot probe. The result is informational only
// and is not a guarantee for a subsequent Enqueue/TryEnqueue call.
func (q *FileQueue) IsFull() bool {
	return len(q.items) >= cap(q.items)
}

// Len reports the number of items currently buffered.
func (q *FileQueue) Len() int {
	return len(q.items)
}

// Cap reports the queue's fixed capacity.
func (q *FileQueue) Cap() int {
	return cap(q.items)
}

// Sentinel enqueues one shutdown marker, blocking while the queue is full
// exactly like Enqueue.
func (q *FileQueue) Sentinel() {
	q.Enqueue(FileItem{Sentinel: true})
}

// Destroy drains and discards any items still buffered, releasing their
// payloads. It is safe to call more than once.
func (q *FileQueue) Destroy() {
	q.destroyOnce.Do(func() {
		for {
			select {
			case <-q.items:
			default:
				return
			}
		}
	})
}
