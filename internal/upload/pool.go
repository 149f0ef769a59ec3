/*
Package upload implements the bounded file-relay worker pool (C8): a
fixed-size set of goroutines that drain the file queue and relay each item
to its target's notification channel.

Grounded on the "look up, attempt a non-blocking send, log and drop on
failure" idiom the teacher's Room.broadcast already applies per-member in
hzchat/internal/app/chat/room.go — the pool applies the identical idiom to
a single lookup-and-send per dequeued item instead of a room's member set.
*/
package upload

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"hzchat/internal/queue"
	"hzchat/internal/registry"
)

// Pool is a fixed-size set of workers draining a FileQueue.
type Pool struct {
	queue   *queue.FileQueue
	connReg *registry.ConnRegistry
	logger  zerolog.Logger

	wg sync.WaitGroup
}

// NewPool constructs a Pool. Call Start to spawn its workers.
func NewPool(fq *queue.FileQueue, connReg *registry.ConnRegistry, logger zerolog.Logger) *Pool {
	return &Pool{queue: fq, connReg: connReg, logger: logger}
}

// Start spawns n worker goroutines. Call Wait to block until they have
// all exited (which happens once each has dequeued a sentinel).
func (p *Pool) Start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) work(id int) {
	defer p.wg.Done()

	workerLog := p.logger.With().Int("worker", id).Logger()

	for {
		item := p.queue.Dequeue()
		if item.Sentinel {
			workerLog.Info().Msg("upload worker exiting on sentinel")
			return
		}

		p.relay(workerLog, item)
	}
}

// relay looks up the target connection and writes the file header
// immediately followed by the payload as a single notify-channel send,
// so the two can never be interleaved with another producer's write to
// the same recipient. A missing target or a full notify channel is
// logged and the item dropped; neither is fatal to the worker.
func (p *Pool) relay(log zerolog.Logger, item queue.FileItem) {
	log = log.With().Str("file_id", item.ID).Logger()

	target, ok := p.connReg.Lookup(item.Target)
	if !ok {
		log.Warn().Str("target", item.Target).Str("file", item.Filename).Msg("upload target offline, dropping file")
		return
	}

	header := fmt.Sprintf("[FILE %s %d %s]\n", item.Filename, item.Size(), item.Sender)
	framed := make([]byte, 0, len(header)+len(item.Payload))
	framed = append(framed, header...)
	framed = append(framed, item.Payload...)

	if !target.TryNotify(framed) {
		log.Warn().Str("target", item.Target).Str("file", item.Filename).Msg("target notify channel full, dropping file")
		return
	}

	log.Info().Str("target", item.Target).Str("file", item.Filename).Msg("file relayed")
}
