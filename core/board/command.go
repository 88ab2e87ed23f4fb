package board

import "sync"

type cmdKind int

const (
	cmdSend cmdKind = iota
	cmdSetPort
	cmdTerminate
)

// command is the tagged union consumed by the Sender worker. SEND carries
// the packed wire string, encoded by the worker; SET_PORT carries the raw
// address string, resolved on the worker so resolver failures never reach
// the caller.
type command struct {
	kind    cmdKind
	payload string
	port    string
}

// cmdQueue is an unbounded multi-producer single-consumer FIFO with
// queue-join accounting: Wait blocks until every accepted command has been
// fully processed, including the one currently executing.
type cmdQueue struct {
	mu         sync.Mutex
	cond       *sync.Cond
	items      []command
	unfinished int
}

func newCmdQueue() *cmdQueue {
	q := &cmdQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends a command. It never blocks the caller.
func (q *cmdQueue) Put(c command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.unfinished++
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Replace discards every pending command and appends c in the same critical
// section. Discarded commands count as done for Wait purposes.
func (q *cmdQueue) Replace(c command) {
	q.mu.Lock()
	q.unfinished -= len(q.items)
	q.items = q.items[:0]
	q.items = append(q.items, c)
	q.unfinished++
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Get blocks until a command is available and removes it from the queue.
func (q *cmdQueue) Get() command {
	q.mu.Lock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	c := q.items[0]
	q.items = q.items[1:]
	q.mu.Unlock()
	return c
}

// TaskDone marks one previously fetched command as processed.
func (q *cmdQueue) TaskDone() {
	q.mu.Lock()
	q.unfinished--
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Wait blocks until every command accepted so far has been processed.
func (q *cmdQueue) Wait() {
	q.mu.Lock()
	for q.unfinished > 0 {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// Len returns the number of commands not yet fetched by the consumer.
func (q *cmdQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
