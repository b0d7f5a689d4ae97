package monitor

import (
	"sync"
)

// dispatchQueue orders sink delivery. A turn is taken while the state lock is
// held, so sinks see ticks and acknowledgements in the order they were applied.
type dispatchQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newDispatchQueue() *dispatchQueue {
	q := &dispatchQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// take reserves the next turn; call with the state lock held
func (q *dispatchQueue) take() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.next
	q.next++
	return t
}

// wait blocks until turn t is up
func (q *dispatchQueue) wait(t uint64) {
	q.mu.Lock()
	for q.serving != t {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// done hands over to the next turn
func (q *dispatchQueue) done() {
	q.mu.Lock()
	q.serving++
	q.cond.Broadcast()
	q.mu.Unlock()
}
