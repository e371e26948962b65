package session

import "sync"

// ActionQueue buffers outbound frames produced by callbacks until the client
// flushes them. Frames only leave the queue through ConsumeAndClear.
type ActionQueue struct {
	mu     sync.Mutex
	frames []string
}

func NewActionQueue() *ActionQueue {
	return &ActionQueue{}
}

func (q *ActionQueue) Enqueue(frames ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.frames = append(q.frames, frames...)
}

// ConsumeAndClear returns everything queued so far and empties the queue.
func (q *ActionQueue) ConsumeAndClear() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	frames := q.frames
	q.frames = nil
	return frames
}

func (q *ActionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.frames)
}
