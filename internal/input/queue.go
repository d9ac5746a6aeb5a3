package input

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
)

var ErrQueueClosed = errors.New("input: queue closed")

// Frame is one landmark set from the capture pipeline. A nil Landmarks
// means the model saw no hand.
type Frame struct {
	Landmarks []models.Landmark
	Received  time.Time
	Source    string
}

// Queue carries frames from any number of capture goroutines to the single
// frame-loop consumer. When full, the oldest frame is dropped.
type Queue struct {
	frames  chan Frame
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{frames: make(chan Frame, capacity)}
}

func (q *Queue) Push(f Frame) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	for {
		select {
		case q.frames <- f:
			return nil
		default:
		}
		select {
		case <-q.frames:
			q.dropped.Add(1)
		default:
		}
	}
}

// Drain returns every queued frame in arrival order without blocking.
func (q *Queue) Drain() []Frame {
	var out []Frame
	for {
		select {
		case f, ok := <-q.frames:
			if !ok {
				return out
			}
			out = append(out, f)
		default:
			return out
		}
	}
}

func (q *Queue) Len() int {
	return len(q.frames)
}

func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.frames)
}
