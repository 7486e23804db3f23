/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package logger

import (
	"sync"
	"time"

	"github.com/0-ACS-0/dmserver-go/logger/config"
)

// mpscQueue is a fixed-capacity ring buffer shared by any number of producer
// goroutines and drained by exactly one consumer. push never performs
// backend I/O, so a producer is never stalled beyond what the configured
// overflow policy allows. The socket engine packages do not log through it.
type mpscQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf      []entry
	head     int
	count    int
	capacity int

	policy  config.OverflowPolicy
	wait    time.Duration
	closed  bool
}

func newQueue(capacity int, policy config.OverflowPolicy, wait time.Duration) *mpscQueue {
	if capacity <= 0 {
		capacity = config.DefaultQueueCapacity
	}

	q := &mpscQueue{
		buf:      make([]entry, capacity),
		capacity: capacity,
		policy:   policy,
		wait:     wait,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)

	return q
}

// push enqueues e, applying the configured overflow policy when the queue is
// full. It reports whether the entry was actually queued.
func (q *mpscQueue) push(e entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	for q.count == q.capacity {
		switch q.policy {
		case config.OverflowDropNewest:
			return false

		case config.OverflowOverwriteOldest:
			q.head = (q.head + 1) % q.capacity
			q.count--

		case config.OverflowWaitForever:
			q.notFull.Wait()
			if q.closed {
				return false
			}

		case config.OverflowWaitTimeout:
			if !q.waitNotFullTimeout(q.wait) {
				return false
			}
			if q.closed {
				return false
			}

		default:
			return false
		}
	}

	tail := (q.head + q.count) % q.capacity
	q.buf[tail] = e
	q.count++
	q.notEmpty.Signal()

	return true
}

// waitNotFullTimeout waits on notFull until space frees up or d elapses.
// Caller must hold q.mu.
func (q *mpscQueue) waitNotFullTimeout(d time.Duration) bool {
	deadline := time.Now().Add(d)

	for q.count == q.capacity {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}

		timer := time.AfterFunc(remaining, func() {
			q.mu.Lock()
			q.notFull.Broadcast()
			q.mu.Unlock()
		})
		q.notFull.Wait()
		timer.Stop()
	}

	return true
}

// pop blocks until an entry is available or the queue is closed and drained.
func (q *mpscQueue) pop() (entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}

	if q.count == 0 {
		return entry{}, false
	}

	e := q.buf[q.head]
	q.head = (q.head + 1) % q.capacity
	q.count--
	q.notFull.Signal()

	return e, true
}

// close marks the queue closed: blocked producers are released (reporting
// drop) and pop drains remaining entries before reporting closed.
func (q *mpscQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
