/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package engine

import (
	"time"

	"github.com/0-ACS-0/dmserver-go/socket"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

// sweeper is one TimeoutSweeper: it wakes every idleTimeout/8 and
// disconnects any Establishing or Established slot in its row that has
// gone idle past idleTimeout — a stalled handshake leaks a slot exactly
// like a stalled read would.
type sweeper struct {
	idx         int
	table       *slot.Table
	handlers    socket.Handlers
	idleTimeout time.Duration
	interval    time.Duration

	w *worker

	stop chan struct{}
	done chan struct{}
}

func newSweeper(idx int, table *slot.Table, handlers socket.Handlers, idleTimeout, interval time.Duration, w *worker) *sweeper {
	return &sweeper{
		idx:         idx,
		table:       table,
		handlers:    handlers,
		idleTimeout: idleTimeout,
		interval:    interval,
		w:           w,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (sw *sweeper) run() {
	defer close(sw.done)

	if sw.interval <= 0 {
		<-sw.stop
		return
	}

	t := time.NewTicker(sw.interval)
	defer t.Stop()

	for {
		select {
		case <-sw.stop:
			return
		case <-t.C:
			sw.scan()
		}
	}
}

func (sw *sweeper) shutdown() {
	close(sw.stop)
	<-sw.done
}

func (sw *sweeper) scan() {
	now := time.Now()
	for _, s := range sw.table.Row(sw.idx) {
		if st := s.State(); st != slot.Established && st != slot.Establishing {
			continue
		}
		if s.IdleFor(now) < sw.idleTimeout {
			continue
		}
		if sw.handlers.OnTimeout != nil {
			sw.handlers.OnTimeout(&slotContext{s: s, w: sw.w})
		}
		sw.w.requestDisconnect(s, socket.ErrIdleTimeout)
	}
}
