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
	"crypto/tls"
	"net"
	"time"

	"github.com/0-ACS-0/dmserver-go/socket"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

// acceptTick bounds each Accept call so the Acceptor can notice shutdown
// without a dedicated cancellation path through net.Listener.
const acceptTick = 200 * time.Millisecond

// acceptor is the single goroutine owning the listener: it places every
// accepted connection on the least-loaded worker's first free slot, and
// drops the connection if the whole table is full.
type acceptor struct {
	listener net.Listener
	table    *slot.Table
	workers  []*worker
	tlsCfg   *tls.Config
	handlers socket.Handlers

	stop chan struct{}
	done chan struct{}
}

func newAcceptor(listener net.Listener, table *slot.Table, workers []*worker, tlsCfg *tls.Config, handlers socket.Handlers) *acceptor {
	return &acceptor{
		listener: listener,
		table:    table,
		workers:  workers,
		tlsCfg:   tlsCfg,
		handlers: handlers,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (a *acceptor) run() {
	defer close(a.done)

	type deadliner interface {
		SetDeadline(time.Time) error
	}

	dl, hasDeadline := a.listener.(deadliner)

	for {
		select {
		case <-a.stop:
			return
		default:
		}

		if hasDeadline {
			_ = dl.SetDeadline(time.Now().Add(acceptTick))
		}

		conn, err := a.listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-a.stop:
				return
			default:
				continue
			}
		}

		a.place(conn)
	}
}

func (a *acceptor) shutdown() {
	close(a.stop)
	<-a.done
}

func (a *acceptor) place(conn net.Conn) {
	wi := a.table.LeastLoadedWorker()
	s := a.table.FirstFreeSlot(wi)
	if s == nil {
		_ = conn.Close()
		return
	}

	if a.tlsCfg != nil {
		s.Bind(conn, true)
		s.BindTLS(tls.Server(conn, a.tlsCfg))
		a.table.IncLive(wi)
		return
	}

	s.Bind(conn, false)
	a.table.IncLive(wi)
	if a.handlers.OnConnect != nil {
		a.handlers.OnConnect(&slotContext{s: s, w: a.workers[wi]})
	}
}
