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
	"errors"
	"io"
	"net"
	"time"

	"github.com/0-ACS-0/dmserver-go/socket"
	"github.com/0-ACS-0/dmserver-go/socket/config"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

// worker is one IoWorker: a single goroutine that owns one row of the
// SlotTable and, every tick, takes one handshake/read/write step per slot
// using short per-syscall deadlines.
//
// Go's crypto/tls has no non-blocking want-read/want-write handshake API
// the way OpenSSL's BIO layer does, so a literal epoll-driven, manually
// multiplexed TLS record loop cannot be ported. This tick-and-deadline loop
// is the substitute: SetReadDeadline/SetWriteDeadline turn each blocking
// call into a bounded one, and a deadline timeout is treated exactly like
// WANT_READ/WANT_WRITE rather than as a failure.
type worker struct {
	idx      int
	table    *slot.Table
	client   config.Client
	handlers socket.Handlers
	tlsCfg   *tls.Config

	tickInterval time.Duration

	stop chan struct{}
	done chan struct{}
}

func newWorker(idx int, table *slot.Table, client config.Client, handlers socket.Handlers, tlsCfg *tls.Config) *worker {
	return &worker{
		idx:          idx,
		table:        table,
		client:       client,
		handlers:     handlers,
		tlsCfg:       tlsCfg,
		tickInterval: client.IOTimeout,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (w *worker) run() {
	defer close(w.done)

	t := time.NewTicker(w.tickInterval)
	defer t.Stop()

	for {
		select {
		case <-w.stop:
			for _, s := range w.table.Row(w.idx) {
				if st := s.State(); st == slot.Establishing || st == slot.Established {
					w.requestDisconnect(s, nil)
				}
			}
			return
		case <-t.C:
			w.scan()
		}
	}
}

func (w *worker) shutdown() {
	close(w.stop)
	<-w.done
}

func (w *worker) scan() {
	for _, s := range w.table.Row(w.idx) {
		switch s.State() {
		case slot.Establishing:
			w.stepHandshake(s)
		case slot.Established:
			w.stepRead(s)
			w.stepWrite(s)
		}
	}
}

func (w *worker) stepHandshake(s *slot.Slot) {
	tc, ok := s.Conn().(*tls.Conn)
	if !ok {
		w.requestDisconnect(s, socket.ErrTlsHandshake)
		return
	}

	_ = tc.SetDeadline(time.Now().Add(w.client.IOTimeout))
	err := tc.Handshake()
	if err == nil {
		s.MarkEstablished()
		if w.handlers.OnConnect != nil {
			w.handlers.OnConnect(&slotContext{s: s, w: w})
		}
		return
	}

	if isTransient(err) {
		return
	}

	if w.handlers.OnError != nil {
		w.handlers.OnError(&slotContext{s: s, w: w}, socket.ErrTlsHandshake)
	}
	w.requestDisconnect(s, socket.ErrTlsHandshake)
}

func (w *worker) stepRead(s *slot.Slot) {
	conn := s.Conn()
	// One byte of capacity is always reserved, matching the NUL-terminated
	// read buffer's off-by-one: a read never fills the buffer to capacity.
	room := w.client.ReadBufferSize - 1
	if room < 0 {
		room = 0
	}
	buf := make([]byte, room)

	s.LockRead()
	_ = conn.SetReadDeadline(time.Now().Add(w.client.IOTimeout))
	n, err := conn.Read(buf)

	if n > 0 {
		s.Touch()
		if w.handlers.OnReceive != nil {
			// Held across the callback on purpose: mirrors this engine's
			// documented single-reader-at-a-time contract per slot.
			w.handlers.OnReceive(&slotContext{s: s, w: w}, buf[:n])
		}
	}
	s.UnlockRead()

	if err != nil && !isTransient(err) {
		w.requestDisconnect(s, classifyReadErr(err))
	}
}

func (w *worker) stepWrite(s *slot.Slot) {
	if !s.HasPending() {
		return
	}

	conn := s.Conn()
	b := s.TakePending()
	s.LockWrite()
	_ = conn.SetWriteDeadline(time.Now().Add(w.client.IOTimeout))
	n, err := conn.Write(b)
	s.UnlockWrite()

	if n > 0 {
		s.Touch()
	}
	if n < len(b) {
		s.QueuePending(b[n:])
	}
	if n > 0 && w.handlers.OnSend != nil {
		w.handlers.OnSend(&slotContext{s: s, w: w}, n)
	}

	if err != nil && !isTransient(err) {
		w.requestDisconnect(s, socket.ErrFatal)
	}
}

// isTransient reports whether err is just the per-tick deadline elapsing,
// i.e. this engine's WANT_READ/WANT_WRITE equivalent.
func isTransient(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func classifyReadErr(err error) error {
	if errors.Is(err, io.EOF) {
		return socket.ErrPeerClosed
	}
	return socket.ErrFatal
}
