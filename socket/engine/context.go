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
	"net"

	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

// slotContext is the socket.Context a callback sees: a thin, non-owning
// view over a *slot.Slot, valid only for the duration of the callback that
// received it.
type slotContext struct {
	s *slot.Slot
	w *worker
}

func (c *slotContext) LocalAddr() net.Addr  { return c.s.LocalAddr() }
func (c *slotContext) RemoteAddr() net.Addr { return c.s.RemoteAddr() }
func (c *slotContext) TLS() bool            { return c.s.TLSEstablished() }

// Location exposes the slot's stable (worker, slot) handle. It is not part
// of the socket.Context interface; callers that need it (e.g. to build a
// Broadcast exclusion) type-assert for it explicitly.
func (c *slotContext) Location() slot.Location { return c.s.Location() }

func (c *slotContext) Send(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	c.s.QueuePending(cp)
	return nil
}

func (c *slotContext) Close() error {
	c.w.requestDisconnect(c.s, nil)
	return nil
}
