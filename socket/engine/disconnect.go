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
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

// requestDisconnect is the single, idempotent teardown path every ending shares:
// peer close, read/write error, idle timeout, handshake failure, or an
// explicit Disconnect call. Calling it twice on an already-Closed or
// Standby slot is a no-op.
func (w *worker) requestDisconnect(s *slot.Slot, cause error) {
	cur := s.State()
	if cur == slot.Standby || cur == slot.Closed {
		return
	}

	wasLive := cur == slot.Established || cur == slot.Establishing
	s.MarkClosed()
	_ = s.CloseConn()

	if wasLive {
		w.table.DecLive(w.idx)
	}

	if w.handlers.OnDisconnect != nil {
		w.handlers.OnDisconnect(&slotContext{s: s, w: w}, cause)
	}

	s.Reset()
}
