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

package slot

import (
	"crypto/tls"
	"net"
	"sync"
	"time"
)

// canonicalAddr rewrites an IPv4-mapped IPv6 TCPAddr ("::ffff:a.b.c.d")
// into plain IPv4, so a dual-stack TCP6 listener reports peers the way a
// caller expects regardless of which stack the kernel chose.
func canonicalAddr(a net.Addr) net.Addr {
	tcp, ok := a.(*net.TCPAddr)
	if !ok || tcp.IP == nil {
		return a
	}
	if v4 := tcp.IP.To4(); v4 != nil && tcp.IP.To16() != nil && len(tcp.IP) == net.IPv6len {
		return &net.TCPAddr{IP: v4, Port: tcp.Port, Zone: tcp.Zone}
	}
	return a
}

// Slot is one cell of the SlotTable: a reusable connection handle. It is
// never freed, only reset between Standby and Established.
type Slot struct {
	loc Location

	mu    sync.Mutex
	state State

	conn       net.Conn
	tlsConn    *tls.Conn
	tlsEnabled bool

	readMu  sync.Mutex
	writeMu sync.Mutex

	pending []byte // bytes queued by Send, awaiting an IoWorker write tick

	lastActivity time.Time
	local        net.Addr
	remote       net.Addr
}

func New(loc Location) *Slot {
	return &Slot{loc: loc, state: Standby}
}

func (s *Slot) Location() Location {
	return s.loc
}

func (s *Slot) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Slot) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// MarkEstablished completes the Establishing -> Established transition
// once a TLS handshake finishes.
func (s *Slot) MarkEstablished() {
	s.setState(Established)
}

// MarkClosed begins teardown; the owning disconnect routine resets the
// slot back to Standby once cleanup finishes.
func (s *Slot) MarkClosed() {
	s.setState(Closed)
}

// Bind claims a Standby slot for a freshly accepted connection. tlsEnabled
// routes the slot through Establishing before Established.
func (s *Slot) Bind(conn net.Conn, tlsEnabled bool) {
	s.conn = conn
	s.tlsConn = nil
	s.tlsEnabled = tlsEnabled
	s.local = canonicalAddr(conn.LocalAddr())
	s.remote = canonicalAddr(conn.RemoteAddr())
	s.lastActivity = time.Now()
	s.pending = s.pending[:0]

	if tlsEnabled {
		s.setState(Establishing)
	} else {
		s.setState(Established)
	}
}

// BindTLS records the *tls.Conn wrapping the raw connection once the
// Acceptor has constructed it; the handshake itself is driven later by an
// IoWorker tick.
func (s *Slot) BindTLS(tc *tls.Conn) {
	s.tlsConn = tc
}

// Reset idles the slot back to Standby, ready for reuse.
func (s *Slot) Reset() {
	s.conn = nil
	s.tlsConn = nil
	s.tlsEnabled = false
	s.local = nil
	s.remote = nil
	s.pending = nil
	s.setState(Standby)
}

// Conn returns the connection to perform I/O on: the *tls.Conn once one has
// been bound, otherwise the raw net.Conn.
func (s *Slot) Conn() net.Conn {
	if s.tlsConn != nil {
		return s.tlsConn
	}
	return s.conn
}

// CloseConn closes whichever connection is active (the TLS conn if one was
// bound, otherwise the raw connection); closing the TLS conn also closes
// the net.Conn it wraps.
func (s *Slot) CloseConn() error {
	if s.tlsConn != nil {
		return s.tlsConn.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Slot) TLSEnabled() bool {
	return s.tlsEnabled
}

func (s *Slot) TLSEstablished() bool {
	return s.tlsConn != nil && s.State() == Established
}

func (s *Slot) LocalAddr() net.Addr  { return s.local }
func (s *Slot) RemoteAddr() net.Addr { return s.remote }

func (s *Slot) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Slot) IdleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity)
}

// QueuePending appends b to the outbound buffer an IoWorker drains on its
// next write-capable tick. Safe to call from a callback.
func (s *Slot) QueuePending(b []byte) {
	s.writeMu.Lock()
	s.pending = append(s.pending, b...)
	s.writeMu.Unlock()
}

func (s *Slot) HasPending() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return len(s.pending) > 0
}

// TakePending hands the engine the full outbound buffer and clears it. The
// caller is responsible for requeueing any unwritten remainder via
// QueuePending on a short write.
func (s *Slot) TakePending() []byte {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	b := s.pending
	s.pending = nil
	return b
}

// LockRead and LockWrite are independent: the engine never holds both at
// once for the same slot, since a handshake step needs only one direction
// at a time and a read tick must not stall a concurrent write tick.
func (s *Slot) LockRead()    { s.readMu.Lock() }
func (s *Slot) UnlockRead()  { s.readMu.Unlock() }
func (s *Slot) LockWrite()   { s.writeMu.Lock() }
func (s *Slot) UnlockWrite() { s.writeMu.Unlock() }
