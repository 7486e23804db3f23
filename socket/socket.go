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

// Package socket holds the shapes shared between the engine and its caller:
// the per-connection Context handed to callbacks, and the callback bundle
// itself. Unlike a one-goroutine-per-connection server, callbacks here are
// invoked synchronously from an IoWorker's scan tick, so they must return
// quickly and must not block.
package socket

import "net"

// Context is the per-connection handle passed to every callback. It never
// outlives the callback invocation it was given to; callbacks that need to
// push data later must use Send from within a later OnReceive/OnTimeout call.
type Context interface {
	// LocalAddr is the server-side endpoint of the connection.
	LocalAddr() net.Addr

	// RemoteAddr is the peer endpoint, canonicalized (IPv4-mapped IPv6
	// addresses are reported in their IPv4 form).
	RemoteAddr() net.Addr

	// TLS reports whether this connection completed a TLS handshake.
	TLS() bool

	// Send queues b for write on this connection. It never blocks the
	// caller: the write itself happens on a later IoWorker tick.
	Send(b []byte) error

	// Close requests the connection be torn down. Safe to call from any
	// callback, any number of times.
	Close() error
}

// HandlerFunc is the common shape of every callback: it receives the
// connection Context and returns nothing.
type HandlerFunc func(ctx Context)

// ReceiveFunc additionally carries the bytes read this tick.
type ReceiveFunc func(ctx Context, data []byte)

// ErrorFunc carries the error that accompanied a connection-ending event.
type ErrorFunc func(ctx Context, err error)

// Handlers bundles every lifecycle callback a ControlSurface can invoke.
// A nil field means "no-op"; OnReceive left nil silently discards inbound
// bytes rather than erroring since this engine does no application framing.
type Handlers struct {
	// OnConnect fires once a slot reaches Established.
	OnConnect HandlerFunc

	// OnDisconnect fires once a slot is fully torn down, whatever the
	// cause (peer close, I/O error, idle timeout, shutdown).
	OnDisconnect ErrorFunc

	// OnReceive fires once per IoWorker tick that read at least one byte.
	OnReceive ReceiveFunc

	// OnTimeout fires from a TimeoutSweeper just before it disconnects an
	// idle slot, so callers can still observe which peer timed out.
	OnTimeout HandlerFunc

	// OnSend fires after a queued Send has been flushed to the wire.
	OnSend func(ctx Context, n int)

	// OnError fires when a TLS handshake fails, just before that slot is
	// disconnected. Read and write errors are reported only through
	// OnDisconnect's err.
	OnError ErrorFunc
}
