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

package socket

import "errors"

// Per-connection and engine-level error kinds. Per-connection kinds are
// passed as the cause to OnDisconnect (a failed handshake also to OnError)
// and never take the engine itself down. The second group mirrors the
// engine package's own sentinels; of this file's values the ControlSurface
// returns only ErrInvalidArgument, from Broadcast/Unicast.
var (
	ErrInvalidState      = errors.New("socket: invalid state for requested operation")
	ErrInvalidArgument   = errors.New("socket: invalid argument")
	ErrResourceExhausted = errors.New("socket: resource exhausted")
	ErrTlsHandshake      = errors.New("socket: tls handshake failed")
	ErrPeerClosed        = errors.New("socket: peer closed connection")
	ErrPeerProtocol      = errors.New("socket: peer protocol violation")
	ErrFatal             = errors.New("socket: fatal error")
	ErrIdleTimeout       = errors.New("socket: connection idle timeout")

	ErrInvalidAddress  = errors.New("socket: invalid listen address")
	ErrInvalidHandler  = errors.New("socket: invalid handler")
	ErrShutdownTimeout = errors.New("socket: shutdown timeout")
	ErrGoneTimeout     = errors.New("socket: gone timeout")
	ErrInvalidInstance = errors.New("socket: invalid instance")
)
