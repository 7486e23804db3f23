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

// State is a ClientSlot's position in its lifecycle:
//
//	Unable -> Standby -> [Establishing ->] Established -> Closed -> Standby
//
// Establishing is skipped entirely when the owning listener has no TLS
// configured.
type State uint8

const (
	// Unable means the slot cannot accept a connection (reserved, or the
	// table has not finished constructing it).
	Unable State = iota

	// Standby means the slot is free and can be claimed by the Acceptor.
	Standby

	// Establishing means a connection was placed but its TLS handshake
	// has not yet completed.
	Establishing

	// Established means the slot is live: reads/writes/callbacks apply.
	Established

	// Closed is a terminal step reached while tearing the slot down;
	// disconnect resets it back to Standby once cleanup finishes.
	Closed
)

func (s State) String() string {
	switch s {
	case Unable:
		return "unable"
	case Standby:
		return "standby"
	case Establishing:
		return "establishing"
	case Established:
		return "established"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
