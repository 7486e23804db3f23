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

// State is the ControlSurface's own lifecycle, independent of any single
// ClientSlot's state:
//
//	Initialized -> Opened -> Running -> Stopping -> Stopped -> Closed
//
// with two backward arcs: Stopped -> Running (Run can be called again on a
// stopped-but-not-closed server) and Closed -> Opened (Open can rebuild the
// listener after a full Close).
type State uint8

const (
	Initialized State = iota
	Opened
	Running
	Stopping
	Stopped
	Closed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Opened:
		return "opened"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// canTransition reports whether the state machine allows moving from cur to
// next. Besides the forward chain and the two backward arcs, Opened -> Closed
// and Stopped -> Closed are allowed so a listener that never ran, or one that
// has fully stopped, can be closed directly.
func canTransition(cur, next State) bool {
	switch {
	case next == cur:
		return false
	case cur == Initialized && next == Opened:
		return true
	case cur == Opened && next == Running:
		return true
	case cur == Opened && next == Closed:
		return true
	case cur == Running && next == Stopping:
		return true
	case cur == Stopping && next == Stopped:
		return true
	case cur == Stopped && next == Running:
		return true
	case cur == Stopped && next == Closed:
		return true
	case cur == Closed && next == Opened:
		return true
	default:
		return false
	}
}
