/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package protocol

import (
	"math"
	"strings"
)

// Parse is case-insensitive and tolerates surrounding whitespace and a
// single layer of quoting (", ', `) so it can double as a flag/env parser.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		for _, q := range []byte{'"', '\'', '`'} {
			if s[0] == q && s[len(s)-1] == q {
				s = s[1 : len(s)-1]
				break
			}
		}
	}
	s = strings.ToLower(s)

	switch s {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 maps a raw iota value back to a NetworkProtocol, rejecting
// anything outside the valid uint8 enumeration range.
func ParseInt64(i int64) NetworkProtocol {
	if i <= 0 || i > int64(NetworkUnixGram) || i > math.MaxUint8 {
		return NetworkEmpty
	}
	return NetworkProtocol(i)
}
