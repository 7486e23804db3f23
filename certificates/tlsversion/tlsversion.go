/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package tlsversion wraps crypto/tls's protocol version constants. The
// server engine forces the same version as both minimum and maximum, so
// only VersionTLS12 and VersionTLS13 are considered "modern" candidates.
package tlsversion

import (
	"crypto/tls"
	"strings"
)

type Version int

const (
	VersionUnknown Version = iota
	VersionTLS10           = Version(tls.VersionTLS10)
	VersionTLS11           = Version(tls.VersionTLS11)
	VersionTLS12           = Version(tls.VersionTLS12)
	VersionTLS13           = Version(tls.VersionTLS13)
)

func (v Version) Uint16() uint16 {
	return uint16(v)
}

func (v Version) String() string {
	switch v {
	case VersionTLS10:
		return "TLS1.0"
	case VersionTLS11:
		return "TLS1.1"
	case VersionTLS12:
		return "TLS1.2"
	case VersionTLS13:
		return "TLS1.3"
	default:
		return "unknown"
	}
}

// Modern reports whether v is one of the two versions this module accepts
// as a forced min==max value: every listener pins a single modern TLS
// version as both its floor and its ceiling.
func (v Version) Modern() bool {
	return v == VersionTLS12 || v == VersionTLS13
}

// Parse is case/punctuation-insensitive: "1.3", "TLSv1.3", "tls-1_3" all
// resolve to VersionTLS13.
func Parse(s string) Version {
	s = strings.ToLower(s)
	for _, r := range []string{"\"", "'", "tls", "ssl", "v", ".", "-", "_", " "} {
		s = strings.ReplaceAll(s, r, "")
	}

	switch s {
	case "10":
		return VersionTLS10
	case "11":
		return VersionTLS11
	case "12":
		return VersionTLS12
	case "13":
		return VersionTLS13
	default:
		return VersionUnknown
	}
}
