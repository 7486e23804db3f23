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

package certificates

import (
	"crypto/tls"
	"fmt"
	"sync"
)

// Context is the server-side TLS context: a read-only *tls.Config shared by
// the Acceptor (to build new sessions) and every IoWorker (to drive
// handshakes) once the listener is open.
type Context interface {
	// TLSConfig returns the shared *tls.Config. Callers must not mutate it.
	TLSConfig() *tls.Config
}

type tlsContext struct {
	cfg *tls.Config
}

var (
	libOnce sync.Once
)

// initLibrary performs the process-wide, once-only TLS library
// initialization: the one piece of global mutable state in this package,
// guarded by a once-initialization primitive. crypto/tls needs no explicit
// bootstrap, but the guarded hook is kept so callers have a single
// well-defined place to hang process-wide TLS setup (e.g. a FIPS provider).
func initLibrary() {
	libOnce.Do(func() {})
}

// NewContext loads the certificate/key pair from cfg and builds the shared
// TLS context. It is the only place a ErrTlsConfig failure can originate
// from at runtime (the rest is structural Validate()).
func NewContext(cfg Config) (Context, error) {
	initLibrary()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertPath, cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTlsConfig, err)
	}

	return &tlsContext{
		cfg: &tls.Config{
			MinVersion:   cfg.Version.Uint16(),
			MaxVersion:   cfg.Version.Uint16(),
			Certificates: []tls.Certificate{cert},
			Renegotiation: tls.RenegotiateNever,
		},
	}, nil
}

func (t *tlsContext) TLSConfig() *tls.Config {
	return t.cfg
}
