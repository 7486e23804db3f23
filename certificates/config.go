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

// Package certificates supplies the server-side TLS context: process-wide
// library init, certificate/key loading, and a forced single modern TLS
// version used as both minimum and maximum.
package certificates

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	"github.com/0-ACS-0/dmserver-go/certificates/tlsversion"
)

const (
	DefaultCertPath = "./certs/server.crt"
	DefaultKeyPath  = "./certs/server.key"
)

// Config is the server TLS configuration, carrying the usual json/yaml/toml/
// mapstructure tag quadruple.
type Config struct {
	// CertPath is the PEM certificate file path.
	CertPath string `json:"certPath,omitempty" yaml:"certPath,omitempty" toml:"certPath,omitempty" mapstructure:"certPath,omitempty"`

	// KeyPath is the PEM private key file path.
	KeyPath string `json:"keyPath,omitempty" yaml:"keyPath,omitempty" toml:"keyPath,omitempty" mapstructure:"keyPath,omitempty"`

	// Version is used as both VersionMin and VersionMax: every listener
	// forces the same modern TLS version as its floor and its ceiling.
	Version tlsversion.Version `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty" mapstructure:"version,omitempty"`

	// RenegotiationDisabled is always honored as true; kept as a field so
	// the zero value documents the forced behavior rather than hiding it.
	RenegotiationDisabled bool `json:"renegotiationDisabled,omitempty" yaml:"renegotiationDisabled,omitempty" toml:"renegotiationDisabled,omitempty" mapstructure:"renegotiationDisabled,omitempty"`
}

// Default returns the baseline config: default cert/key paths, TLS 1.3.
func Default() Config {
	return Config{
		CertPath:              DefaultCertPath,
		KeyPath:               DefaultKeyPath,
		Version:               tlsversion.VersionTLS13,
		RenegotiationDisabled: true,
	}
}

func (c *Config) Validate() error {
	if c.CertPath == "" {
		c.CertPath = DefaultCertPath
	}
	if c.KeyPath == "" {
		c.KeyPath = DefaultKeyPath
	}
	if c.Version == tlsversion.VersionUnknown {
		c.Version = tlsversion.VersionTLS13
	}

	if !c.Version.Modern() {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, c.Version)
	}

	if err := libval.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrTlsConfig, err)
	}

	c.RenegotiationDisabled = true

	return nil
}
