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

// Package config holds the validated, defaulted configuration for every
// piece of the server engine: the Listener it binds, the Worker pool shape,
// and the per-Client buffer sizing.
package config

import (
	"fmt"
	"net"

	libval "github.com/go-playground/validator/v10"

	"github.com/0-ACS-0/dmserver-go/certificates"
	"github.com/0-ACS-0/dmserver-go/network/protocol"
)

const (
	DefaultPort    = 1024
	MinPort        = 1024
	MaxPort        = 49151
	DefaultAddress = "0.0.0.0"
)

// Listener describes the address the Acceptor binds and whether sessions on
// it must complete a TLS handshake before reaching Established.
type Listener struct {
	// Network must be TCP, TCP4, or TCP6; the engine only speaks stream TCP.
	Network protocol.NetworkProtocol `json:"network,omitempty" yaml:"network,omitempty" toml:"network,omitempty" mapstructure:"network,omitempty"`

	// Address is the bind host; empty means all interfaces.
	Address string `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty" mapstructure:"address,omitempty"`

	// Port must fall in [MinPort, MaxPort].
	Port int `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty" mapstructure:"port,omitempty" validate:"omitempty,gte=1024,lte=49151"`

	// IPv6Only restricts a TCP6 listener to IPv6-only traffic
	// (IPV6_V6ONLY) rather than also accepting IPv4-mapped peers.
	IPv6Only bool `json:"ipv6Only,omitempty" yaml:"ipv6Only,omitempty" toml:"ipv6Only,omitempty" mapstructure:"ipv6Only,omitempty"`

	// TLS, when non-nil, makes the Acceptor route new slots through the
	// Establishing state before Established.
	TLS *certificates.Config `json:"tls,omitempty" yaml:"tls,omitempty" toml:"tls,omitempty" mapstructure:"tls,omitempty"`
}

func DefaultListener() Listener {
	return Listener{
		Network: protocol.NetworkTCP,
		Address: DefaultAddress,
		Port:    DefaultPort,
	}
}

func (l *Listener) Validate() error {
	if !l.Network.Stream() {
		return fmt.Errorf("%w: listener network must be tcp, tcp4 or tcp6", ErrInvalidListener)
	}
	if l.Port == 0 {
		l.Port = DefaultPort
	}
	if l.Port < MinPort || l.Port > MaxPort {
		return fmt.Errorf("%w: port %d out of range [%d, %d]", ErrInvalidListener, l.Port, MinPort, MaxPort)
	}
	if l.Address == "" {
		l.Address = DefaultAddress
	}

	if err := libval.New().Struct(l); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidListener, err)
	}

	if l.TLS != nil {
		if err := l.TLS.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// HasTLS reports whether this listener requires a TLS handshake, i.e.
// whether Establishing is a reachable ClientSlot state on it.
func (l *Listener) HasTLS() bool {
	return l.TLS != nil
}

// BindAddress renders the host:port pair net.Listen expects.
func (l *Listener) BindAddress() string {
	return net.JoinHostPort(l.Address, fmt.Sprintf("%d", l.Port))
}
