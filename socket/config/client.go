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

package config

import (
	"fmt"
	"time"
)

const (
	DefaultReadBufferSize  = 4096
	DefaultWriteBufferSize = 4096
	DefaultIOTimeout       = 50 * time.Millisecond
)

// Client sizes the per-slot read/write buffers and the short per-syscall
// deadline an IoWorker uses to turn a blocking net.Conn into a pollable one:
// a deadline timeout during a tick means WANT_READ/WANT_WRITE, not failure.
type Client struct {
	ReadBufferSize  int           `json:"readBufferSize,omitempty" yaml:"readBufferSize,omitempty" toml:"readBufferSize,omitempty" mapstructure:"readBufferSize,omitempty"`
	WriteBufferSize int           `json:"writeBufferSize,omitempty" yaml:"writeBufferSize,omitempty" toml:"writeBufferSize,omitempty" mapstructure:"writeBufferSize,omitempty"`
	IOTimeout       time.Duration `json:"ioTimeout,omitempty" yaml:"ioTimeout,omitempty" toml:"ioTimeout,omitempty" mapstructure:"ioTimeout,omitempty"`
}

func DefaultClient() Client {
	return Client{
		ReadBufferSize:  DefaultReadBufferSize,
		WriteBufferSize: DefaultWriteBufferSize,
		IOTimeout:       DefaultIOTimeout,
	}
}

func (c *Client) Validate() error {
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = DefaultWriteBufferSize
	}
	if c.IOTimeout == 0 {
		c.IOTimeout = DefaultIOTimeout
	}

	if c.ReadBufferSize < 0 || c.WriteBufferSize < 0 {
		return fmt.Errorf("%w: buffer sizes must be >= 0", ErrInvalidClient)
	}
	if c.IOTimeout <= 0 {
		return fmt.Errorf("%w: io timeout must be > 0", ErrInvalidClient)
	}

	return nil
}
