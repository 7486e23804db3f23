/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
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

// Package config describes the logger's queue, output and rotation options.
package config

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	"github.com/0-ACS-0/dmserver-go/logger/level"
)

// OverflowPolicy selects what happens when the MPSC queue is full at enqueue time.
type OverflowPolicy uint8

const (
	// OverflowDropNewest discards the entry being enqueued, keeping the queue untouched.
	OverflowDropNewest OverflowPolicy = iota
	// OverflowOverwriteOldest evicts the oldest queued entry to make room.
	OverflowOverwriteOldest
	// OverflowWaitForever blocks the producer until space is available.
	OverflowWaitForever
	// OverflowWaitTimeout blocks the producer up to WaitTimeout before dropping.
	OverflowWaitTimeout
)

func (o OverflowPolicy) String() string {
	switch o {
	case OverflowDropNewest:
		return "drop-newest"
	case OverflowOverwriteOldest:
		return "overwrite-oldest"
	case OverflowWaitForever:
		return "wait-forever"
	case OverflowWaitTimeout:
		return "wait-timeout"
	default:
		return "unknown"
	}
}

// OutputKind selects where rendered entries are written.
type OutputKind uint8

const (
	OutputStdout OutputKind = iota
	OutputStderr
	OutputFile
	OutputCustom
)

// OptionsFile configures the file output, with date- and size-based rotation.
type OptionsFile struct {
	// Path is the directory log files are written into.
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path,omitempty"`

	// Basename is the file prefix before the date/index suffix.
	Basename string `json:"basename,omitempty" yaml:"basename,omitempty" toml:"basename,omitempty" mapstructure:"basename,omitempty"`

	// RotateByDate rotates to a new file when the calendar day changes.
	RotateByDate bool `json:"rotateByDate,omitempty" yaml:"rotateByDate,omitempty" toml:"rotateByDate,omitempty" mapstructure:"rotateByDate,omitempty"`

	// RotateBySize rotates to a new file once MaxSize bytes have been written.
	RotateBySize bool `json:"rotateBySize,omitempty" yaml:"rotateBySize,omitempty" toml:"rotateBySize,omitempty" mapstructure:"rotateBySize,omitempty"`

	// MaxSize is the rotation threshold in bytes, used when RotateBySize is set.
	MaxSize int64 `json:"maxSize,omitempty" yaml:"maxSize,omitempty" toml:"maxSize,omitempty" mapstructure:"maxSize,omitempty"`
}

func (o OptionsFile) Clone() OptionsFile {
	return o
}

// Config is the logger's full configuration, carrying the usual
// json/yaml/toml/mapstructure tag quadruple so it can be decoded from any of
// those sources by an embedding application.
type Config struct {
	// MinLevel filters out any entry below this severity.
	MinLevel level.Level `json:"minLevel,omitempty" yaml:"minLevel,omitempty" toml:"minLevel,omitempty" mapstructure:"minLevel,omitempty"`

	// Output selects the destination backend.
	Output OutputKind `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" mapstructure:"output,omitempty"`

	// File holds the file-output settings, used when Output == OutputFile.
	File OptionsFile `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty" mapstructure:"file,omitempty"`

	// DisableColor forces the stdout/stderr hook to skip ANSI coloring even on a TTY.
	DisableColor bool `json:"disableColor,omitempty" yaml:"disableColor,omitempty" toml:"disableColor,omitempty" mapstructure:"disableColor,omitempty"`

	// QueueCapacity bounds the number of buffered entries awaiting the consumer.
	QueueCapacity int `json:"queueCapacity,omitempty" yaml:"queueCapacity,omitempty" toml:"queueCapacity,omitempty" mapstructure:"queueCapacity,omitempty" validate:"required,gt=0"`

	// QueueOverflow selects the behavior when QueueCapacity is exceeded.
	QueueOverflow OverflowPolicy `json:"queueOverflow,omitempty" yaml:"queueOverflow,omitempty" toml:"queueOverflow,omitempty" mapstructure:"queueOverflow,omitempty"`

	// WaitTimeout bounds the producer's blocking time under OverflowWaitTimeout.
	WaitTimeout time.Duration `json:"waitTimeout,omitempty" yaml:"waitTimeout,omitempty" toml:"waitTimeout,omitempty" mapstructure:"waitTimeout,omitempty"`
}

const (
	DefaultQueueCapacity = 200
	DefaultWaitTimeout   = time.Second
	DefaultFileMaxSize   = 10 * 1000 * 1000 // 10MB, matching dmlogger's DEFAULT_OUTPUT_FILE_ROTATE_MAXSIZE
)

// Default returns the baseline configuration: stdout, info level, 200-entry
// queue, drop-newest overflow — matching dmlogger.h's DEFAULT_* constants.
func Default() Config {
	return Config{
		MinLevel:      level.InfoLevel,
		Output:        OutputStdout,
		QueueCapacity: DefaultQueueCapacity,
		QueueOverflow: OverflowDropNewest,
		WaitTimeout:   DefaultWaitTimeout,
	}
}

func (c *Config) Validate() error {
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}

	if err := libval.New().Struct(c); err != nil {
		return fmt.Errorf("logger config: %w", err)
	}

	if c.Output == OutputFile {
		if c.File.Path == "" || c.File.Basename == "" {
			return fmt.Errorf("logger config: file output requires path and basename")
		}

		if c.File.RotateBySize && c.File.MaxSize <= 0 {
			c.File.MaxSize = DefaultFileMaxSize
		}
	}

	if c.QueueOverflow == OverflowWaitTimeout && c.WaitTimeout <= 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}

	return nil
}
