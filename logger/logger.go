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

// Package logger is a non-blocking, MPSC (multiple producers, single
// consumer) diagnostic sink. Any number of goroutines may call its logging
// methods concurrently; a single background goroutine drains the queue and
// drives the logrus-backed output, so the server engine's hot path never
// performs logging I/O itself.
package logger

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/0-ACS-0/dmserver-go/logger/config"
	"github.com/0-ACS-0/dmserver-go/logger/fields"
	"github.com/0-ACS-0/dmserver-go/logger/hook"
	"github.com/0-ACS-0/dmserver-go/logger/level"
)

// Logger is the public contract: one Debug/Info/.../Fatal method per
// severity, each enqueuing onto the MPSC queue instead of writing directly.
type Logger interface {
	Debug(message string, f fields.Fields)
	Info(message string, f fields.Fields)
	Notice(message string, f fields.Fields)
	Warning(message string, f fields.Fields)
	Error(message string, f fields.Fields)
	Fatal(message string, f fields.Fields)

	// SetLevel changes the minimal level of message actually queued.
	SetLevel(lvl level.Level)
	// GetLevel returns the minimal level of message actually queued.
	GetLevel() level.Level

	// Close stops the consumer goroutine once the queue has drained and
	// releases any backend resource (open file handles).
	Close() error
}

type logger struct {
	mu  sync.RWMutex
	lvl level.Level

	log   *logrus.Logger
	hooks []hook.Hook

	q    *mpscQueue
	done chan struct{}
	wg   sync.WaitGroup
}

// New builds a Logger from cfg, validating it first, registering the
// configured output as a logrus hook, and starting the single consumer
// goroutine.
func New(cfg config.Config) (Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &logger{
		lvl:  cfg.MinLevel,
		log:  logrus.New(),
		q:    newQueue(cfg.QueueCapacity, cfg.QueueOverflow, cfg.WaitTimeout),
		done: make(chan struct{}),
	}

	l.log.SetOutput(discardWriter{})
	l.log.SetLevel(logrus.TraceLevel)

	h, err := buildHook(cfg)
	if err != nil {
		return nil, err
	}

	l.hooks = append(l.hooks, h)
	l.log.AddHook(h)

	l.wg.Add(1)
	go l.consume()

	return l, nil
}

// NewCustom builds a Logger whose only output is fn, bypassing cfg.Output.
// Grounded on dmlogger's DMLOGGER_OUTPUT_CUSTOM selector.
func NewCustom(cfg config.Config, fn hook.CustomFunc) (Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &logger{
		lvl:  cfg.MinLevel,
		log:  logrus.New(),
		q:    newQueue(cfg.QueueCapacity, cfg.QueueOverflow, cfg.WaitTimeout),
		done: make(chan struct{}),
	}

	l.log.SetOutput(discardWriter{})
	l.log.SetLevel(logrus.TraceLevel)

	h := hook.NewCustom(fn)
	l.hooks = append(l.hooks, h)
	l.log.AddHook(h)

	l.wg.Add(1)
	go l.consume()

	return l, nil
}

func buildHook(cfg config.Config) (hook.Hook, error) {
	switch cfg.Output {
	case config.OutputStderr:
		return hook.NewStderr(cfg.DisableColor), nil
	case config.OutputFile:
		return hook.NewFile(cfg.File.Path, cfg.File.Basename, cfg.File.RotateByDate, cfg.File.RotateBySize, cfg.File.MaxSize)
	default:
		return hook.NewStdout(cfg.DisableColor), nil
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (l *logger) SetLevel(lvl level.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
}

func (l *logger) GetLevel() level.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lvl
}

func (l *logger) enqueue(lvl level.Level, message string, f fields.Fields) {
	l.mu.RLock()
	min := l.lvl
	l.mu.RUnlock()

	if lvl < min {
		return
	}

	l.q.push(entry{level: lvl, message: message, fields: f, time: time.Now()})
}

func (l *logger) Debug(message string, f fields.Fields)   { l.enqueue(level.DebugLevel, message, f) }
func (l *logger) Info(message string, f fields.Fields)    { l.enqueue(level.InfoLevel, message, f) }
func (l *logger) Notice(message string, f fields.Fields)  { l.enqueue(level.NoticeLevel, message, f) }
func (l *logger) Warning(message string, f fields.Fields) { l.enqueue(level.WarnLevel, message, f) }
func (l *logger) Error(message string, f fields.Fields)   { l.enqueue(level.ErrorLevel, message, f) }
func (l *logger) Fatal(message string, f fields.Fields)   { l.enqueue(level.FatalLevel, message, f) }

// consume is the single queue consumer: it pops entries until the queue is
// closed and drained, rendering each through logrus (which in turn fans out
// to the registered hook).
func (l *logger) consume() {
	defer l.wg.Done()

	for {
		e, ok := l.q.pop()
		if !ok {
			return
		}

		ent := l.log.WithFields(e.fields.Logrus()).WithTime(e.time)
		if e.level == level.NoticeLevel {
			ent = ent.WithField("notice", true)
		}
		ent.Log(e.level.Logrus(), e.message)
	}
}

func (l *logger) Close() error {
	l.q.close()
	l.wg.Wait()

	var firstErr error
	for _, h := range l.hooks {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
