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

// Package engine is the concurrent TCP/TLS server core: a fixed [W][S]
// SlotTable scanned by W IoWorkers and W TimeoutSweepers, fed by a single
// Acceptor, all driven through the Server control surface.
package engine

import (
	"context"
	"crypto/tls"
	"net"
	"os/signal"
	"sync"
	"syscall"

	"github.com/0-ACS-0/dmserver-go/certificates"
	"github.com/0-ACS-0/dmserver-go/socket"
	"github.com/0-ACS-0/dmserver-go/socket/config"
	"github.com/0-ACS-0/dmserver-go/socket/slot"
)

var ignoreSigpipeOnce sync.Once

// Server is the ControlSurface: the single entry point opening the
// listener, running the worker pool, and accepting Broadcast/Unicast/
// Disconnect calls from outside the engine goroutines.
type Server struct {
	mu    sync.Mutex
	state State

	cfg      config.Config
	handlers socket.Handlers

	table  *slot.Table
	tlsCfg *tls.Config

	listener net.Listener
	acc      *acceptor
	workers  []*worker
	sweepers []*sweeper

	stopped chan struct{}
}

// New constructs a Server in the Initialized state. Call Init, then
// Configure, then Open, then Run.
func New() *Server {
	return &Server{state: Initialized}
}

func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) IsRunning() bool {
	return s.State() == Running
}

func (s *Server) transition(next State) error {
	if !canTransition(s.state, next) {
		return ErrInvalidState
	}
	s.state = next
	return nil
}

// Init performs the process-wide, once-only setup this engine needs:
// ignoring SIGPIPE so a peer reset never crashes the process via a raw
// write.
func (s *Server) Init() error {
	ignoreSigpipeOnce.Do(func() {
		signal.Ignore(syscall.SIGPIPE)
	})
	return nil
}

// Configure validates cfg and stores it, together with the handler bundle,
// for Open. The handler bundle itself is checked by Run.
func (s *Server) Configure(cfg config.Config, handlers socket.Handlers) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg
	s.handlers = handlers
	return nil
}

// Open builds the SlotTable, the TLS context if one is configured, and
// binds the listener, then moves to Opened.
func (s *Server) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !canTransition(s.state, Opened) {
		return ErrInvalidState
	}

	if s.cfg.Listener.Address == "" {
		return ErrInvalidAddress
	}

	s.table = slot.NewTable(s.cfg.Worker)

	if s.cfg.Listener.HasTLS() {
		ctx, err := certificates.NewContext(*s.cfg.Listener.TLS)
		if err != nil {
			return err
		}
		s.tlsCfg = ctx.TLSConfig()
	} else {
		s.tlsCfg = nil
	}

	lc := net.ListenConfig{Control: controlReuseAddr(s.cfg.Listener.IPv6Only)}
	ln, err := lc.Listen(context.Background(), s.cfg.Listener.Network.String(), s.cfg.Listener.BindAddress())
	if err != nil {
		return ErrInvalidAddress
	}
	s.listener = ln
	s.state = Opened

	return nil
}

// Run starts the Acceptor, every IoWorker and every TimeoutSweeper, then
// blocks until ctx is cancelled or Stop is called, at which point it drains
// the pool and returns.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if err := s.transition(Running); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.handlers.OnDisconnect == nil && s.handlers.OnReceive == nil && s.handlers.OnConnect == nil {
		s.mu.Unlock()
		return ErrInvalidHandler
	}

	s.workers = make([]*worker, s.cfg.Worker.Count)
	s.sweepers = make([]*sweeper, s.cfg.Worker.Count)
	for i := 0; i < s.cfg.Worker.Count; i++ {
		w := newWorker(i, s.table, s.cfg.Client, s.handlers, s.tlsCfg)
		s.workers[i] = w
		s.sweepers[i] = newSweeper(i, s.table, s.handlers, s.cfg.Worker.IdleTimeout, s.cfg.Worker.SweepInterval(), w)
	}
	s.acc = newAcceptor(s.listener, s.table, s.workers, s.tlsCfg, s.handlers)

	s.stopped = make(chan struct{})
	s.mu.Unlock()

	go s.acc.run()
	for _, w := range s.workers {
		go w.run()
	}
	for _, sw := range s.sweepers {
		go sw.run()
	}

	select {
	case <-ctx.Done():
	case <-s.stopped:
		return nil
	}

	return s.stopInternal(context.Background())
}

// Stop requests the running engine drain and halt, honoring ctx's
// deadline. It is safe to call from outside the engine goroutines.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return ErrInvalidState
	}
	s.mu.Unlock()

	err := s.stopInternal(ctx)
	if s.stopped != nil {
		close(s.stopped)
	}
	return err
}

func (s *Server) stopInternal(ctx context.Context) error {
	s.mu.Lock()
	if err := s.transition(Stopping); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.acc.shutdown()
		for _, w := range s.workers {
			w.shutdown()
		}
		for _, sw := range s.sweepers {
			sw.shutdown()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.mu.Lock()
		_ = s.transition(Stopped)
		s.mu.Unlock()
		return ErrShutdownTimeout
	}

	s.mu.Lock()
	err := s.transition(Stopped)
	s.mu.Unlock()
	return err
}

// Close tears down the listener permanently, moving to Closed. Open can
// rebuild it afterward.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(Closed); err != nil {
		return err
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Deinit releases the handler bundle and configuration, undoing Configure.
// It does not touch the state machine.
func (s *Server) Deinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = socket.Handlers{}
	s.cfg = config.Config{}
	return nil
}

// Broadcast queues b for every Established slot except exclude (if
// non-nil), e.g. to implement "echo to everyone but the sender". A payload
// that would not fit a slot's write buffer rejects the whole call and
// queues nothing.
func (s *Server) Broadcast(b []byte, exclude *slot.Location) error {
	if s.table == nil {
		return ErrInvalidState
	}
	if len(b) > s.cfg.Client.WriteBufferSize-1 {
		return socket.ErrInvalidArgument
	}
	for w := 0; w < s.table.Workers(); w++ {
		for _, sl := range s.table.Row(w) {
			if sl.State() != slot.Established {
				continue
			}
			if exclude != nil && sl.Location() == *exclude {
				continue
			}
			sl.QueuePending(b[:min(len(b), s.cfg.Client.WriteBufferSize-1)])
		}
	}
	return nil
}

// Unicast queues b for exactly one slot. A payload that would not fit the
// slot's write buffer is rejected and nothing is queued.
func (s *Server) Unicast(loc slot.Location, b []byte) error {
	if s.table == nil {
		return ErrInvalidState
	}
	if len(b) > s.cfg.Client.WriteBufferSize-1 {
		return socket.ErrInvalidArgument
	}
	sl := s.table.At(loc)
	if sl == nil || sl.State() != slot.Established {
		return ErrInvalidState
	}
	sl.QueuePending(b[:min(len(b), s.cfg.Client.WriteBufferSize-1)])
	return nil
}

// Disconnect tears a single slot down from outside the engine's own
// goroutines, reusing the same idempotent teardown path a read error or
// idle timeout would take.
func (s *Server) Disconnect(loc slot.Location) error {
	if s.table == nil || len(s.workers) == 0 {
		return ErrInvalidState
	}
	sl := s.table.At(loc)
	if sl == nil {
		return ErrInvalidInstance
	}
	if loc.Worker < 0 || loc.Worker >= len(s.workers) {
		return ErrInvalidInstance
	}
	s.workers[loc.Worker].requestDisconnect(sl, nil)
	return nil
}

// OpenConnections reports the total number of Established-or-Establishing
// slots across the whole table.
func (s *Server) OpenConnections() int64 {
	if s.table == nil {
		return 0
	}
	var total int64
	for w := 0; w < s.table.Workers(); w++ {
		total += s.table.LiveCount(w)
	}
	return total
}
