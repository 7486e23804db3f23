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
	DefaultWorkerCount     = 8
	DefaultSlotsPerWorker  = 200
	DefaultIdleTimeout     = 120 * time.Second
	DefaultSweepDivisor    = 8
	MinWorkerCount         = 1
	MinSlotsPerWorker      = 1
)

// Worker sizes the fixed [W][S] SlotTable and the per-worker idle sweep
// cadence: W = Count, S = SlotsPerWorker.
type Worker struct {
	// Count is the number of IoWorker/TimeoutSweeper goroutine pairs.
	Count int `json:"count,omitempty" yaml:"count,omitempty" toml:"count,omitempty" mapstructure:"count,omitempty"`

	// SlotsPerWorker is the number of ClientSlots each worker owns.
	SlotsPerWorker int `json:"slotsPerWorker,omitempty" yaml:"slotsPerWorker,omitempty" toml:"slotsPerWorker,omitempty" mapstructure:"slotsPerWorker,omitempty"`

	// IdleTimeout is the duration of inactivity after which a
	// TimeoutSweeper disconnects a slot. A TimeoutSweeper wakes every
	// IdleTimeout/DefaultSweepDivisor to check for breaches.
	IdleTimeout time.Duration `json:"idleTimeout,omitempty" yaml:"idleTimeout,omitempty" toml:"idleTimeout,omitempty" mapstructure:"idleTimeout,omitempty"`
}

func DefaultWorker() Worker {
	return Worker{
		Count:          DefaultWorkerCount,
		SlotsPerWorker: DefaultSlotsPerWorker,
		IdleTimeout:    DefaultIdleTimeout,
	}
}

func (w *Worker) Validate() error {
	if w.Count == 0 {
		w.Count = DefaultWorkerCount
	}
	if w.SlotsPerWorker == 0 {
		w.SlotsPerWorker = DefaultSlotsPerWorker
	}
	if w.IdleTimeout == 0 {
		w.IdleTimeout = DefaultIdleTimeout
	}

	if w.Count < MinWorkerCount {
		return fmt.Errorf("%w: worker count must be >= %d", ErrInvalidWorker, MinWorkerCount)
	}
	if w.SlotsPerWorker < MinSlotsPerWorker {
		return fmt.Errorf("%w: slots per worker must be >= %d", ErrInvalidWorker, MinSlotsPerWorker)
	}
	if w.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout must be >= 0", ErrInvalidWorker)
	}

	return nil
}

// SweepInterval is how often a TimeoutSweeper wakes to scan its row.
func (w *Worker) SweepInterval() time.Duration {
	return w.IdleTimeout / DefaultSweepDivisor
}

// Capacity is the total SlotTable size, W*S.
func (w *Worker) Capacity() int {
	return w.Count * w.SlotsPerWorker
}
