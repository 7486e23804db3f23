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

package slot

import (
	"sync/atomic"

	"github.com/0-ACS-0/dmserver-go/socket/config"
)

// Table is the fixed [W][S] grid of ClientSlots the engine scans every
// tick. It is sized once at Open and never resized while running.
type Table struct {
	workers int
	slots   int

	rows      [][]*Slot
	liveCount []atomic.Int64
}

func NewTable(cfg config.Worker) *Table {
	t := &Table{
		workers:   cfg.Count,
		slots:     cfg.SlotsPerWorker,
		rows:      make([][]*Slot, cfg.Count),
		liveCount: make([]atomic.Int64, cfg.Count),
	}
	for w := 0; w < cfg.Count; w++ {
		t.rows[w] = make([]*Slot, cfg.SlotsPerWorker)
		for i := 0; i < cfg.SlotsPerWorker; i++ {
			t.rows[w][i] = New(Location{Worker: w, Slot: i})
		}
	}
	return t
}

func (t *Table) Workers() int { return t.workers }
func (t *Table) Slots() int   { return t.slots }

func (t *Table) Row(worker int) []*Slot {
	return t.rows[worker]
}

func (t *Table) At(loc Location) *Slot {
	if loc.Worker < 0 || loc.Worker >= t.workers {
		return nil
	}
	if loc.Slot < 0 || loc.Slot >= t.slots {
		return nil
	}
	return t.rows[loc.Worker][loc.Slot]
}

// LiveCount is the number of Established-or-Establishing slots currently
// owned by a worker; the Acceptor reads this to pick the least-loaded row.
func (t *Table) LiveCount(worker int) int64 {
	return t.liveCount[worker].Load()
}

func (t *Table) IncLive(worker int) {
	t.liveCount[worker].Add(1)
}

func (t *Table) DecLive(worker int) {
	t.liveCount[worker].Add(-1)
}

// LeastLoadedWorker returns the index of the worker row with the smallest
// live_count, the Acceptor's placement policy.
func (t *Table) LeastLoadedWorker() int {
	best := 0
	bestCount := t.liveCount[0].Load()
	for w := 1; w < t.workers; w++ {
		if c := t.liveCount[w].Load(); c < bestCount {
			best = w
			bestCount = c
		}
	}
	return best
}

// FirstFreeSlot scans a worker's row for the first Standby slot. Returns
// nil if the row is full.
func (t *Table) FirstFreeSlot(worker int) *Slot {
	for _, s := range t.rows[worker] {
		if s.State() == Standby {
			return s
		}
	}
	return nil
}

// Total is the table's overall capacity, W*S.
func (t *Table) Total() int {
	return t.workers * t.slots
}
