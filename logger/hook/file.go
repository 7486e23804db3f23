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

package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// file is the rotating-file Hook. Rotation by date (new file each calendar
// day) and by size (new file once maxSize bytes have been written) can be
// combined; whichever condition trips first rotates.
type file struct {
	mu sync.Mutex

	dir      string
	basename string

	byDate bool
	bySize bool
	maxSize int64

	fh      *os.File
	day     int
	written int64
	index   int
}

// NewFile opens (creating the directory if needed) a rotating file hook.
func NewFile(dir, basename string, byDate, bySize bool, maxSize int64) (Hook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logger file hook: %w", err)
	}

	f := &file{
		dir:      dir,
		basename: basename,
		byDate:   byDate,
		bySize:   bySize,
		maxSize:  maxSize,
		day:      time.Now().YearDay(),
	}

	if err := f.open(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *file) open() error {
	name := f.basename
	if f.byDate {
		name = fmt.Sprintf("%s-%s", name, time.Now().Format("2006-01-02"))
	}
	if f.index > 0 {
		name = fmt.Sprintf("%s.%d", name, f.index)
	}

	path := filepath.Join(f.dir, name+".log")

	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logger file hook: %w", err)
	}

	st, err := fh.Stat()
	if err == nil {
		f.written = st.Size()
	}

	f.fh = fh
	return nil
}

func (f *file) rotateIfNeeded() error {
	needsRotate := false

	if f.byDate && time.Now().YearDay() != f.day {
		f.day = time.Now().YearDay()
		f.index = 0
		needsRotate = true
	}

	if f.bySize && f.maxSize > 0 && f.written >= f.maxSize {
		f.index++
		needsRotate = true
	}

	if !needsRotate {
		return nil
	}

	if f.fh != nil {
		_ = f.fh.Close()
	}

	return f.open()
}

func (f *file) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (f *file) Fire(e *logrus.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.rotateIfNeeded(); err != nil {
		return err
	}

	line, err := e.String()
	if err != nil {
		return err
	}

	n, err := f.fh.WriteString(line)
	f.written += int64(n)

	return err
}

func (f *file) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fh == nil {
		return nil
	}

	return f.fh.Close()
}
