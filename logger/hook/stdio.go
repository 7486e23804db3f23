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
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var levelColor = map[logrus.Level]*color.Color{
	logrus.DebugLevel: color.New(color.FgCyan),
	logrus.InfoLevel:  color.New(color.FgGreen),
	logrus.WarnLevel:  color.New(color.FgYellow),
	logrus.ErrorLevel: color.New(color.FgRed),
	logrus.FatalLevel: color.New(color.FgHiRed, color.Bold),
	logrus.PanicLevel: color.New(color.FgHiRed, color.Bold),
}

// stdio writes formatted entries to stdout or stderr, colorizing the level
// name when the target is a terminal and coloring has not been disabled.
type stdio struct {
	w       io.Writer
	colored bool
}

// NewStdout returns a Hook writing to os.Stdout.
func NewStdout(disableColor bool) Hook {
	return &stdio{w: os.Stdout, colored: !disableColor && isTerminal(os.Stdout)}
}

// NewStderr returns a Hook writing to os.Stderr.
func NewStderr(disableColor bool) Hook {
	return &stdio{w: os.Stderr, colored: !disableColor && isTerminal(os.Stderr)}
}

func (s *stdio) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (s *stdio) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}

	if s.colored {
		if c, ok := levelColor[e.Level]; ok {
			name := e.Level.String()
			line = strings.Replace(line, "level="+name, "level="+c.Sprint(name), 1)
		}
	}

	_, err = io.WriteString(s.w, line)
	return err
}

func (s *stdio) Close() error {
	return nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
