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

import "github.com/sirupsen/logrus"

// CustomFunc receives the rendered entry for a caller-supplied sink (metrics,
// a test harness, a message bus...).
type CustomFunc func(level logrus.Level, message string, fields map[string]interface{})

type custom struct {
	fn CustomFunc
}

// NewCustom wraps fn as a Hook.
func NewCustom(fn CustomFunc) Hook {
	return &custom{fn: fn}
}

func (c *custom) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (c *custom) Fire(e *logrus.Entry) error {
	c.fn(e.Level, e.Message, e.Data)
	return nil
}

func (c *custom) Close() error {
	return nil
}
