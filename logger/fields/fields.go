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

// Package fields provides an immutable key/value attachment used to enrich
// log entries emitted by the server engine (connection id, worker index,
// slot index, peer address...).
package fields

import "github.com/sirupsen/logrus"

type Fields map[string]interface{}

func New() Fields {
	return make(Fields)
}

func (f Fields) clone() map[string]interface{} {
	res := make(map[string]interface{})

	for k, v := range f {
		res[k] = v
	}

	return res
}

// Add returns a new Fields with key set to val, leaving the receiver untouched.
func (f Fields) Add(key string, val interface{}) Fields {
	res := f.clone()
	res[key] = val
	return res
}

func (f Fields) Merge(other Fields) Fields {
	if len(other) < 1 {
		return f
	} else if len(f) < 1 {
		return other
	}

	res := f.clone()
	for k, v := range other {
		res[k] = v
	}

	return res
}

// Logrus converts the fields into the map type logrus.WithFields expects.
func (f Fields) Logrus() logrus.Fields {
	return f.clone()
}
