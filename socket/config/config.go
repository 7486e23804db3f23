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

// Config is the full set of knobs a ControlSurface needs at Configure time.
type Config struct {
	Listener Listener `json:"listener,omitempty" yaml:"listener,omitempty" toml:"listener,omitempty" mapstructure:"listener,omitempty"`
	Worker   Worker   `json:"worker,omitempty" yaml:"worker,omitempty" toml:"worker,omitempty" mapstructure:"worker,omitempty"`
	Client   Client   `json:"client,omitempty" yaml:"client,omitempty" toml:"client,omitempty" mapstructure:"client,omitempty"`
}

func Default() Config {
	return Config{
		Listener: DefaultListener(),
		Worker:   DefaultWorker(),
		Client:   DefaultClient(),
	}
}

func (c *Config) Validate() error {
	if err := c.Listener.Validate(); err != nil {
		return err
	}
	if err := c.Worker.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	return nil
}
