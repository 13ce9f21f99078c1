/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bitio

// Logger is the minimal logging capability TracingBuffer needs. The
// standard library's *log.Logger satisfies it, as does NopLogger.
type Logger interface {
	Printf(format string, args ...any)
}

// NopLogger discards every message. It is the default Logger for code
// that does not care to observe bit-level traffic.
type NopLogger struct{}

// Printf implements Logger by doing nothing.
func (NopLogger) Printf(format string, args ...any) {}

// TracingBuffer wraps a BitBuffer and logs every bit written or read
// through the delegate, for diagnosing a coder that round-trips
// incorrectly. It is functionally transparent: encoding through a
// TracingBuffer produces byte-identical output to encoding through the
// plain BitBuffer it wraps.
type TracingBuffer struct {
	delegate *BitBuffer
	log      Logger
	written  int
	read     int
}

// NewTracingBuffer wraps delegate, logging through log. A nil log is
// replaced with NopLogger.
func NewTracingBuffer(delegate *BitBuffer, log Logger) *TracingBuffer {
	if log == nil {
		log = NopLogger{}
	}

	return &TracingBuffer{delegate: delegate, log: log}
}

// WriteBit logs the bit index and value, then delegates.
func (this *TracingBuffer) WriteBit(b byte) {
	this.log.Printf("write[%d] = %d", this.written, b&1)
	this.written++
	this.delegate.WriteBit(b)
}

// Flush logs the flush and delegates.
func (this *TracingBuffer) Flush() {
	this.log.Printf("flush after %d bits written", this.written)
	this.delegate.Flush()
}

// ReadNextBit delegates, then logs the bit index and value read.
func (this *TracingBuffer) ReadNextBit() byte {
	b := this.delegate.ReadNextBit()
	this.log.Printf("read[%d] = %d", this.read, b)
	this.read++
	return b
}

// Bytes delegates to the wrapped BitBuffer.
func (this *TracingBuffer) Bytes() []byte {
	return this.delegate.Bytes()
}

// Reset delegates to the wrapped BitBuffer.
func (this *TracingBuffer) Reset() {
	this.delegate.Reset()
}
