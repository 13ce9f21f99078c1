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

// Package arithcode defines the top level types used by the arithmetic
// coding codec: the Model contract, the symbol interval representation
// and the fixed-precision Range used by the encoder and decoder.
//
// Concrete implementations live in sub-packages: bitio (bit-level I/O),
// model (Model implementations) and coder (Encoder/Decoder).
package arithcode

import "errors"

// Sentinel errors returned by the coder. Callers should check with
// errors.Is rather than comparing for equality against a wrapped error.
var (
	// ErrUnknownSymbol is returned when the encoder is asked to emit a
	// symbol that is absent from the model's current interval table.
	ErrUnknownSymbol = errors.New("arithcode: unknown symbol")

	// ErrTotalFrequencyOverflow is returned when a model reports a total
	// frequency above the precision budget (total_frequency > QUARTER).
	ErrTotalFrequencyOverflow = errors.New("arithcode: total frequency exceeds precision budget")

	// ErrMalformedStream is returned when the decoder's code value falls
	// outside every candidate symbol sub-interval.
	ErrMalformedStream = errors.New("arithcode: malformed bitstream")

	// ErrModelDesync is returned when the decoder emits more symbols than
	// the model declared via MessageLength. This is a defensive assertion:
	// it implies the model disagrees with itself between calls.
	ErrModelDesync = errors.New("arithcode: decoder desynced from model")

	// ErrRangeCollapse is returned when narrowing a Range would leave
	// low >= high. This is a defensive assertion indicating a precision
	// or frequency invariant was violated upstream.
	ErrRangeCollapse = errors.New("arithcode: range collapsed")
)

// Interval is a half-open symbol sub-interval [Low, High) within
// [0, TotalFrequency) as reported by a Model.
type Interval struct {
	Low  uint64
	High uint64
}

// FrequencyTable is a Model's state snapshot: a cumulative-frequency
// sub-interval per symbol, the total frequency and the message length.
//
// Order is the deterministic symbol order used to build Intervals; the
// decoder's linear scan uses Order instead of ranging over the
// Intervals map directly (the encoder looks its symbol up in Intervals
// by key), since Go map iteration
// order is randomized and a reproducible scan order is useful even
// though the scan's correctness never depends on it (intervals are
// disjoint, so at most one ever matches).
type FrequencyTable[S comparable] struct {
	Intervals      map[S]Interval
	Order          []S
	TotalFrequency uint64
	MessageLength  int
}

// Model is the pluggable probability model contract (spec section 4.3).
// A Model maps symbols to cumulative-frequency sub-intervals and reports
// the total frequency and the number of symbols in the message.
//
// Implementations must return intervals that are pairwise disjoint and
// whose union is exactly [0, TotalFrequency), with TotalFrequency no
// greater than QUARTER at the coder's configured precision.
type Model[S comparable] interface {
	// Snapshot returns the model's current state without mutating it.
	Snapshot() (FrequencyTable[S], error)

	// UpdateEncode is called by the encoder before consuming each symbol.
	// remaining is the not-yet-encoded suffix of the message, symbol
	// included at remaining[0]. The returned table must cover it.
	UpdateEncode(remaining []S) (FrequencyTable[S], error)

	// UpdateDecode is the decoder-side symmetric hook, called after a
	// symbol has been decoded. decoded is the prefix decoded so far,
	// including the symbol just produced.
	UpdateDecode(decoded []S) (FrequencyTable[S], error)

	// MessageLength returns the number of symbols the decoder should
	// produce before stopping.
	MessageLength() int
}
