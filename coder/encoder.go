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

// Package coder implements the arithmetic coding Encoder and Decoder: the
// pair that drives an arithcode.Range through an arithcode.Model's
// per-symbol intervals, emitting or consuming bits through a bitio
// buffer.
package coder

import (
	"errors"
	"fmt"

	"github.com/gauvainw/arithmetic-coding"
	"github.com/gauvainw/arithmetic-coding/bitio"
)

// Encoder drives a Range using an externally-supplied Model and emits
// the resulting bits to a bitio.Writer. An Encoder is not reentrant and
// must not be shared across goroutines; build one per message.
//
// Grounded on encoder.rs's ArithmeticEncoder, translated into the
// teacher's receiver-method, explicit-error-return style (as in
// RangeEncoder.Write / encodeByte).
type Encoder[S comparable] struct {
	model   arithcode.Model[S]
	rng     *arithcode.Range
	out     bitio.Writer
	pending uint64
}

// NewEncoder creates an Encoder writing to out, driven by model. args
// may supply a single precisionBits override (defaults to
// arithcode.DefaultPrecisionBits), following the teacher's
// variadic-then-validate constructor convention
// (NewRangeEncoder(bs, args...)).
func NewEncoder[S comparable](out bitio.Writer, m arithcode.Model[S], args ...uint) (*Encoder[S], error) {
	if out == nil {
		return nil, errors.New("coder: invalid nil bit writer")
	}

	if m == nil {
		return nil, errors.New("coder: invalid nil model")
	}

	if len(args) > 1 {
		return nil, errors.New("coder: at most one precision argument can be provided")
	}

	precision := uint(arithcode.DefaultPrecisionBits)

	if len(args) == 1 {
		precision = args[0]
	}

	rng, err := arithcode.NewRange(precision)
	if err != nil {
		return nil, err
	}

	return &Encoder[S]{model: m, rng: rng, out: out}, nil
}

// Encode drives the coder through every symbol in data and flushes the
// final pending bits. It fails with arithcode.ErrUnknownSymbol if the
// model's table for a symbol does not contain it, or with
// arithcode.ErrTotalFrequencyOverflow if the model's total frequency
// exceeds the coder's QUARTER budget.
func (this *Encoder[S]) Encode(data []S) error {
	for i := range data {
		table, err := this.model.UpdateEncode(data[i:])
		if err != nil {
			return fmt.Errorf("coder: model update failed at symbol %d: %w", i, err)
		}

		if table.TotalFrequency > this.rng.Quarter {
			return fmt.Errorf("%w: %d > %d", arithcode.ErrTotalFrequencyOverflow,
				table.TotalFrequency, this.rng.Quarter)
		}

		iv, ok := table.Intervals[data[i]]
		if !ok {
			return fmt.Errorf("%w: %v", arithcode.ErrUnknownSymbol, data[i])
		}

		if err := this.rng.Narrow(iv.Low, iv.High, table.TotalFrequency); err != nil {
			return err
		}

		this.renormalize()
	}

	this.pending++

	if this.rng.AboveQuarter() {
		this.write(1)
	} else {
		this.write(0)
	}

	this.out.Flush()
	return nil
}

// renormalize runs the encoder's half of the E1/E2/E3 scaling protocol
// until the range is quiescent, deferring middle-half bits in pending
// until a bottom- or above-half step resolves their direction.
func (this *Encoder[S]) renormalize() {
	for {
		switch {
		case this.rng.IsBottomHalf():
			this.write(0)
			this.rng.ScaleBottomHalf()

		case this.rng.IsAboveHalf():
			this.write(1)
			this.rng.ScaleAboveHalf()

		case this.rng.IsMiddleHalf():
			this.pending++
			this.rng.ScaleMiddleHalf()

		default:
			return
		}
	}
}

// write emits bit, followed by pending copies of its complement —
// resolving however many middle-half straddles were deferred since the
// last resolved direction.
func (this *Encoder[S]) write(bit byte) {
	this.out.WriteBit(bit)

	for ; this.pending > 0; this.pending-- {
		this.out.WriteBit(bit ^ 1)
	}
}
