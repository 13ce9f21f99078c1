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

package coder

import (
	"errors"
	"fmt"

	"github.com/gauvainw/arithmetic-coding"
	"github.com/gauvainw/arithmetic-coding/bitio"
)

// Decoder mirrors an Encoder's state evolution, consuming bits from a
// bitio.Reader and locating, at each step, the symbol whose sub-interval
// contains the current code value. A Decoder is not reentrant and must
// not be shared across goroutines; build one per message.
//
// Grounded on decoder.rs's ArithmeticDecoder.
type Decoder[S comparable] struct {
	model arithcode.Model[S]
	rng   *arithcode.Range
	in    bitio.Reader
	code  uint64
}

// NewDecoder creates a Decoder reading from in, driven by model. args
// may supply a single precisionBits override; it must match the value
// used by the Encoder that produced the stream.
func NewDecoder[S comparable](in bitio.Reader, m arithcode.Model[S], args ...uint) (*Decoder[S], error) {
	if in == nil {
		return nil, errors.New("coder: invalid nil bit reader")
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

	return &Decoder[S]{model: m, rng: rng, in: in}, nil
}

// Decode consumes bits until the model's declared MessageLength symbols
// have been produced and returns them in order. It fails with
// arithcode.ErrMalformedStream if the current code value matches no
// symbol's sub-interval, or arithcode.ErrModelDesync if more symbols
// would be produced than MessageLength declares.
func (this *Decoder[S]) Decode() ([]S, error) {
	length := this.model.MessageLength()
	result := make([]S, 0, length)

	if length == 0 {
		return result, nil
	}

	this.code = 0

	for i := uint(1); i <= this.rng.PrecisionBits; i++ {
		this.code += uint64(this.in.ReadNextBit()) << (this.rng.PrecisionBits - i)
	}

	for {
		table, err := this.model.Snapshot()
		if err != nil {
			return result, fmt.Errorf("coder: model snapshot failed: %w", err)
		}

		if table.TotalFrequency > this.rng.Quarter {
			return result, fmt.Errorf("%w: %d > %d", arithcode.ErrTotalFrequencyOverflow,
				table.TotalFrequency, this.rng.Quarter)
		}

		sym, ok := this.scan(table)
		if !ok {
			return result, arithcode.ErrMalformedStream
		}

		iv := table.Intervals[sym]

		if err := this.rng.Narrow(iv.Low, iv.High, table.TotalFrequency); err != nil {
			return result, err
		}

		result = append(result, sym)

		// UpdateDecode is called after every committed symbol, including
		// the last, mirroring the encoder's UpdateEncode call on every
		// index of data (encoder.go's loop has no special case for the
		// final symbol either).
		if _, err := this.model.UpdateDecode(result); err != nil {
			return result, fmt.Errorf("coder: model update failed at symbol %d: %w", len(result), err)
		}

		if len(result) == length {
			return result, nil
		}

		if len(result) > length {
			return result, arithcode.ErrModelDesync
		}

		this.renormalize()
	}
}

// scan performs the linear search over table.Order for the symbol whose
// sub-interval contains the current code value, without mutating rng.
func (this *Decoder[S]) scan(table arithcode.FrequencyTable[S]) (S, bool) {
	for _, sym := range table.Order {
		iv := table.Intervals[sym]
		low, high := this.rng.CalculateNarrow(iv.Low, iv.High, table.TotalFrequency)

		if low <= this.code && this.code < high {
			return sym, true
		}
	}

	var zero S
	return zero, false
}

// renormalize mirrors the encoder's E1/E2/E3 scaling protocol, folding
// a freshly-read bit into code on every scaling step.
func (this *Decoder[S]) renormalize() {
	for {
		switch {
		case this.rng.IsBottomHalf():
			this.rng.ScaleBottomHalf()
			this.code = 2*this.code + uint64(this.in.ReadNextBit())

		case this.rng.IsAboveHalf():
			half := this.rng.Half
			this.rng.ScaleAboveHalf()
			this.code = 2*(this.code-half) + uint64(this.in.ReadNextBit())

		case this.rng.IsMiddleHalf():
			quarter := this.rng.Quarter
			this.rng.ScaleMiddleHalf()
			this.code = 2*(this.code-quarter) + uint64(this.in.ReadNextBit())

		default:
			return
		}
	}
}
