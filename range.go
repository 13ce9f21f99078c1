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

package arithcode

import "fmt"

// MinPrecisionBits and MaxPrecisionBits bound the configurable precision
// of a Range. DefaultPrecisionBits is used when a coder is built without
// a precision argument.
const (
	MinPrecisionBits     = 8
	MaxPrecisionBits     = 62
	DefaultPrecisionBits = 32
)

// Range is the fixed-precision half-open interval [Low, High) shared by
// the encoder and the decoder. It tracks its own WHOLE/HALF/QUARTER
// constants derived from a precision fixed for its lifetime.
//
// All arithmetic is carried out in uint64: at the default 32-bit
// precision, Width*TotalFrequency fits comfortably below 2^64 provided
// TotalFrequency stays within the QUARTER budget Narrow requires.
type Range struct {
	Low           uint64
	High          uint64
	PrecisionBits uint
	Whole         uint64
	Half          uint64
	Quarter       uint64
	ThreeQuarters uint64
}

// NewRange creates a Range quiesced to [0, WHOLE) at the given precision.
// precisionBits must be in [MinPrecisionBits, MaxPrecisionBits].
func NewRange(precisionBits uint) (*Range, error) {
	if precisionBits < MinPrecisionBits || precisionBits > MaxPrecisionBits {
		return nil, fmt.Errorf("arithcode: invalid precision %d (must be in [%d..%d])",
			precisionBits, MinPrecisionBits, MaxPrecisionBits)
	}

	whole := uint64(1) << precisionBits
	quarter := whole / 4

	return &Range{
		Low:           0,
		High:          whole,
		PrecisionBits: precisionBits,
		Whole:         whole,
		Half:          whole / 2,
		Quarter:       quarter,
		ThreeQuarters: 3 * quarter,
	}, nil
}

// Narrow restricts the range to the sub-interval [symLow, symHigh) of
// [0, totalFreq), computing new High before new Low so that both use the
// pre-update Low (spec section 4.2).
func (r *Range) Narrow(symLow, symHigh, totalFreq uint64) error {
	width := r.High - r.Low
	newHigh := r.Low + (width*symHigh)/totalFreq
	newLow := r.Low + (width*symLow)/totalFreq

	if newLow >= newHigh {
		return ErrRangeCollapse
	}

	r.High = newHigh
	r.Low = newLow
	return nil
}

// CalculateNarrow returns what Narrow would compute without mutating the
// range. Used by the decoder's linear scan to test candidate symbols.
func (r *Range) CalculateNarrow(symLow, symHigh, totalFreq uint64) (low, high uint64) {
	width := r.High - r.Low
	high = r.Low + (width*symHigh)/totalFreq
	low = r.Low + (width*symLow)/totalFreq
	return low, high
}

// IsBottomHalf reports whether the range lies wholly in [0, HALF).
func (r *Range) IsBottomHalf() bool {
	return r.High < r.Half
}

// IsAboveHalf reports whether the range lies wholly in [HALF, WHOLE).
func (r *Range) IsAboveHalf() bool {
	return r.Low >= r.Half
}

// IsMiddleHalf reports whether the range lies wholly within
// [QUARTER, THREE_QUARTERS). It can hold at the same time as IsBottomHalf
// or IsAboveHalf; the renormalization loops test bottom-half and
// above-half first.
func (r *Range) IsMiddleHalf() bool {
	return r.Low >= r.Quarter && r.High < r.ThreeQuarters
}

// IsQuiescent reports that none of the three renormalization predicates
// hold, i.e. the renormalization loop should stop.
func (r *Range) IsQuiescent() bool {
	return !r.IsBottomHalf() && !r.IsAboveHalf() && !r.IsMiddleHalf()
}

// AboveQuarter is the disambiguator used by the encoder at termination.
func (r *Range) AboveQuarter() bool {
	return r.Low > r.Quarter
}

// ScaleBottomHalf doubles both bounds in place.
func (r *Range) ScaleBottomHalf() {
	r.Low *= 2
	r.High *= 2
}

// ScaleAboveHalf folds HALF out of both bounds then doubles them.
func (r *Range) ScaleAboveHalf() {
	r.Low = (r.Low - r.Half) * 2
	r.High = (r.High - r.Half) * 2
}

// ScaleMiddleHalf folds QUARTER out of both bounds then doubles them.
func (r *Range) ScaleMiddleHalf() {
	r.Low = (r.Low - r.Quarter) * 2
	r.High = (r.High - r.Quarter) * 2
}
