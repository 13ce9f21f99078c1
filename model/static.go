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

package model

import (
	"fmt"

	"github.com/gauvainw/arithmetic-coding"
)

// StaticModel is the default Model: it computes a FrequencyTable once
// from a full pass over the data and returns the same snapshot on every
// subsequent call. Encoder and decoder must be built from equivalent
// StaticModels (same symbol order) for the bitstream to be meaningful.
//
// Grounded on the Rust reference's Standard<T>: intervals are assigned
// in one pass, in cumulative order, over the observed symbols.
type StaticModel[S comparable] struct {
	table arithcode.FrequencyTable[S]
}

// NewStaticModel builds a StaticModel from data. If the raw symbol
// counts would exceed scale (the coder's QUARTER budget), they are
// rescaled with NormalizeFrequencies so TotalFrequency <= scale, unless
// data has more distinct symbols than scale, in which case each symbol
// keeps a count of 1 and TotalFrequency is the number of distinct
// symbols. Pass scale == 0 to skip rescaling (use the raw counts
// verbatim).
//
// Symbol order is the order of first occurrence in data, so two
// StaticModels built from the same data always assign identical
// intervals regardless of Go's randomized map iteration order.
func NewStaticModel[S comparable](data []S, scale uint64) (*StaticModel[S], error) {
	order := make([]S, 0)
	counts := make(map[S]uint64)

	for _, sym := range data {
		if _, seen := counts[sym]; !seen {
			order = append(order, sym)
		}

		counts[sym]++
	}

	freqs := make([]uint64, len(order))
	total := uint64(0)

	for i, sym := range order {
		freqs[i] = counts[sym]
		total += freqs[i]
	}

	if scale > 0 && total > scale {
		if err := NormalizeFrequencies(freqs, total, scale); err != nil {
			return nil, fmt.Errorf("model: building static model: %w", err)
		}

		total = 0

		for _, f := range freqs {
			total += f
		}
	}

	intervals := make(map[S]arithcode.Interval, len(order))
	cum := uint64(0)

	for i, sym := range order {
		intervals[sym] = arithcode.Interval{Low: cum, High: cum + freqs[i]}
		cum += freqs[i]
	}

	return &StaticModel[S]{
		table: arithcode.FrequencyTable[S]{
			Intervals:      intervals,
			Order:          order,
			TotalFrequency: cum,
			MessageLength:  len(data),
		},
	}, nil
}

// Snapshot returns the model's fixed table.
func (this *StaticModel[S]) Snapshot() (arithcode.FrequencyTable[S], error) {
	return this.table, nil
}

// UpdateEncode returns the same fixed table regardless of remaining; a
// static model never adapts.
func (this *StaticModel[S]) UpdateEncode(remaining []S) (arithcode.FrequencyTable[S], error) {
	return this.table, nil
}

// UpdateDecode returns the same fixed table regardless of decoded; a
// static model never adapts.
func (this *StaticModel[S]) UpdateDecode(decoded []S) (arithcode.FrequencyTable[S], error) {
	return this.table, nil
}

// MessageLength returns the number of symbols the model was built from.
func (this *StaticModel[S]) MessageLength() int {
	return this.table.MessageLength
}
