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
	"github.com/gauvainw/arithmetic-coding"
)

// adaptiveRescaleShift is the shift applied to every count once the
// running total would exceed the model's scale budget. Halving every
// count (rather than clamping the offending one) preserves the ratios
// between symbols, the same goal as the teacher's CMPredictor counter
// decay (pc1[x] -= pc1[x] >> rate keeps a probability trending toward a
// target while never distorting it in one jump).
const adaptiveRescaleShift = 1

// AdaptiveModel is a Model whose FrequencyTable changes as symbols are
// observed: each occurrence increments that symbol's count by
// initialIncrement, and whenever the running total would exceed scale,
// every count is halved (floor, minimum 1 for symbols already present)
// to bring the total back under budget while preserving relative
// weight.
//
// Unlike StaticModel, an AdaptiveModel must be told its full symbol
// alphabet up front (at construction, every alphabet symbol is seeded
// with a count of initialIncrement) rather than discovering symbols as
// they are encoded. A decoder has no way to learn of a symbol's
// existence before decoding it, so the table used to decode (or encode)
// any occurrence can only ever reflect counts through the previous
// occurrence, never a symbol's own first appearance — the alphabet must
// already be known on both sides for that table to have an entry at
// all. This mirrors the teacher's bit predictors (CMPredictor,
// TPAQPredictor), which likewise size their counter tables from a fixed,
// known alphabet (one entry per possible byte value) rather than growing
// them as new values are observed.
//
// This is the "adaptive counters" variant spec.md section 9 invites as
// an alternative to StaticModel; section 4.3's precondition
// (TotalFrequency <= scale) is maintained continuously rather than
// computed once.
type AdaptiveModel[S comparable] struct {
	order            []S
	counts           map[S]uint64
	total            uint64
	scale            uint64
	initialIncrement uint64
	messageLength    int
}

// NewAdaptiveModel creates an AdaptiveModel seeded with one occurrence of
// every symbol in alphabet (duplicates are ignored; order is the order
// of first appearance in alphabet). messageLength is the number of
// symbols the decoder should expect to produce; scale bounds
// TotalFrequency (the coder's QUARTER budget).
func NewAdaptiveModel[S comparable](alphabet []S, messageLength int, scale uint64) *AdaptiveModel[S] {
	m := &AdaptiveModel[S]{
		counts:           make(map[S]uint64, len(alphabet)),
		scale:            scale,
		initialIncrement: 1,
		messageLength:    messageLength,
	}

	for _, sym := range alphabet {
		if _, seen := m.counts[sym]; seen {
			continue
		}

		m.order = append(m.order, sym)
		m.counts[sym] = m.initialIncrement
		m.total += m.initialIncrement
	}

	return m
}

// Snapshot returns the current table without observing anything.
func (this *AdaptiveModel[S]) Snapshot() (arithcode.FrequencyTable[S], error) {
	return this.build(), nil
}

// UpdateEncode returns the table built from counts observed through the
// symbol preceding remaining[0] — never including remaining[0]'s own
// occurrence — and only then observes remaining[0]. The table used to
// encode a symbol must never contain that symbol's own occurrence: the
// decoder cannot see symbol i before decoding it, so the encoder must
// not either, or the two sides' tables for symbol i would diverge.
func (this *AdaptiveModel[S]) UpdateEncode(remaining []S) (arithcode.FrequencyTable[S], error) {
	table := this.build()

	if len(remaining) > 0 {
		this.observe(remaining[0])
	}

	return table, nil
}

// UpdateDecode observes decoded[len(decoded)-1] (the symbol just
// produced), updating counts for the next symbol's table. The table it
// returns is not used by the decoder (which re-fetches Snapshot at the
// top of its next iteration) but reflects the post-observation state for
// symmetry with UpdateEncode.
func (this *AdaptiveModel[S]) UpdateDecode(decoded []S) (arithcode.FrequencyTable[S], error) {
	if len(decoded) > 0 {
		this.observe(decoded[len(decoded)-1])
	}

	return this.build(), nil
}

// MessageLength returns the configured message length.
func (this *AdaptiveModel[S]) MessageLength() int {
	return this.messageLength
}

func (this *AdaptiveModel[S]) observe(sym S) {
	if _, seen := this.counts[sym]; !seen {
		this.order = append(this.order, sym)
	}

	this.counts[sym] += this.initialIncrement
	this.total += this.initialIncrement

	if this.scale > 0 {
		for this.total > this.scale {
			this.rescale()
		}
	}
}

func (this *AdaptiveModel[S]) rescale() {
	this.total = 0

	for _, sym := range this.order {
		c := this.counts[sym] >> adaptiveRescaleShift

		if c == 0 {
			c = 1
		}

		this.counts[sym] = c
		this.total += c
	}
}

func (this *AdaptiveModel[S]) build() arithcode.FrequencyTable[S] {
	intervals := make(map[S]arithcode.Interval, len(this.order))
	cum := uint64(0)

	for _, sym := range this.order {
		c := this.counts[sym]
		intervals[sym] = arithcode.Interval{Low: cum, High: cum + c}
		cum += c
	}

	return arithcode.FrequencyTable[S]{
		Intervals:      intervals,
		Order:          this.order,
		TotalFrequency: cum,
		MessageLength:  this.messageLength,
	}
}
