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

// Package model provides Model implementations for the arithmetic
// coder: a StaticModel built once from a full pass over the message, an
// AdaptiveModel that updates its counts as symbols are observed, and a
// small factory selecting between them.
package model

import (
	"fmt"
	"sort"
)

type freqSortEntry struct {
	freq *uint64
	idx  int
}

type byDecreasingFreq []*freqSortEntry

func (s byDecreasingFreq) Len() int      { return len(s) }
func (s byDecreasingFreq) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byDecreasingFreq) Less(i, j int) bool {
	if *s[j].freq == *s[i].freq {
		return s[j].idx < s[i].idx
	}

	return *s[j].freq < *s[i].freq
}

// NormalizeFrequencies rescales freqs in place so that the nonzero
// entries sum to exactly scale, preserving relative proportions as
// closely as integer rounding allows. It never drives a nonzero
// frequency to zero. totalFreq must equal the sum of freqs on entry.
//
// When freqs holds more nonzero entries than scale, no result can meet
// both rules: every nonzero entry is then left at 1, so the sum is the
// number of nonzero entries and exceeds scale.
//
// Ported from the teacher's EntropyUtils.NormalizeFrequencies (which
// scales byte histograms for its range/FPAQ codecs) and generalized from
// a fixed 256-entry alphabet to an arbitrary-length frequency slice.
func NormalizeFrequencies(freqs []uint64, totalFreq, scale uint64) error {
	if scale < 4 {
		return fmt.Errorf("model: invalid scale %d (must be at least 4)", scale)
	}

	if totalFreq == 0 {
		return nil
	}

	if totalFreq == scale {
		return nil
	}

	sumScaled := uint64(0)
	idxMax := 0
	var maxScaled uint64

	for i, f := range freqs {
		if f == 0 {
			continue
		}

		sf := f * scale
		var scaledFreq uint64

		if sf <= totalFreq {
			scaledFreq = 1
		} else {
			scaledFreq = sf / totalFreq
			errCeil := (scaledFreq+1)*totalFreq - sf
			errFloor := sf - scaledFreq*totalFreq

			if errCeil < errFloor {
				scaledFreq++
			}
		}

		freqs[i] = scaledFreq
		sumScaled += scaledFreq

		if scaledFreq > maxScaled {
			maxScaled = scaledFreq
			idxMax = i
		}
	}

	if sumScaled == scale {
		return nil
	}

	delta := int64(sumScaled) - int64(scale)
	errThreshold := maxScaled >> 4
	var inc int64

	if delta < 0 {
		inc = 1
	} else {
		inc = -1
	}

	absDelta := delta
	if absDelta < 0 {
		absDelta = -absDelta
	}

	if uint64(absDelta) <= errThreshold {
		// Fast path: the whole error fits in the largest frequency.
		freqs[idxMax] = uint64(int64(freqs[idxMax]) - delta)
		return nil
	}

	if delta < 0 {
		freqs[idxMax] += errThreshold
		sumScaled += errThreshold
	} else {
		freqs[idxMax] -= errThreshold
		sumScaled -= errThreshold
	}

	// Slow path: spread the remaining error across frequencies, largest
	// first, never zeroing out a present symbol.
	queue := make(byDecreasingFreq, 0, len(freqs))

	for i := range freqs {
		if freqs[i] <= 2 {
			continue
		}

		queue = append(queue, &freqSortEntry{freq: &freqs[i], idx: i})
	}

	sort.Sort(queue)

	for len(queue) != 0 && sumScaled != scale {
		e := queue[0]
		queue = queue[1:]

		if int64(*e.freq) == -inc {
			continue
		}

		*e.freq = uint64(int64(*e.freq) + inc)
		sumScaled = uint64(int64(sumScaled) + inc)
		queue = append(queue, e)
	}

	if sumScaled != scale {
		for i := range freqs {
			if int64(freqs[i]) != -inc {
				freqs[i] = uint64(int64(freqs[i]) + inc)
				sumScaled = uint64(int64(sumScaled) + inc)

				if sumScaled == scale {
					break
				}
			}
		}
	}

	return nil
}
