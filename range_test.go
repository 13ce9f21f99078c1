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

import (
	"math/rand"
	"testing"
)

func TestNewRangeRejectsOutOfBoundsPrecision(t *testing.T) {
	if _, err := NewRange(MinPrecisionBits - 1); err == nil {
		t.Errorf("expected an error for precision %d", MinPrecisionBits-1)
	}

	if _, err := NewRange(MaxPrecisionBits + 1); err == nil {
		t.Errorf("expected an error for precision %d", MaxPrecisionBits+1)
	}

	if _, err := NewRange(DefaultPrecisionBits); err != nil {
		t.Errorf("unexpected error at default precision: %v", err)
	}
}

func TestNewRangeConstants(t *testing.T) {
	r, err := NewRange(16)

	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}

	if r.Whole != 1<<16 {
		t.Errorf("Whole = %d, want %d", r.Whole, uint64(1)<<16)
	}

	if r.Half != r.Whole/2 {
		t.Errorf("Half = %d, want %d", r.Half, r.Whole/2)
	}

	if r.Quarter != r.Whole/4 {
		t.Errorf("Quarter = %d, want %d", r.Quarter, r.Whole/4)
	}

	if r.ThreeQuarters != 3*r.Quarter {
		t.Errorf("ThreeQuarters = %d, want %d", r.ThreeQuarters, 3*r.Quarter)
	}

	if r.Low != 0 || r.High != r.Whole {
		t.Errorf("fresh range = [%d, %d), want [0, %d)", r.Low, r.High, r.Whole)
	}
}

func TestNarrowRejectsCollapse(t *testing.T) {
	r, _ := NewRange(MinPrecisionBits)

	// A zero-width symbol interval with a huge totalFreq collapses the
	// narrowed range at this precision.
	if err := r.Narrow(5, 5, 1<<20); err == nil {
		t.Errorf("expected ErrRangeCollapse for a zero-width symbol interval")
	}
}

func TestNarrowUsesPreUpdateLow(t *testing.T) {
	r, _ := NewRange(16)

	// Ten successive narrowings to the second half of [0, total) must keep
	// Low < High, and because the new High is computed from the pre-update
	// Low it stays at Whole every time.
	for i := 0; i < 10; i++ {
		if err := r.Narrow(2, 4, 4); err != nil {
			t.Fatalf("Narrow: %v", err)
		}

		if r.Low >= r.High {
			t.Fatalf("range collapsed after %d narrowings", i+1)
		}

		if r.High != r.Whole {
			t.Fatalf("High = %d after %d narrowings, want %d (new High must use the pre-update Low)", r.High, i+1, r.Whole)
		}
	}
}

func TestCalculateNarrowDoesNotMutate(t *testing.T) {
	r, _ := NewRange(16)
	lowBefore, highBefore := r.Low, r.High

	low, high := r.CalculateNarrow(1, 3, 4)

	if r.Low != lowBefore || r.High != highBefore {
		t.Errorf("CalculateNarrow mutated the range: [%d,%d) -> [%d,%d)", lowBefore, highBefore, r.Low, r.High)
	}

	if low >= high {
		t.Errorf("CalculateNarrow produced an empty interval [%d,%d)", low, high)
	}
}

// IsMiddleHalf may hold together with IsBottomHalf or IsAboveHalf (the
// renormalization loops test the predicates in that priority order), but
// a non-empty range can never lie wholly below and wholly above HALF.
func TestBottomAndAboveHalfPredicatesAreMutuallyExclusive(t *testing.T) {
	r, _ := NewRange(12)
	rnd := rand.New(rand.NewSource(1))

	for trial := 0; trial < 2000; trial++ {
		r.Low = uint64(rnd.Int63n(int64(r.Whole)))
		r.High = r.Low + 1 + uint64(rnd.Int63n(int64(r.Whole-r.Low)))

		count := 0

		if r.IsBottomHalf() {
			count++
		}

		if r.IsAboveHalf() {
			count++
		}

		if count > 1 {
			t.Fatalf("trial %d: [%d,%d) matched both the bottom-half and above-half predicates", trial, r.Low, r.High)
		}
	}
}

func TestScalingTerminates(t *testing.T) {
	r, _ := NewRange(MinPrecisionBits)
	rnd := rand.New(rand.NewSource(2))

	for trial := 0; trial < 200; trial++ {
		total := uint64(2 + rnd.Intn(int(r.Quarter)))
		symLow := uint64(rnd.Int63n(int64(total)))
		symHigh := symLow + 1 + uint64(rnd.Int63n(int64(total-symLow)))

		if err := r.Narrow(symLow, symHigh, total); err != nil {
			continue
		}

		steps := 0

		for !r.IsQuiescent() {
			switch {
			case r.IsBottomHalf():
				r.ScaleBottomHalf()
			case r.IsAboveHalf():
				r.ScaleAboveHalf()
			case r.IsMiddleHalf():
				r.ScaleMiddleHalf()
			}

			steps++

			if steps > int(r.PrecisionBits)+2 {
				t.Fatalf("trial %d: renormalization did not terminate", trial)
			}
		}
	}
}
