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

import "testing"

func TestAdaptiveModelSeedsAlphabetAtConstruction(t *testing.T) {
	m := NewAdaptiveModel[byte]([]byte{7, 9}, 5, 0)

	table, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(table.Order) != 2 || table.TotalFrequency != 2 {
		t.Fatalf("seeded AdaptiveModel table = %+v, want 2 symbols at TotalFrequency 2", table)
	}

	for _, sym := range []byte{7, 9} {
		iv, ok := table.Intervals[sym]

		if !ok || iv.High-iv.Low != 1 {
			t.Fatalf("symbol %d interval = %+v, want width 1", sym, iv)
		}
	}

	if m.MessageLength() != 5 {
		t.Fatalf("MessageLength() = %d, want 5", m.MessageLength())
	}
}

func TestAdaptiveModelSeedDeduplicatesAlphabet(t *testing.T) {
	m := NewAdaptiveModel[byte]([]byte{7, 7, 9, 7}, 1, 0)

	table, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(table.Order) != 2 || table.TotalFrequency != 2 {
		t.Fatalf("table after duplicate alphabet entries = %+v, want 2 distinct symbols at TotalFrequency 2", table)
	}
}

func TestAdaptiveModelUpdateEncodeExcludesCurrentSymbol(t *testing.T) {
	m := NewAdaptiveModel[byte]([]byte{7, 9}, 3, 0)
	data := []byte{7, 7, 9}

	// The table returned for data[0] must reflect only the seeded
	// baseline, never data[0]'s own occurrence.
	table, err := m.UpdateEncode(data)
	if err != nil {
		t.Fatalf("UpdateEncode: %v", err)
	}

	if table.TotalFrequency != 2 {
		t.Fatalf("table for symbol 0 has TotalFrequency %d, want 2 (baseline only)", table.TotalFrequency)
	}

	iv := table.Intervals[7]

	if iv.High-iv.Low != 1 {
		t.Fatalf("symbol 7's interval before its own occurrence = %+v, want width 1", iv)
	}

	// The table returned for data[1] (second 7) must reflect data[0]'s
	// occurrence but not data[1]'s own.
	table, err = m.UpdateEncode(data[1:])
	if err != nil {
		t.Fatalf("UpdateEncode: %v", err)
	}

	if table.TotalFrequency != 3 {
		t.Fatalf("table for symbol 1 has TotalFrequency %d, want 3 (baseline + one observation)", table.TotalFrequency)
	}

	iv = table.Intervals[7]

	if iv.High-iv.Low != 2 {
		t.Fatalf("symbol 7's interval before its second occurrence = %+v, want width 2", iv)
	}
}

func TestAdaptiveModelEncodeDecodeTablesMatchBeforeEachSymbol(t *testing.T) {
	data := []byte{1, 1, 2, 1, 3}
	alphabet := []byte{1, 2, 3}

	enc := NewAdaptiveModel[byte](alphabet, len(data), 0)
	dec := NewAdaptiveModel[byte](alphabet, len(data), 0)

	decoded := make([]byte, 0, len(data))

	for i, sym := range data {
		// The decoder's table for symbol i comes from Snapshot, taken
		// before it knows what symbol i is — this must match the table
		// the encoder used to encode symbol i.
		decTable, err := dec.Snapshot()
		if err != nil {
			t.Fatalf("symbol %d: Snapshot: %v", i, err)
		}

		encTable, err := enc.UpdateEncode(data[i:])
		if err != nil {
			t.Fatalf("symbol %d: UpdateEncode: %v", i, err)
		}

		if encTable.TotalFrequency != decTable.TotalFrequency {
			t.Fatalf("symbol %d: encoder total %d != decoder total %d", i, encTable.TotalFrequency, decTable.TotalFrequency)
		}

		for _, s := range encTable.Order {
			if encTable.Intervals[s] != decTable.Intervals[s] {
				t.Fatalf("symbol %d: interval for %d diverged: enc=%+v dec=%+v", i, s, encTable.Intervals[s], decTable.Intervals[s])
			}
		}

		decoded = append(decoded, sym)

		if _, err := dec.UpdateDecode(decoded); err != nil {
			t.Fatalf("symbol %d: UpdateDecode: %v", i, err)
		}
	}
}

func TestAdaptiveModelRescaleKeepsTotalUnderScale(t *testing.T) {
	alphabet := []byte{0, 1, 2, 3}
	m := NewAdaptiveModel[byte](alphabet, 1000, 16)
	data := make([]byte, 1000)

	for i := range data {
		data[i] = byte(i % 4)
	}

	for i := range data {
		table, err := m.UpdateEncode(data[i:])
		if err != nil {
			t.Fatalf("UpdateEncode: %v", err)
		}

		if table.TotalFrequency > 16 {
			t.Fatalf("symbol %d: TotalFrequency = %d, exceeds scale 16", i, table.TotalFrequency)
		}
	}
}

func TestAdaptiveModelRescaleNeverZeroesASeededSymbol(t *testing.T) {
	alphabet := []byte{0, 1, 2, 3, 4}
	m := NewAdaptiveModel[byte](alphabet, 1000, 8)
	data := make([]byte, 1000)

	for i := range data {
		data[i] = byte(i % 5)
	}

	for i := range data {
		table, err := m.UpdateEncode(data[i:])
		if err != nil {
			t.Fatalf("UpdateEncode: %v", err)
		}

		for _, sym := range table.Order {
			iv := table.Intervals[sym]

			if iv.High == iv.Low {
				t.Fatalf("symbol %d went to zero frequency after %d observations", sym, i+1)
			}
		}
	}
}
