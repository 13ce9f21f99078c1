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

// Kind selects which Model implementation NewModel builds.
type Kind uint32

const (
	// KindStatic selects a StaticModel, built once from a full pass over
	// the message being encoded.
	KindStatic Kind = iota

	// KindAdaptive selects an AdaptiveModel, whose counts evolve as
	// symbols are observed.
	KindAdaptive
)

// String names a Kind, mirroring the teacher's GetName/GetType pair for
// its entropy codec type constants.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "STATIC"
	case KindAdaptive:
		return "ADAPTIVE"
	default:
		return "UNKNOWN"
	}
}

// KindFromName is the inverse of Kind.String.
func KindFromName(name string) (Kind, error) {
	switch name {
	case "STATIC":
		return KindStatic, nil
	case "ADAPTIVE":
		return KindAdaptive, nil
	default:
		return 0, fmt.Errorf("model: unsupported model kind %q", name)
	}
}

// Params bundles the construction arguments needed by either Model
// implementation; fields irrelevant to the selected Kind are ignored.
type Params[S comparable] struct {
	// Data seeds a StaticModel; required for KindStatic.
	Data []S

	// Alphabet seeds an AdaptiveModel with its full symbol set; required
	// for KindAdaptive (an AdaptiveModel cannot discover symbols as they
	// are encoded — see AdaptiveModel's doc comment).
	Alphabet []S

	// MessageLength seeds an AdaptiveModel; required for KindAdaptive.
	MessageLength int

	// Scale bounds TotalFrequency (the coder's QUARTER budget). Zero
	// disables rescaling.
	Scale uint64
}

// NewModel builds a Model of the requested Kind. This mirrors the
// teacher's NewEntropyEncoder/NewEntropyDecoder dispatch-by-type
// pattern, generalized from selecting a concrete entropy codec to
// selecting a concrete Model implementation; no type tag is written to
// any stream, since callers select a Kind in-process (spec.md forbids
// on-disk framing).
func NewModel[S comparable](kind Kind, p Params[S]) (arithcode.Model[S], error) {
	switch kind {
	case KindStatic:
		return NewStaticModel(p.Data, p.Scale)

	case KindAdaptive:
		return NewAdaptiveModel[S](p.Alphabet, p.MessageLength, p.Scale), nil

	default:
		return nil, fmt.Errorf("model: unsupported model kind %d", kind)
	}
}
