//
// Copyright 2024 The dpmean Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package rand

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestU64IsLittleEndian(t *testing.T) {
	s := NewFromReader(bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0x80}))
	if got, want := s.U64(), uint64(1)|1<<63; got != want {
		t.Errorf("U64: got %#x, want %#x", got, want)
	}
}

func TestCenteredExtremes(t *testing.T) {
	for _, tc := range []struct {
		desc string
		word uint64
		want float64
	}{
		{"all zero bits", 0, -0.5 + math.Exp2(-53)},
		{"all one bits", math.MaxUint64, 0.5 - math.Exp2(-53)},
		{"low bits are discarded", 0xfff, -0.5 + math.Exp2(-53)},
	} {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], tc.word)
		got := NewFromReader(bytes.NewReader(b[:])).Centered()
		if got != tc.want {
			t.Errorf("Centered: when %s got %v, want %v", tc.desc, got, tc.want)
		}
		if got <= -0.5 || got >= 0.5 {
			t.Errorf("Centered: when %s got %v, want a value in (-0.5, 0.5)", tc.desc, got)
		}
	}
}

func TestCenteredStaysInOpenInterval(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 100000; i++ {
		if u := s.Centered(); u <= -0.5 || u >= 0.5 {
			t.Fatalf("Centered: got %v in iteration %d, want a value in (-0.5, 0.5)", u, i)
		}
	}
}

func TestNewSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.U64(), b.U64(); x != y {
			t.Fatalf("NewSeeded(42): streams diverge in iteration %d: %#x != %#x", i, x, y)
		}
	}
}

func TestNewSeededDifferentSeedsDiffer(t *testing.T) {
	a, b := NewSeeded(1), NewSeeded(2)
	same := 0
	for i := 0; i < 16; i++ {
		if a.U64() == b.U64() {
			same++
		}
	}
	if same == 16 {
		t.Errorf("NewSeeded: seeds 1 and 2 produced identical streams")
	}
}

func TestNewSecureProducesDistinctWords(t *testing.T) {
	s := NewSecure()
	seen := make(map[uint64]bool)
	for i := 0; i < 64; i++ {
		seen[s.U64()] = true
	}
	if len(seen) < 60 {
		t.Errorf("NewSecure: got %d distinct words out of 64, want (almost) all distinct", len(seen))
	}
}
