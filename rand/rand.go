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

// Package rand provides randomness streams for the noise mechanisms.
//
// A Source is owned by exactly one mechanism at a time and is not safe for
// concurrent use; concurrent computations create one Source each. Production
// code reads from crypto/rand via NewSecure. Tests and reproducible runs use
// NewSeeded, which expands the seed into a ChaCha20 keystream.
package rand

import (
	"bufio"
	"crypto/cipher"
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"

	log "github.com/golang/glog"
	"golang.org/x/crypto/chacha20"
)

// Source is a stream of uniformly random bits.
type Source struct {
	buf io.Reader
}

// NewSecure returns a Source backed by the operating system's CSPRNG.
func NewSecure() *Source {
	return &Source{buf: bufio.NewReaderSize(cryptorand.Reader, 65536)}
}

// NewSeeded returns a deterministic Source: two Sources created with the same
// seed produce bit-identical streams.
func NewSeeded(seed uint64) *Source {
	var key [chacha20.KeySize]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed above.
		log.Fatalf("couldn't initialize chacha20 keystream, should never happen: %v", err)
	}
	return &Source{buf: cipher.StreamReader{S: c, R: zeroReader{}}}
}

// NewFromReader returns a Source that reads its bits from r.
func NewFromReader(r io.Reader) *Source {
	return &Source{buf: r}
}

// zeroReader yields an endless stream of zero bytes; XORed with a keystream it
// yields the keystream itself.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// U64 returns a uniformly random uint64.
func (s *Source) U64() uint64 {
	var r [8]uint8
	if _, err := io.ReadFull(s.buf, r[:]); err != nil {
		log.Fatalf("out of randomness, should never happen: %v", err)
	}
	return binary.LittleEndian.Uint64(r[:])
}

// Centered returns a float64 drawn uniformly from the open interval
// (-0.5, 0.5). Both endpoints are excluded so that log(1 - 2|u|) is finite.
//
// The result is (2k+1)/2⁵³ - 0.5 for a uniform 52 bit integer k; every step
// of that computation is exact in float64.
func (s *Source) Centered() float64 {
	k := s.U64() >> 12
	return float64(2*k+1)/(1<<53) - 0.5
}
