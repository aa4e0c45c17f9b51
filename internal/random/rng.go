// Package random provides the injectable uniform source used by outcome
// generation.
package random

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source supplies uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// secure builds each value from 53 bits of crypto/rand output. It falls back
// to the runtime-seeded math/rand generator if the system reader fails.
type secure struct{}

func (secure) Float64() float64 {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return rand.Float64()
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// Default returns the unseeded source used in play.
func Default() Source { return secure{} }

// NewSeeded returns a PCG generator. Equal seeds give equal sequences, so a
// session started with a configured seed can be played back.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, 0))
}

// NewSeed draws a fresh seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Fixed is a scripted source. It returns its values in order and starts over
// after the last one. Calls counts draws.
type Fixed struct {
	values []float64
	next   int
	Calls  int
}

// NewFixed scripts the given values. With none it always returns 0.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Fixed{values: values}
}

func (f *Fixed) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	f.Calls++
	return v
}

// IntN returns a value in [0, n) drawn from src. n must be positive.
func IntN(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Shuffle permutes n elements in place with Fisher-Yates.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, IntN(src, i+1))
	}
}
