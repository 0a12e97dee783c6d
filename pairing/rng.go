/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "math/rand/v2"

// RNG yields floats uniformly distributed in [0,1).
type RNG interface {
	Float64() float64
}

// Mulberry32 is a small 32-bit state generator. The same seed always yields
// the same sequence.
type Mulberry32 struct {
	state uint32
}

// NewRNG returns a generator seeded with seed. A zero seed is treated as 1.
func NewRNG(seed int64) *Mulberry32 {
	if seed == 0 {
		seed = 1
	}
	return &Mulberry32{state: uint32(seed)}
}

func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296.0
}

type unseeded struct{}

func (unseeded) Float64() float64 { return rand.Float64() }

// rngFor returns a seeded generator, or the non-reproducible global source
// when seed is nil.
func rngFor(seed *int64) RNG {
	if seed == nil {
		return unseeded{}
	}
	return NewRNG(*seed)
}

// Shuffle returns a permuted copy of in using Fisher-Yates. in is never
// modified. With a nil seed the permutation is not reproducible.
func Shuffle[T any](in []T, seed *int64) []T {
	out := append([]T(nil), in...)
	rnd := rngFor(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rnd.Float64() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// nextSeed derives the seed of the second pool so both pools are not permuted
// in lockstep.
func nextSeed(seed *int64) *int64 {
	if seed == nil {
		return nil
	}
	s := *seed + 1
	return &s
}
