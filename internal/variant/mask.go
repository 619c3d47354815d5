// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

import (
	"fmt"
	"math/bits"
)

// Mask selects a set of feature flags, one bit per flag.
type Mask uint32

const (
	// MaskBits is the number of low bits that select shader features.
	MaskBits = 24
	// LastBit is the highest bit position a flag may occupy.
	LastBit = MaskBits - 1
	// ValidMask covers every bit a flag may occupy.
	ValidMask Mask = 1<<MaskBits - 1
)

// Valid returns m with every bit above LastBit cleared.
func (m Mask) Valid() Mask {
	return m & ValidMask
}

// Has reports whether any bit of other is set in m.
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// Name renders the canonical variant name: the valid bits of m as uppercase
// hexadecimal without leading zeros.
func (m Mask) Name() string {
	return fmt.Sprintf("%X", uint32(m.Valid()))
}

// String implements fmt.Stringer.
func (m Mask) String() string {
	return m.Name()
}

// single reports whether m has exactly one bit set.
func (m Mask) single() bool {
	return m != 0 && m&(m-1) == 0
}

// position returns the bit index of a single-bit mask.
func (m Mask) position() int {
	return bits.TrailingZeros32(uint32(m))
}
