package board

import "math/bits"

func trailingZeros(x uint64) int { return bits.TrailingZeros64(x) }
func leadingZeros(x uint64) int  { return bits.LeadingZeros64(x) }
func popCount(x uint64) int      { return bits.OnesCount64(x) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := trailingZeros(*mask)
	*mask &= *mask - 1
	return idx
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
