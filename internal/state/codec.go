package state

import (
	"github.com/gomlx/exceptions"
)

// StateCode identifies a board configuration. It is used as the index into value tables.
//
// Each cell takes 2 bits (Empty=00, X=01, O=10), with position 8 in the most significant pair
// and position 0 in the least significant one. The pattern 11 is never used.
type StateCode uint32

const (
	bitsPerCell = 2
	cellMask    = 0b11

	// NumStateCodes is one more than the largest code (all cells O), so codes can index
	// a dense table. Most of them are unreachable or use the reserved pattern.
	NumStateCodes = 0b10_1010_1010_1010_1010 + 1
)

// Encode board into its StateCode. The empty board is encoded as 0.
func Encode(b *Board) StateCode {
	var code StateCode
	for pos := NumPositions - 1; pos >= 0; pos-- {
		code = (code << bitsPerCell) | StateCode(b[pos])
	}
	return code
}

// Decode a StateCode back into a Board. It's only used for diagnostics.
//
// It panics if code holds the reserved 11 pattern in any cell or is larger than 18 bits.
func Decode(code StateCode) *Board {
	if code >= NumStateCodes {
		exceptions.Panicf("state code %d out of range [0, %d)", code, NumStateCodes)
	}
	b := NewBoard()
	for pos := range NumPositions {
		c := Cell(code & cellMask)
		if c > O {
			exceptions.Panicf("state code %d has reserved cell pattern at position %d", code, pos)
		}
		b[pos] = c
		code >>= bitsPerCell
	}
	return b
}
