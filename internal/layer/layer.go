// Package layer implements the stateless building blocks of the PRESENT round function: the 4-bit S-box layer, the
// 64-bit P-layer, their inverses, and round-key whitening.
//
// A PRESENT state is a uint64. Nibble 0 is the most significant nibble and bit 0 is the least significant bit; the
// byte encoding of a state is big-endian, so nibble 0 is the high nibble of the first byte.
package layer

import "encoding/binary"

// BlockSize is the size of a PRESENT block in bytes.
const BlockSize = 8

var (
	sbox = [16]uint64{0xC, 0x5, 0x6, 0xB, 0x9, 0x0, 0xA, 0xD, 0x3, 0xE, 0xF, 0x8, 0x4, 0x7, 0x1, 0x2}

	// pbox[i] is the destination bit of source bit i.
	pbox = [64]uint8{
		0, 16, 32, 48, 1, 17, 33, 49, 2, 18, 34, 50, 3, 19, 35, 51,
		4, 20, 36, 52, 5, 21, 37, 53, 6, 22, 38, 54, 7, 23, 39, 55,
		8, 24, 40, 56, 9, 25, 41, 57, 10, 26, 42, 58, 11, 27, 43, 59,
		12, 28, 44, 60, 13, 29, 45, 61, 14, 30, 46, 62, 15, 31, 47, 63,
	}

	sboxInv = invertSbox(&sbox)
	pboxInv = invertPbox(&pbox)
)

func invertSbox(s *[16]uint64) (inv [16]uint64) {
	for i, v := range s {
		inv[v] = uint64(i)
	}
	return inv
}

func invertPbox(p *[64]uint8) (inv [64]uint8) {
	for i, v := range p {
		inv[v] = uint8(i)
	}
	return inv
}

// SubstituteNibble returns the S-box image of the low nibble of n.
func SubstituteNibble(n uint64) uint64 {
	return sbox[n&0xF]
}

// Whiten XORs the round key k into the state x.
func Whiten(x, k uint64) uint64 {
	return x ^ k
}

// Substitute applies the S-box to each of the sixteen nibbles of x.
func Substitute(x uint64) uint64 {
	return substitute(x)
}

// InverseSubstitute applies the inverse S-box to each of the sixteen nibbles of x.
func InverseSubstitute(x uint64) uint64 {
	return inverseSubstitute(x)
}

// Permute moves each bit i of x to bit position P(i).
func Permute(x uint64) uint64 {
	return permute(x)
}

// InversePermute moves each bit P(i) of x back to bit position i.
func InversePermute(x uint64) uint64 {
	return inversePermute(x)
}

// Round whitens x with k, then applies the S-box layer and the P-layer.
func Round(x, k uint64) uint64 {
	return substitutePermute(Whiten(x, k))
}

// InverseRound undoes Round: it applies the inverse P-layer, the inverse S-box layer, and then whitens with k.
func InverseRound(x, k uint64) uint64 {
	return Whiten(inverseSubstitute(inversePermute(x)), k)
}

// StateFromBytes loads a block into a state, most significant byte first.
func StateFromBytes(b *[BlockSize]byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

// StateToBytes stores a state into a block, most significant byte first.
func StateToBytes(x uint64) (b [BlockSize]byte) {
	binary.BigEndian.PutUint64(b[:], x)
	return b
}
