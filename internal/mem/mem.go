// Package mem provides slice and memory-layout helpers shared by the block drivers.
package mem

import (
	"slices"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the size of a CPU cache line on the current architecture, in bytes.
const CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// SliceForAppend takes a slice and a requested number of bytes. It returns a
// slice with the contents of the given slice followed by that many bytes and a
// second slice that aliases into it and contains only the extra bytes. If the
// original slice has sufficient capacity, then no allocation is performed.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	head = slices.Grow(in, n)
	head = head[:len(in)+n]
	tail = head[len(in):]
	return head, tail
}

// RoundUp returns the smallest multiple of m which is greater than or equal to n. m must be positive.
func RoundUp(n, m int) int {
	return (n + m - 1) / m * m
}

// AlignedChunk returns the largest multiple of both blockSize and CacheLineSize which is no larger than target, or
// the smallest such multiple if target is smaller than that. Slices split at these boundaries never share a cache
// line.
func AlignedChunk(blockSize, target int) int {
	unit := lcm(blockSize, CacheLineSize)
	return max(unit, target/unit*unit)
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
