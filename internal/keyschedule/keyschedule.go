// Package keyschedule implements the PRESENT key registers for 80-bit and 128-bit keys.
//
// A register is created from a key at the start of a block operation and advanced once per round. The round key is
// always the top 64 bits of the register.
package keyschedule

import (
	"fmt"

	"github.com/codahale/present/internal/layer"
)

// Rounds is the number of full PRESENT rounds. A block operation consumes Rounds+1 round keys.
const Rounds = 31

// Schedule is a PRESENT key register.
type Schedule interface {
	// RoundKey returns the current round key without changing the register.
	RoundKey() uint64

	// Advance updates the register for the given 1-indexed round counter.
	Advance(round uint64)
}

// RoundKeys returns the Rounds+1 round keys of s in the order encryption consumes them. It advances s to the end of
// the schedule.
func RoundKeys(s Schedule) (keys [Rounds + 1]uint64) {
	for i := range Rounds {
		keys[i] = s.RoundKey()
		s.Advance(uint64(i + 1))
	}
	keys[Rounds] = s.RoundKey()
	return keys
}

const (
	// rotation80 is the right rotation equivalent to rotating the 80-bit register left by 61.
	rotation80 = 19

	// wrap80 is how far b's bits move to land directly below a's after the rotation.
	wrap80 = rotation80 - 16

	// lowMask80 selects the 16 register bits kept in the top of the low word.
	lowMask80 = 0xFFFF_0000_0000_0000

	// nibbleShift moves the top nibble of a word to the bottom.
	nibbleShift = 60

	// topNibble selects the top nibble of a word.
	topNibble = 0xF << nibbleShift
)

// Register80 is the 80-bit PRESENT key register. a holds bits 79..16; b holds bits 15..0 in its top 16 bits and is
// zero below them.
type Register80 struct {
	a, b uint64
}

// New80 returns a register loaded with the 80-bit key k, most significant byte first.
func New80(k *[10]byte) *Register80 {
	r := new(Register80)
	for i, v := range k {
		if i < 8 {
			r.a |= uint64(v) << (56 - 8*i)
		} else {
			r.b |= uint64(v) << (56 - 8*(i-8))
		}
	}
	return r
}

// RoundKey returns register bits 79..16.
func (r *Register80) RoundKey() uint64 {
	return r.a
}

// Advance rotates the register left by 61 bits, passes bits 79..76 through the S-box, and XORs the round counter
// into bits 19..15.
func (r *Register80) Advance(round uint64) {
	r.rotate()
	r.substitute()
	r.mix(round)
}

func (r *Register80) rotate() {
	// The bits of b land just below the bits of a, and the bottom wrap80 bits of a wrap around to the top.
	r.a, r.b = r.a>>rotation80|r.b>>wrap80|r.a<<(64-wrap80), r.a<<(64-rotation80)&lowMask80
}

func (r *Register80) substitute() {
	r.a = layer.SubstituteNibble(r.a>>nibbleShift)<<nibbleShift | r.a&^topNibble
}

func (r *Register80) mix(round uint64) {
	// Bits 19..16 are the low nibble of a; bit 15 is the top bit of b.
	r.a ^= (round & 0x1F) >> 1
	r.b ^= (round & 1) << 63
}

func (r *Register80) String() string {
	return fmt.Sprintf("Register80{a: %016x, b: %04x}", r.a, r.b>>48)
}

// Register128 is the 128-bit PRESENT key register. hi holds bits 127..64 and lo holds bits 63..0.
type Register128 struct {
	hi, lo uint64
}

// New128 returns a register loaded with the 128-bit key k, most significant byte first.
func New128(k *[16]byte) *Register128 {
	r := new(Register128)
	for i, v := range k {
		if i < 8 {
			r.hi |= uint64(v) << (56 - 8*i)
		} else {
			r.lo |= uint64(v) << (56 - 8*(i-8))
		}
	}
	return r
}

// RoundKey returns register bits 127..64.
func (r *Register128) RoundKey() uint64 {
	return r.hi
}

// Advance rotates the register left by 61 bits, passes bits 127..124 and 123..120 through the S-box, and XORs the
// round counter into bits 66..62.
func (r *Register128) Advance(round uint64) {
	r.rotate()
	r.substitute()
	r.mix(round)
}

const (
	// rotation128 is the left rotation of the 128-bit register.
	rotation128 = 61

	// secondNibbleShift moves the second nibble of a word to the bottom.
	secondNibbleShift = 56

	// topByte selects the top two nibbles of a word.
	topByte = 0xFF << secondNibbleShift
)

func (r *Register128) rotate() {
	r.hi, r.lo = r.hi<<rotation128|r.lo>>(64-rotation128), r.lo<<rotation128|r.hi>>(64-rotation128)
}

func (r *Register128) substitute() {
	r.hi = layer.SubstituteNibble(r.hi>>nibbleShift)<<nibbleShift |
		layer.SubstituteNibble(r.hi>>secondNibbleShift)<<secondNibbleShift |
		r.hi&^topByte
}

func (r *Register128) mix(round uint64) {
	// Bits 66..64 are the bottom of hi; bits 63..62 are the top of lo.
	r.hi ^= (round & 0x1F) >> 2
	r.lo ^= (round & 0x3) << 62
}

func (r *Register128) String() string {
	return fmt.Sprintf("Register128{hi: %016x, lo: %016x}", r.hi, r.lo)
}

var (
	_ Schedule = (*Register80)(nil)
	_ Schedule = (*Register128)(nil)
)
