//go:build !purego

package layer

// The table-driven layers work a byte at a time. The S-box layer maps each byte independently, and the P-layer is
// linear, so P of a state is the XOR of P over each of its bytes. The fused table applies the S-box to a byte before
// placing it; the other bytes are left zero rather than substituted.
var (
	sbox8    = sboxTable(&sbox)    // S-box on both nibbles of a byte
	sboxInv8 = sboxTable(&sboxInv) // inverse S-box on both nibbles of a byte

	spTable   = spTables()
	pTable    = byteTables(permuteGeneric)
	pTableInv = byteTables(inversePermuteGeneric)
)

func sboxTable(s *[16]uint64) (t [256]uint64) {
	for v := range t {
		t[v] = s[v>>4]<<4 | s[v&0xF]
	}
	return t
}

// byteTables returns t such that t[j][v] = f(v << 8j).
func byteTables(f func(uint64) uint64) (t [8][256]uint64) {
	for j := range t {
		for v := range t[j] {
			t[j][v] = f(uint64(v) << (8 * j))
		}
	}
	return t
}

// spTables returns t such that t[j][v] = P(S(v) << 8j), where S acts on both nibbles of v.
func spTables() (t [8][256]uint64) {
	for j := range t {
		for v := range t[j] {
			t[j][v] = permuteGeneric(sbox8[v] << (8 * j))
		}
	}
	return t
}

func substitute(x uint64) uint64 {
	return substituteBytes(x, &sbox8)
}

func inverseSubstitute(x uint64) uint64 {
	return substituteBytes(x, &sboxInv8)
}

func substituteBytes(x uint64, t *[256]uint64) uint64 {
	return t[x&0xFF] |
		t[(x>>8)&0xFF]<<8 |
		t[(x>>16)&0xFF]<<16 |
		t[(x>>24)&0xFF]<<24 |
		t[(x>>32)&0xFF]<<32 |
		t[(x>>40)&0xFF]<<40 |
		t[(x>>48)&0xFF]<<48 |
		t[x>>56]<<56
}

func permute(x uint64) uint64 {
	return lookupBytes(x, &pTable)
}

func inversePermute(x uint64) uint64 {
	return lookupBytes(x, &pTableInv)
}

func substitutePermute(x uint64) uint64 {
	return lookupBytes(x, &spTable)
}

func lookupBytes(x uint64, t *[8][256]uint64) uint64 {
	return t[0][x&0xFF] ^
		t[1][(x>>8)&0xFF] ^
		t[2][(x>>16)&0xFF] ^
		t[3][(x>>24)&0xFF] ^
		t[4][(x>>32)&0xFF] ^
		t[5][(x>>40)&0xFF] ^
		t[6][(x>>48)&0xFF] ^
		t[7][x>>56]
}
