package layer

func substituteGeneric(x uint64) uint64 {
	return substituteWith(x, &sbox)
}

func inverseSubstituteGeneric(x uint64) uint64 {
	return substituteWith(x, &sboxInv)
}

func substituteWith(x uint64, s *[16]uint64) uint64 {
	var y uint64
	for i := 0; i < 64; i += 4 {
		y |= s[(x>>i)&0xF] << i
	}
	return y
}

func permuteGeneric(x uint64) uint64 {
	return permuteWith(x, &pbox)
}

func inversePermuteGeneric(x uint64) uint64 {
	return permuteWith(x, &pboxInv)
}

func permuteWith(x uint64, p *[64]uint8) uint64 {
	var y uint64
	for i, dst := range p {
		y |= ((x >> i) & 1) << dst
	}
	return y
}
