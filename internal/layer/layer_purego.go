//go:build purego

package layer

func substitute(x uint64) uint64 {
	return substituteGeneric(x)
}

func inverseSubstitute(x uint64) uint64 {
	return inverseSubstituteGeneric(x)
}

func permute(x uint64) uint64 {
	return permuteGeneric(x)
}

func inversePermute(x uint64) uint64 {
	return inversePermuteGeneric(x)
}

func substitutePermute(x uint64) uint64 {
	return permuteGeneric(substituteGeneric(x))
}
