// Package present implements the PRESENT lightweight block cipher with 80-bit and 128-bit keys.
//
// PRESENT is a 31-round substitution-permutation network over 64-bit blocks, designed by Bogdanov et al. for
// constrained hardware (CHES 2007). Each round whitens the state with a round key, applies a 4-bit S-box to every
// nibble, and permutes the 64 bits; a final whitening with the 32nd round key follows the last round.
//
// Round keys are produced by a key register which is derived from the key at the start of every block operation
// and discarded at the end, so a Key and a Cipher can be shared freely between goroutines.
//
// This implementation is not constant-time and provides no confidentiality beyond that of a raw 64-bit block
// cipher. For bulk data, see the ecb package.
package present

import (
	"crypto/cipher"
	"errors"

	"github.com/codahale/present/internal/keyschedule"
	"github.com/codahale/present/internal/layer"
)

const (
	// BlockSize is the PRESENT block size in bytes.
	BlockSize = layer.BlockSize

	// Rounds is the number of full rounds applied to each block.
	Rounds = keyschedule.Rounds
)

// ErrInvalidBlockLength is returned when block input is not exactly BlockSize bytes long.
var ErrInvalidBlockLength = errors.New("present: invalid block length")

// EncryptBlock encrypts a single block with the given key. A src shorter than BlockSize is padded on the right with
// zeros. A src longer than BlockSize returns ErrInvalidBlockLength.
func EncryptBlock(key Key, src []byte) ([BlockSize]byte, error) {
	var block [BlockSize]byte
	if len(src) > BlockSize {
		return block, ErrInvalidBlockLength
	}
	copy(block[:], src)
	return layer.StateToBytes(encrypt(layer.StateFromBytes(&block), key.schedule())), nil
}

// DecryptBlock decrypts a single block with the given key. A src which is not exactly BlockSize bytes long returns
// ErrInvalidBlockLength.
func DecryptBlock(key Key, src []byte) ([BlockSize]byte, error) {
	if len(src) != BlockSize {
		return [BlockSize]byte{}, ErrInvalidBlockLength
	}
	return layer.StateToBytes(decrypt(layer.StateFromBytes((*[BlockSize]byte)(src)), key.schedule())), nil
}

// A Cipher is a PRESENT instance keyed with a single key. It implements cipher.Block and is safe for concurrent use.
type Cipher struct {
	key Key
}

// NewCipher returns a Cipher for the given key.
func NewCipher(key Key) *Cipher {
	return &Cipher{key: key}
}

// BlockSize returns BlockSize.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block in src into dst. Dst and src must overlap entirely or not at all.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("present: input not full block")
	}
	if len(dst) < BlockSize {
		panic("present: output not full block")
	}

	out := layer.StateToBytes(encrypt(layer.StateFromBytes((*[BlockSize]byte)(src)), c.key.schedule()))
	copy(dst, out[:])
}

// Decrypt decrypts the first block in src into dst. Dst and src must overlap entirely or not at all.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("present: input not full block")
	}
	if len(dst) < BlockSize {
		panic("present: output not full block")
	}

	out := layer.StateToBytes(decrypt(layer.StateFromBytes((*[BlockSize]byte)(src)), c.key.schedule()))
	copy(dst, out[:])
}

// encrypt runs all rounds over the state, advancing the key register after each one.
func encrypt(state uint64, s keyschedule.Schedule) uint64 {
	for i := range uint64(Rounds) {
		state = layer.Round(state, s.RoundKey())
		s.Advance(i + 1)
	}
	return layer.Whiten(state, s.RoundKey())
}

// decrypt inverts encrypt. The register only runs forward, so every round key is generated before the first round.
func decrypt(state uint64, s keyschedule.Schedule) uint64 {
	keys := keyschedule.RoundKeys(s)
	state = layer.Whiten(state, keys[Rounds])
	for i := Rounds - 1; i >= 0; i-- {
		state = layer.InverseRound(state, keys[i])
	}
	return state
}

var _ cipher.Block = (*Cipher)(nil)
