// Package ecb implements Electronic Codebook mode for arbitrary block ciphers, with a sequential and a data-parallel
// driver.
//
// ECB encrypts every block independently with the same key, so equal plaintext blocks produce equal ciphertext
// blocks. It provides no integrity and leaks patterns in the plaintext. It exists here for compatibility with
// systems which require it.
//
// Plaintext is zero-padded to a whole number of blocks. The padding is not reversible: decryption returns the padded
// plaintext and the caller is responsible for knowing the original length.
package ecb

import (
	"crypto/cipher"
	"errors"
	"iter"
	"runtime"

	"github.com/codahale/present/internal/mem"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidBlockLength is returned when decrypting input which is not a whole number of blocks.
var ErrInvalidBlockLength = errors.New("ecb: input not full blocks")

// TaskSize is the approximate number of bytes each parallel task processes.
const TaskSize = 16 * 1024

// Pad returns data zero-padded to a multiple of blockSize. If len(data) is already a multiple of blockSize,
// including zero, data is returned unchanged; otherwise the result is a new slice.
func Pad(data []byte, blockSize int) []byte {
	if len(data)%blockSize == 0 {
		return data
	}

	padded := make([]byte, mem.RoundUp(len(data), blockSize))
	copy(padded, data)
	return padded
}

// Blocks returns the blocks of the zero-padded data in order, along with their indexes. Full blocks alias data; only
// a trailing partial block is copied. The sequence may be iterated any number of times.
func Blocks(data []byte, blockSize int) iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		full := len(data) / blockSize
		for i := range full {
			if !yield(i, data[i*blockSize:(i+1)*blockSize:(i+1)*blockSize]) {
				return
			}
		}

		if len(data)%blockSize != 0 {
			last := make([]byte, blockSize)
			copy(last, data[full*blockSize:])
			yield(full, last)
		}
	}
}

// Encrypt zero-pads plaintext, encrypts each block with b, appends the ciphertext to dst, and returns the resulting
// slice.
//
// To reuse plaintext's storage for the encrypted output, use plaintext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap plaintext.
func Encrypt(dst []byte, b cipher.Block, plaintext []byte) []byte {
	bs := b.BlockSize()
	ret, out := mem.SliceForAppend(dst, mem.RoundUp(len(plaintext), bs))
	for i, block := range Blocks(plaintext, bs) {
		b.Encrypt(out[i*bs:], block)
	}
	return ret
}

// Decrypt decrypts each block of ciphertext with b, appends the plaintext to dst, and returns the resulting slice. If
// ciphertext is not a whole number of blocks, ErrInvalidBlockLength is returned.
//
// To reuse ciphertext's storage for the decrypted output, use ciphertext[:0] as dst. Otherwise, the remaining
// capacity of dst must not overlap ciphertext.
func Decrypt(dst []byte, b cipher.Block, ciphertext []byte) ([]byte, error) {
	bs := b.BlockSize()
	if len(ciphertext)%bs != 0 {
		return nil, ErrInvalidBlockLength
	}

	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	cryptBlocks(b.Decrypt, bs, out, ciphertext)
	return ret, nil
}

// ParallelEncrypt is Encrypt with the blocks divided between at most workers goroutines. If workers is zero or
// negative, GOMAXPROCS is used. The output is identical to Encrypt's.
//
// b must be safe for concurrent use.
func ParallelEncrypt(dst []byte, b cipher.Block, plaintext []byte, workers int) []byte {
	bs := b.BlockSize()
	full := len(plaintext) / bs * bs
	ret, out := mem.SliceForAppend(dst, mem.RoundUp(len(plaintext), bs))

	// Only the final block needs padding, so it is encrypted on its own.
	if full < len(plaintext) {
		last := make([]byte, bs)
		copy(last, plaintext[full:])
		b.Encrypt(out[full:], last)
	}

	parallelCryptBlocks(b.Encrypt, bs, out[:full], plaintext[:full], workers)
	return ret
}

// ParallelDecrypt is Decrypt with the blocks divided between at most workers goroutines. If workers is zero or
// negative, GOMAXPROCS is used. The output is identical to Decrypt's.
//
// b must be safe for concurrent use.
func ParallelDecrypt(dst []byte, b cipher.Block, ciphertext []byte, workers int) ([]byte, error) {
	bs := b.BlockSize()
	if len(ciphertext)%bs != 0 {
		return nil, ErrInvalidBlockLength
	}

	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	parallelCryptBlocks(b.Decrypt, bs, out, ciphertext, workers)
	return ret, nil
}

// parallelCryptBlocks splits src into cache-line aligned chunks of whole blocks and runs each chunk as an
// independent task. Every task reads and writes only its own range, so the output order is fixed by the split.
func parallelCryptBlocks(f func(dst, src []byte), bs int, dst, src []byte, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunk := mem.AlignedChunk(bs, TaskSize)
	if workers == 1 || len(src) <= chunk {
		cryptBlocks(f, bs, dst, src)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for off := 0; off < len(src); off += chunk {
		end := min(off+chunk, len(src))
		g.Go(func() error {
			cryptBlocks(f, bs, dst[off:end], src[off:end])
			return nil
		})
	}
	g.Wait() //nolint:errcheck // tasks never fail
}

func cryptBlocks(f func(dst, src []byte), bs int, dst, src []byte) {
	for off := 0; off < len(src); off += bs {
		f(dst[off:off+bs], src[off:off+bs])
	}
}
