package ecb

import "crypto/cipher"

type ecbEncrypter struct {
	b cipher.Block
}

// NewEncrypter returns a cipher.BlockMode which encrypts in ECB mode using b. Its CryptBlocks method panics if the
// input is not a whole number of blocks or the output is smaller than the input.
func NewEncrypter(b cipher.Block) cipher.BlockMode {
	return ecbEncrypter{b: b}
}

func (x ecbEncrypter) BlockSize() int {
	return x.b.BlockSize()
}

func (x ecbEncrypter) CryptBlocks(dst, src []byte) {
	checkBlocks(x.b.BlockSize(), dst, src)
	cryptBlocks(x.b.Encrypt, x.b.BlockSize(), dst, src)
}

type ecbDecrypter struct {
	b cipher.Block
}

// NewDecrypter returns a cipher.BlockMode which decrypts in ECB mode using b. Its CryptBlocks method panics if the
// input is not a whole number of blocks or the output is smaller than the input.
func NewDecrypter(b cipher.Block) cipher.BlockMode {
	return ecbDecrypter{b: b}
}

func (x ecbDecrypter) BlockSize() int {
	return x.b.BlockSize()
}

func (x ecbDecrypter) CryptBlocks(dst, src []byte) {
	checkBlocks(x.b.BlockSize(), dst, src)
	cryptBlocks(x.b.Decrypt, x.b.BlockSize(), dst, src)
}

func checkBlocks(bs int, dst, src []byte) {
	if len(src)%bs != 0 {
		panic("ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("ecb: output smaller than input")
	}
}
