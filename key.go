package present

import (
	"strconv"

	"github.com/codahale/present/internal/keyschedule"
)

const (
	// KeySize80 is the size of an 80-bit PRESENT key in bytes.
	KeySize80 = 10

	// KeySize128 is the size of a 128-bit PRESENT key in bytes.
	KeySize128 = 16
)

// A Key is PRESENT key material. The concrete type selects the key schedule: Key80 or Key128.
type Key interface {
	// Size returns the size of the key in bytes.
	Size() int

	schedule() keyschedule.Schedule
}

// Key80 is an 80-bit PRESENT key.
type Key80 [KeySize80]byte

// NewKey80 returns an 80-bit key made from b. If b is shorter than KeySize80 it is padded on the right with zeros;
// if it is longer, only the first KeySize80 bytes are used.
func NewKey80(b []byte) Key80 {
	var k Key80
	copy(k[:], b)
	return k
}

// Size returns KeySize80.
func (k Key80) Size() int {
	return KeySize80
}

func (k Key80) schedule() keyschedule.Schedule {
	return keyschedule.New80((*[KeySize80]byte)(&k))
}

// Key128 is a 128-bit PRESENT key.
type Key128 [KeySize128]byte

// NewKey128 returns a 128-bit key made from b. If b is shorter than KeySize128 it is padded on the right with zeros;
// if it is longer, only the first KeySize128 bytes are used.
func NewKey128(b []byte) Key128 {
	var k Key128
	copy(k[:], b)
	return k
}

// Size returns KeySize128.
func (k Key128) Size() int {
	return KeySize128
}

func (k Key128) schedule() keyschedule.Schedule {
	return keyschedule.New128((*[KeySize128]byte)(&k))
}

// ParseKey returns the key whose size is exactly len(b): a Key80 for 10 bytes or a Key128 for 16 bytes. Any other
// length returns a KeySizeError.
func ParseKey(b []byte) (Key, error) {
	switch len(b) {
	case KeySize80:
		return NewKey80(b), nil
	case KeySize128:
		return NewKey128(b), nil
	default:
		return nil, KeySizeError(len(b))
	}
}

// KeySizeError is returned by ParseKey for key material of an unsupported length.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "present: invalid key size " + strconv.Itoa(int(k))
}

var (
	_ Key = Key80{}
	_ Key = Key128{}
)
