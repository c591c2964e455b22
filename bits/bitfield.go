package bits

import "math/bits"

// Bitset is a growable set of small non-negative ints (column positions,
// row numbers).
type Bitset []uint64

func NewBitset(size int) Bitset {
	return make(Bitset, (size+63)>>6)
}

// NewFullBitset has bits [0, size) set.
func NewFullBitset(size int) Bitset {
	b := NewBitset(size)
	for i := 0; i < size; i++ {
		b.Set(i)
	}
	return b
}

func (b *Bitset) grow(bit int) {
	word := bit >> 6
	if word < len(*b) {
		return
	}
	grown := make(Bitset, word+1)
	copy(grown, *b)
	*b = grown
}

func (b *Bitset) Set(bit int) {
	b.grow(bit)
	word := bit >> 6 // bit / 64
	mask := uint64(1) << (bit & 63)
	(*b)[word] |= mask
}

func (b Bitset) Get(bit int) bool {
	word := bit >> 6
	if word >= len(b) {
		return false
	}
	return (b[word]>>(bit&63))&1 == 1
}

// ToIndices returns the set bits in ascending order.
func (b Bitset) ToIndices() []int {
	out := make([]int, 0, b.Count())
	for wi, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*64+tz)
			w &= w - 1 // clear lowest set bit
		}
	}
	return out
}

func (b Bitset) Any() bool {
	for _, w := range b {
		if w != 0 {
			return true
		}
	}
	return false
}

func (b Bitset) Count() int {
	c := 0
	for _, w := range b {
		c += bits.OnesCount64(w)
	}
	return c
}

func MergeOR(a, b Bitset) Bitset {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make(Bitset, len(a))
	copy(out, a)
	for i := range b {
		out[i] |= b[i]
	}
	return out
}

func MergeAND(a, b Bitset) Bitset {
	if len(a) > len(b) {
		a, b = b, a
	}
	out := make(Bitset, len(a))
	for i := range a {
		out[i] = a[i] & b[i]
	}
	return out
}
