// Package set is a small bitset over register numbers.
package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type Bits struct {
	b []uint64
}

func (s *Bits) Set(n uint) {
	i, j := n/64, n%64

	for uint(len(s.b)) <= i {
		s.b = append(s.b, 0)
	}

	s.b[i] |= 1 << j
}

func (s Bits) IsSet(n uint) bool {
	i, j := n/64, n%64

	if uint(len(s.b)) <= i {
		return false
	}

	return s.b[i]&(1<<j) != 0
}

func (s *Bits) Merge(x Bits) {
	for uint(len(s.b)) < uint(len(x.b)) {
		s.b = append(s.b, 0)
	}

	for i, w := range x.b {
		s.b[i] |= w
	}
}

func (s Bits) Size() (r int) {
	for _, w := range s.b {
		r += bits.OnesCount64(w)
	}

	return r
}

func (s Bits) Range(f func(n uint) bool) {
	for i, w := range s.b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			w &^= 1 << j

			if !f(uint(i*64 + j)) {
				return
			}
		}
	}
}

func (s Bits) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.b == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(n uint) bool {
		b = e.AppendInt(b, int(n))

		return true
	})

	b = e.AppendBreak(b)

	return b
}
