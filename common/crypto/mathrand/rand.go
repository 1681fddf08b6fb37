// Package mathrand implements an adapter that exposes an arbitrary
// io.Reader based entropy source, such as a DRBG, as a math/rand
// compatible rand.Source64.
package mathrand

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
)

var _ rand.Source64 = (*rngSource)(nil)

type rngSource struct {
	r io.Reader
}

func (s *rngSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

func (s *rngSource) Uint64() uint64 {
	var b [8]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		panic(fmt.Sprintf("mathrand: entropy source failure: %v", err))
	}
	return binary.BigEndian.Uint64(b[:])
}

func (s *rngSource) Seed(int64) {
	panic("mathrand: Seed() is not supported")
}

// New creates a new rand.Source64 backed by the provided io.Reader.
//
// Note: The returned source will panic if the underlying reader ever
// returns an error, under the assumption that a broken entropy source
// is unrecoverable.
func New(r io.Reader) rand.Source64 {
	return &rngSource{r: r}
}
