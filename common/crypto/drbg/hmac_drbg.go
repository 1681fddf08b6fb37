// Package drbg implements the HMAC_DRBG deterministic random bit
// generator from NIST SP 800-90A, without prediction resistance.
//
// The generator is intended as a source of reproducible randomness:
// instances constructed with identical entropy input, nonce and
// personalization strings produce identical output streams.
package drbg

import (
	"crypto"
	"crypto/hmac"
	"fmt"
	"hash"
	"io"
)

const (
	// maxBytesPerRequest is the maximum number of bytes returned by a
	// single generate operation (SP 800-90A, Table 2).
	maxBytesPerRequest = 1 << 16

	// reseedInterval is the number of generate operations permitted
	// before a reseed is required.
	reseedInterval = uint64(1) << 48
)

var _ io.Reader = (*hmacDrbg)(nil)

type hmacDrbg struct {
	newHash func() hash.Hash
	outLen  int

	k, v          []byte
	reseedCounter uint64
}

// New creates a new HMAC_DRBG instance using the provided hash
// function, instantiated from the given entropy input, nonce and
// personalization string.  The returned io.Reader never fails a Read
// until the (astronomically large) reseed interval is exhausted.
func New(hashFn crypto.Hash, entropyInput, nonce, personalizationString []byte) (io.Reader, error) {
	if !hashFn.Available() {
		return nil, fmt.Errorf("drbg: requested hash function not available: %v", hashFn)
	}

	outLen := hashFn.Size()
	if len(entropyInput) < outLen/2 {
		return nil, fmt.Errorf("drbg: insufficient entropy input: %d bytes", len(entropyInput))
	}

	d := &hmacDrbg{
		newHash:       hashFn.New,
		outLen:        outLen,
		k:             make([]byte, outLen),
		v:             make([]byte, outLen),
		reseedCounter: 1,
	}
	for i := range d.v {
		d.v[i] = 0x01
	}

	var seedMaterial []byte
	seedMaterial = append(seedMaterial, entropyInput...)
	seedMaterial = append(seedMaterial, nonce...)
	seedMaterial = append(seedMaterial, personalizationString...)
	d.update(seedMaterial)

	return d, nil
}

func (d *hmacDrbg) mac(key []byte, data ...[]byte) []byte {
	m := hmac.New(d.newHash, key)
	for _, v := range data {
		_, _ = m.Write(v)
	}
	return m.Sum(nil)
}

// update is the HMAC_DRBG_Update routine (SP 800-90A, 10.1.2.2).
func (d *hmacDrbg) update(providedData []byte) {
	d.k = d.mac(d.k, d.v, []byte{0x00}, providedData)
	d.v = d.mac(d.k, d.v)

	if len(providedData) == 0 {
		return
	}

	d.k = d.mac(d.k, d.v, []byte{0x01}, providedData)
	d.v = d.mac(d.k, d.v)
}

func (d *hmacDrbg) generate(b []byte) error {
	if d.reseedCounter > reseedInterval {
		return fmt.Errorf("drbg: reseed interval exhausted")
	}

	var tmp []byte
	for len(tmp) < len(b) {
		d.v = d.mac(d.k, d.v)
		tmp = append(tmp, d.v...)
	}
	copy(b, tmp)

	d.update(nil)
	d.reseedCounter++

	return nil
}

func (d *hmacDrbg) Read(b []byte) (int, error) {
	for off := 0; off < len(b); off += maxBytesPerRequest {
		end := off + maxBytesPerRequest
		if end > len(b) {
			end = len(b)
		}
		if err := d.generate(b[off:end]); err != nil {
			return off, err
		}
	}
	return len(b), nil
}
