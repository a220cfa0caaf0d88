package hashing

import (
	"golang.org/x/crypto/sha3"
)

// Hash is the injectable digest service every recursive-hash and proof
// service depends on; implementations must be thread-safe if callers
// share them across goroutines. Sha3Hash, the only implementation this
// module ships, holds no state and is safe to share.
type Hash interface {
	// Digest returns the fixed-length base digest of data.
	Digest(data []byte) []byte
	// DigestBitLength returns the bit length of Digest's output, used by
	// every proof service's hash-length guard.
	DigestBitLength() int
	// VariableDigest returns ceil(bitLength/8) bytes of XOF output over
	// data, with the most significant byte masked down to bitLength mod 8
	// bits when that remainder is non-zero.
	VariableDigest(data []byte, bitLength int) []byte
}

// Sha3Hash implements Hash with SHA3-256 as the fixed digest and
// SHAKE-256 as the variable-length XOF.
type Sha3Hash struct{}

// Digest returns the 32-byte SHA3-256 digest of data.
func (Sha3Hash) Digest(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

// DigestBitLength returns 256, the SHA3-256 output size in bits.
func (Sha3Hash) DigestBitLength() int { return 256 }

// VariableDigest returns ceil(bitLength/8) bytes of SHAKE-256 output over
// data, truncating the most significant byte to bitLength mod 8 bits.
func (Sha3Hash) VariableDigest(data []byte, bitLength int) []byte {
	numBytes := (bitLength + 7) / 8
	out := make([]byte, numBytes)
	shake := sha3.NewShake256()
	_, _ = shake.Write(data)
	_, _ = shake.Read(out)
	if rem := bitLength % 8; rem != 0 && numBytes > 0 {
		mask := byte(0xFF) >> (8 - rem)
		out[0] &= mask
	}
	return out
}
