// Package electionparams deterministically derives verifiable ElGamal
// group parameters (p, q, g) from a seed, and defines the process-wide
// security-level configuration an election run is pinned to.
package electionparams

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/serialization"
)

// SecurityLevel is a read-only (certainty, bit-length) pair governing
// GetEncryptionParameters. It is threaded explicitly through calls
// rather than stored as global mutable state.
type SecurityLevel struct {
	Certainty int
	BitLength int
}

var (
	// TestingOnly trades correctness confidence for speed; unsuitable for
	// any proof service, whose challenges go through RecursiveHashToZq and
	// so require bitlen(q) >= 512.
	TestingOnly = SecurityLevel{Certainty: 16, BitLength: 48}
	// Default is the recommended level for production ElGamal/shuffle use.
	Default = SecurityLevel{Certainty: 112, BitLength: 2048}
	// Extended is the high-assurance level for long-lived deployments.
	Extended = SecurityLevel{Certainty: 128, BitLength: 3072}
)

// GetEncryptionParameters deterministically derives a GqGroup from seed
// and level:
//  1. i <- 0; loop: m <- seed || i; qHat <- SHAKE-128(m, bitLength/8);
//     qBytes <- 0x01 || qHat; q <- (bytesToInt(qBytes) >> 2); q <- q + 1 -
//     (q mod 2); stop when q and 2q+1 are both prime with `certainty`
//     Miller-Rabin rounds; else i <- i+1.
//  2. p <- 2q+1; find the smallest g in {2,3,4} with g^q mod p = 1.
//
// Two independent calls with the same (seed, level) always return the
// same group.
func GetEncryptionParameters(seed string, level SecurityLevel) (*group.GqGroup, error) {
	seedBytes := serialization.StringToByteArray(seed)
	byteLen := level.BitLength / 8

	for i := 0; ; i++ {
		iBytes, err := serialization.IntegerToByteArray(big.NewInt(int64(i)))
		if err != nil {
			return nil, err
		}
		m := append(append([]byte{}, seedBytes...), iBytes...)

		qHat := make([]byte, byteLen)
		shake := sha3.NewShake128()
		_, _ = shake.Write(m)
		_, _ = shake.Read(qHat)

		qBytes := append([]byte{0x01}, qHat...)
		q := new(big.Int).SetBytes(qBytes)
		q.Rsh(q, 2)
		// Force q odd: q <- q + 1 - (q mod 2).
		if q.Bit(0) == 0 {
			q.Add(q, big.NewInt(1))
		}

		if !q.ProbablyPrime(level.Certainty) {
			continue
		}
		p := new(big.Int).Add(new(big.Int).Lsh(q, 1), big.NewInt(1))
		if !p.ProbablyPrime(level.Certainty) {
			continue
		}

		g, ok := findGenerator(p, q)
		if !ok {
			continue
		}
		return group.NewGqGroup(p, q, g)
	}
}

func findGenerator(p, q *big.Int) (*big.Int, bool) {
	one := big.NewInt(1)
	for _, candidate := range []int64{2, 3, 4} {
		g := big.NewInt(candidate)
		if new(big.Int).Exp(g, q, p).Cmp(one) == 0 {
			return g, true
		}
	}
	return nil, false
}
