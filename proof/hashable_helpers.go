package proof

import (
	"github.com/takakv/msc-poc/elgamal"
	"github.com/takakv/msc-poc/group"
	"github.com/takakv/msc-poc/hashing"
)

func gqToHashable(e *group.GqElement) (hashing.Hashable, error) {
	return hashing.Integer(e.Value())
}

func zqToHashable(e *group.ZqElement) (hashing.Hashable, error) {
	return hashing.Integer(e.Value())
}

func gqVectorToHashable(v group.GroupVector[*group.GqElement]) (hashing.Hashable, error) {
	items := make([]hashing.Hashable, v.Size())
	for i := 0; i < v.Size(); i++ {
		h, err := gqToHashable(v.Get(i))
		if err != nil {
			return nil, err
		}
		items[i] = h
	}
	return hashing.List(items...)
}

func ciphertextToHashable(c *elgamal.Ciphertext) (hashing.Hashable, error) {
	gamma, err := gqToHashable(c.Gamma())
	if err != nil {
		return nil, err
	}
	phis, err := gqVectorToHashable(c.Phis())
	if err != nil {
		return nil, err
	}
	return hashing.List(gamma, phis)
}

func ciphertextVectorToHashable(v group.GroupVector[*elgamal.Ciphertext]) (hashing.Hashable, error) {
	items := make([]hashing.Hashable, v.Size())
	for i := 0; i < v.Size(); i++ {
		h, err := ciphertextToHashable(v.Get(i))
		if err != nil {
			return nil, err
		}
		items[i] = h
	}
	return hashing.List(items...)
}

func ciphertextMatrixToHashable(mx group.GroupMatrix[*elgamal.Ciphertext]) (hashing.Hashable, error) {
	items := make([]hashing.Hashable, mx.NumRows())
	for i := 0; i < mx.NumRows(); i++ {
		h, err := ciphertextVectorToHashable(mx.Row(i))
		if err != nil {
			return nil, err
		}
		items[i] = h
	}
	return hashing.List(items...)
}
