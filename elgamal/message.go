// Package elgamal implements multi-recipient ElGamal over a GqGroup: a
// single ciphertext encrypts a vector of messages under one shared
// randomness, with an optional key-compression step when the message
// vector is shorter than the public key.
package elgamal

import (
	"github.com/pkg/errors"

	"github.com/takakv/msc-poc/cryptoerrors"
	"github.com/takakv/msc-poc/group"
)

// Message is a vector of l plaintext Gq elements encrypted together under
// one ciphertext.
type Message struct {
	values group.GroupVector[*group.GqElement]
}

// NewMessage wraps values as a Message. values must be non-empty.
func NewMessage(values group.GroupVector[*group.GqElement]) (*Message, error) {
	if values.IsEmpty() {
		return nil, errors.Wrap(cryptoerrors.ErrInvalidArgument, "message: must be non-empty")
	}
	return &Message{values: values}, nil
}

// OnesMessage returns the length-l all-ones message (the multiplicative
// identity for the homomorphic product), in gr.
func OnesMessage(gr *group.GqGroup, l int) (*Message, error) {
	ones := make([]*group.GqElement, l)
	identity := gr.Identity()
	for i := range ones {
		ones[i] = identity
	}
	v, err := group.NewGroupVector(ones)
	if err != nil {
		return nil, err
	}
	return &Message{values: v}, nil
}

// Size returns l, the number of plaintext components.
func (m *Message) Size() int { return m.values.Size() }

// Values returns the underlying plaintext vector.
func (m *Message) Values() group.GroupVector[*group.GqElement] { return m.values }

// Get returns the i-th plaintext component.
func (m *Message) Get(i int) *group.GqElement { return m.values.Get(i) }
