package group

import (
	"github.com/takakv/msc-poc/randomsource"
)

// GenRandomZqVector returns n i.i.d. uniformly sampled ZqElements in z.
func GenRandomZqVector(r randomsource.Random, z *ZqGroup, n int) (GroupVector[*ZqElement], error) {
	elements := make([]*ZqElement, n)
	for i := 0; i < n; i++ {
		v, err := r.RandomInt(z.Q())
		if err != nil {
			return GroupVector[*ZqElement]{}, err
		}
		e, err := z.FromValue(v)
		if err != nil {
			return GroupVector[*ZqElement]{}, err
		}
		elements[i] = e
	}
	return NewGroupVector(elements)
}
