package dataset

import (
	"fmt"
	"math"
)

/*
Set represents an ordered collection of samples.

Sets are only read by the operations below: partitioning a set produces new
sets that share the samples, never modifying them.
*/
type Set []Sample

/*
New takes a slice of samples and returns a Set with them.
*/
func New(samples []Sample) Set {
	return Set(samples)
}

// Count returns the number of samples in the set.
func (s Set) Count() int {
	return len(s)
}

/*
ClassCounts takes the number of classes and returns a slice where position
i holds the number of samples in the set with class label i+1. An error is
returned if a sample has a class label outside [1, classes].
*/
func (s Set) ClassCounts(classes int) ([]int, error) {
	counts := make([]int, classes)
	for i, sample := range s {
		c := sample.Class()
		if c < 1 || c > classes {
			return nil, fmt.Errorf("sample %d: class %d out of range [1, %d]", i, c, classes)
		}
		counts[c-1]++
	}
	return counts, nil
}

/*
Entropy takes the number of classes and returns the entropy of the set:
the sum of -p·log2(p) over the probability p of every class.

If any of the classes has no samples in the set the entropy is 0, even if
the set holds samples of more than one class. Empty sets have entropy 0.
*/
func (s Set) Entropy(classes int) (float64, error) {
	counts, err := s.ClassCounts(classes)
	if err != nil {
		return 0, err
	}
	return entropy(counts, len(s)), nil
}

func entropy(counts []int, total int) float64 {
	var result float64
	for _, c := range counts {
		if c == 0 {
			return 0
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

/*
Majority takes the number of classes and returns the class label with the
most samples in the set. Ties go to the lowest class label. An empty set
resolves to class 1.
*/
func (s Set) Majority(classes int) (int, error) {
	counts, err := s.ClassCounts(classes)
	if err != nil {
		return 0, err
	}
	best, bestCount := 0, -1
	for i, c := range counts {
		if c > bestCount {
			best, bestCount = i+1, c
		}
	}
	return best, nil
}

/*
SplitOn takes a feature index and returns two sets: the samples with value
0 for the feature and the samples with value 1, both in the original
order. An error is returned if a sample has no value for the feature or
its value is not binary.
*/
func (s Set) SplitOn(feature int) (zeros Set, ones Set, err error) {
	for i, sample := range s {
		v, err := sample.ValueFor(feature)
		if err != nil {
			return nil, nil, fmt.Errorf("sample %d: %v", i, err)
		}
		switch v {
		case 0:
			zeros = append(zeros, sample)
		case 1:
			ones = append(ones, sample)
		default:
			return nil, nil, fmt.Errorf("sample %d: non-binary value %d for feature %d", i, v, feature)
		}
	}
	return zeros, ones, nil
}
