package dataset

import (
	"fmt"
)

/*
Sample represents a labeled item from which to learn how to classify others.

Its ValueFor method returns the binary value (0 or 1) the sample has for the
feature with the given 0-based index, or an error if the index is out of
the sample's range.

Its Class method returns the class label of the sample, an integer in
[1, numberOfClasses] for well-formed training data.

Its FeatureCount method returns the length of the sample's feature vector.
*/
type Sample interface {
	ValueFor(feature int) (int, error)
	Class() int
	FeatureCount() int
}

type sample struct {
	values []uint8
	class  int
}

/*
NewSample takes a slice of feature values and a class label and returns
a sample. The values are copied, so later changes on the given slice do
not alter the sample. Any non-zero value is stored as is so that out of
range values can be reported when the sample is validated.
*/
func NewSample(values []int, class int) Sample {
	s := &sample{values: make([]uint8, len(values)), class: class}
	for i, v := range values {
		if v < 0 || v > 255 {
			v = 255
		}
		s.values[i] = uint8(v)
	}
	return s
}

func (s *sample) ValueFor(feature int) (int, error) {
	if feature < 0 || feature >= len(s.values) {
		return 0, fmt.Errorf("feature index %d out of range [0, %d)", feature, len(s.values))
	}
	return int(s.values[feature]), nil
}

func (s *sample) Class() int {
	return s.class
}

func (s *sample) FeatureCount() int {
	return len(s.values)
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v -> %d]", s.values, s.class)
}

/*
Values returns a copy of the feature vector of the given sample.
*/
func Values(s Sample) []int {
	values := make([]int, s.FeatureCount())
	for i := range values {
		values[i], _ = s.ValueFor(i)
	}
	return values
}
