package tree

import (
	"fmt"

	"github.com/tosinoni/classification/dataset"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a
node when the tree cannot route the sample down to a leaf, as opposed to
cases where the sample itself is malformed.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrCannotTestOnEmptySet is the error returned when testing a tree against a
set without samples.
*/
const ErrCannotTestOnEmptySet = PredictionError("cannot test tree on empty set")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Predict takes a sample and returns the class label of the leaf reached by
following, from n down, the child whose path label matches the sample's
value for each decision node's feature.
It returns ErrCannotPredictFromSample if a decision node lacks the child for
the sample's value, or an error if the sample has no value for a feature.
*/
func (n *Node) Predict(s dataset.Sample) (int, error) {
	for !n.IsLeaf() {
		v, err := s.ValueFor(n.feature)
		if err != nil {
			return 0, fmt.Errorf("predicting sample: %v", err)
		}
		next := n.Child(v)
		if next == nil {
			return 0, ErrCannotPredictFromSample
		}
		n = next
	}
	return n.class, nil
}

/*
Test takes a set and returns three values:
  - the rate of samples in the set whose class is predicted correctly by
    the tree under n
  - the number of samples for which no prediction could be made because
    of ErrCannotPredictFromSample errors
  - an error if a prediction failed for other reasons or the set is empty.
    If this is not nil, the other values will be 0.0 and 0 respectively
*/
func (n *Node) Test(s dataset.Set) (float64, int, error) {
	if s.Count() == 0 {
		return 0.0, 0, ErrCannotTestOnEmptySet
	}
	var hits float64
	var errCount int
	for _, sample := range s {
		c, err := n.Predict(sample)
		if err != nil {
			if err != ErrCannotPredictFromSample {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		if c == sample.Class() {
			hits += 1.0
		}
	}
	return hits / float64(s.Count()), errCount, nil
}
