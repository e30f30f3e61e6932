package classification

import "fmt"

// ConfigurationError represents an error on the arguments given to build a tree
type ConfigurationError string

const (
	// ErrEmptySampleSet is returned when building a tree from a set without samples.
	ErrEmptySampleSet = ConfigurationError("empty sample set")
	// ErrNoClasses is returned when building a tree for zero classes.
	ErrNoClasses = ConfigurationError("number of classes must be positive")
	// ErrNoFeatures is returned when building a tree over zero features.
	ErrNoFeatures = ConfigurationError("number of features must be positive")
)

func (ce ConfigurationError) Error() string {
	return string(ce)
}

/*
InvariantViolation is the error returned when a sample does not fit the
declared number of classes and features: its feature vector has the wrong
length, a feature value is not 0 or 1, or its class label is outside
[1, numberOfClasses].
*/
type InvariantViolation struct {
	// Sample is the position of the offending sample in the set
	Sample int
	Reason string
}

func (iv *InvariantViolation) Error() string {
	return fmt.Sprintf("invalid sample %d: %s", iv.Sample, iv.Reason)
}
