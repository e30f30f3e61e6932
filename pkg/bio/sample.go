package bio

import (
	"fmt"

	"github.com/tosinoni/classification/dataset"
)

/*
NewSample takes metadata, the feature values of a sample in feature index
order and its class label and returns the sample, or an error if it does
not fit the metadata.
*/
func NewSample(md *Metadata, values []int, class int) (dataset.Sample, error) {
	if len(values) != len(md.Features) {
		return nil, fmt.Errorf("got %d feature values, expected %d", len(values), len(md.Features))
	}
	for i, v := range values {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("invalid value %d for binary feature %s", v, md.Features[i])
		}
	}
	if class < 1 || class > md.Classes {
		return nil, fmt.Errorf("class %d out of range [1, %d]", class, md.Classes)
	}
	return dataset.NewSample(values, class), nil
}
