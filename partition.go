package classification

import (
	"github.com/tosinoni/classification/dataset"
)

/*
Partition represents the split of a set on a binary feature into the
samples with value 0 and those with value 1, together with the information
gain that split achieves on the class labels.
*/
type Partition struct {
	Feature         int
	Zeros           dataset.Set
	Ones            dataset.Set
	InformationGain float64
}

/*
NewPartition takes a set, a feature index, the number of classes and the
entropy of the set and returns the partition of the set on the feature.
The information gain is computed as

	entropy(S) - |S1|/|S| x entropy(S1) - |S0|/|S| x entropy(S0)

with S0 and S1 being the samples with value 0 and 1 for the feature.
*/
func NewPartition(s dataset.Set, f int, classes int, entropy float64) (*Partition, error) {
	zeros, ones, err := s.SplitOn(f)
	if err != nil {
		return nil, err
	}
	zEntropy, err := zeros.Entropy(classes)
	if err != nil {
		return nil, err
	}
	oEntropy, err := ones.Entropy(classes)
	if err != nil {
		return nil, err
	}
	total := float64(s.Count())
	gain := entropy
	gain -= float64(ones.Count()) / total * oEntropy
	gain -= float64(zeros.Count()) / total * zEntropy
	return &Partition{Feature: f, Zeros: zeros, Ones: ones, InformationGain: gain}, nil
}

/*
bestPartition partitions the set on each of the given features, in the
order given, and returns the partition with the highest information gain.
Ties keep the earliest partition, and the first feature is returned when no
feature yields a positive gain.
*/
func (b *Builder) bestPartition(s dataset.Set, entropy float64, features []int, depth int) (*Partition, error) {
	var best *Partition
	for _, f := range features {
		b.observe(Event{Kind: FeatureConsidered, Depth: depth, Samples: s.Count(), Feature: f})
		p, err := NewPartition(s, f, b.Classes, entropy)
		if err != nil {
			return nil, err
		}
		b.observe(Event{Kind: GainComputed, Depth: depth, Samples: s.Count(), Feature: f, Gain: p.InformationGain})
		if best == nil || p.InformationGain > best.InformationGain {
			best = p
		}
	}
	return best, nil
}
