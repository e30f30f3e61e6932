/*
Package classification grows binary decision trees from labeled samples with
binary features, choosing at every decision the feature with the highest
information gain on the class labels.
*/
package classification

import (
	"fmt"
	"sync"

	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/tree"
)

// rootDepth is the recursion depth of the root node.
const rootDepth = 1

// Branching selects which sample set each branch of a decision is grown from.
type Branching int

const (
	/*
		UnsplitZero grows the path 0 branch from the whole set being split
		and the path 1 branch from the samples with value 1 for the selected
		feature.
	*/
	UnsplitZero Branching = iota
	/*
		UnsplitOne grows the path 0 branch from the samples with value 0 for
		the selected feature and the path 1 branch from the whole set being
		split.
	*/
	UnsplitOne
	// SplitBoth grows each branch from the samples on its side of the split.
	SplitBoth
)

func (br Branching) String() string {
	switch br {
	case UnsplitZero:
		return "unsplit-zero"
	case UnsplitOne:
		return "unsplit-one"
	case SplitBoth:
		return "split-both"
	}
	return fmt.Sprintf("Branching(%d)", int(br))
}

/*
ParseBranching takes the name of a branching mode as returned by its String
method and returns the mode or an error.
*/
func ParseBranching(name string) (Branching, error) {
	for _, br := range []Branching{UnsplitZero, UnsplitOne, SplitBoth} {
		if br.String() == name {
			return br, nil
		}
	}
	return 0, fmt.Errorf("unknown branching mode %q", name)
}

/*
Builder holds the configuration to grow a decision tree.

Classes and Features are the number of class labels and binary features of
the samples. Observer receives the trace of the induction (nil discards it).
Branching selects the set each branch of a decision is grown from whenever
its side of the split is not empty; the zero value is UnsplitZero. Parallel
grows the two branches of every decision concurrently; the resulting tree
is the same.
*/
type Builder struct {
	Classes   int
	Features  int
	Observer  Observer
	Branching Branching
	Parallel  bool
}

/*
BuildTree takes a set of samples, the number of classes and the number of
features and returns the root of the decision tree grown from them with the
default Builder configuration.
*/
func BuildTree(samples dataset.Set, numberOfClasses, numberOfFeatures int) (*tree.Node, error) {
	b := &Builder{Classes: numberOfClasses, Features: numberOfFeatures}
	return b.Build(samples)
}

/*
Build takes a set of samples and returns the root of the decision tree grown
from it.

A ConfigurationError is returned if the builder has no classes or features
or the set is empty, and an *InvariantViolation if a sample does not fit
them. In both cases the error is returned before any node is built.
*/
func (b *Builder) Build(samples dataset.Set) (*tree.Node, error) {
	if b.Classes <= 0 {
		return nil, ErrNoClasses
	}
	if b.Features <= 0 {
		return nil, ErrNoFeatures
	}
	if samples.Count() == 0 {
		return nil, ErrEmptySampleSet
	}
	if err := b.validate(samples); err != nil {
		return nil, err
	}
	features := make([]int, b.Features)
	for i := range features {
		features[i] = i
	}
	root, err := b.induce(samples, features, rootDepth)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	return root, nil
}

func (b *Builder) validate(samples dataset.Set) error {
	for i, s := range samples {
		if s == nil {
			return &InvariantViolation{Sample: i, Reason: "nil sample"}
		}
		if s.FeatureCount() != b.Features {
			return &InvariantViolation{Sample: i, Reason: fmt.Sprintf("has %d features, expected %d", s.FeatureCount(), b.Features)}
		}
		if c := s.Class(); c < 1 || c > b.Classes {
			return &InvariantViolation{Sample: i, Reason: fmt.Sprintf("class %d out of range [1, %d]", c, b.Classes)}
		}
		for f := 0; f < b.Features; f++ {
			v, err := s.ValueFor(f)
			if err != nil {
				return &InvariantViolation{Sample: i, Reason: err.Error()}
			}
			if v != 0 && v != 1 {
				return &InvariantViolation{Sample: i, Reason: fmt.Sprintf("value %d for feature %d is not binary", v, f)}
			}
		}
	}
	return nil
}

/*
induce grows the subtree for the given set using the given features, which
must be in ascending order. The slice is never modified: each branch gets
its own copy of the remaining features.
*/
func (b *Builder) induce(s dataset.Set, features []int, depth int) (*tree.Node, error) {
	entropy, err := s.Entropy(b.Classes)
	if err != nil {
		return nil, err
	}
	if entropy == 0 {
		return b.leaf(s[0].Class(), "pure", s, depth), nil
	}
	if len(features) == 0 || depth >= len(features) {
		return b.majorityLeaf(s, "exhausted", depth)
	}
	p, err := b.bestPartition(s, entropy, features, depth)
	if err != nil {
		return nil, err
	}
	b.observe(Event{Kind: FeatureSelected, Depth: depth, Samples: s.Count(), Feature: p.Feature, Gain: p.InformationGain})
	remaining := make([]int, 0, len(features)-1)
	for _, f := range features {
		if f != p.Feature {
			remaining = append(remaining, f)
		}
	}
	var (
		children [2]*tree.Node
		errs     [2]error
	)
	branch := func(path int) {
		children[path], errs[path] = b.branch(s, p, path, append([]int(nil), remaining...), depth+1)
	}
	if b.Parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		for path := range children {
			go func(path int) {
				defer wg.Done()
				branch(path)
			}(path)
		}
		wg.Wait()
	} else {
		branch(0)
		branch(1)
	}
	node := tree.NewDecision(p.Feature)
	for path, child := range children {
		if errs[path] != nil {
			return nil, errs[path]
		}
		if err := node.Attach(path, child); err != nil {
			return nil, err
		}
	}
	return node, nil
}

/*
branch grows the child of a decision on partition p for the given path. An
empty side of the split resolves to the majority class of the whole set s.
*/
func (b *Builder) branch(s dataset.Set, p *Partition, path int, features []int, depth int) (*tree.Node, error) {
	side := p.Zeros
	if path == 1 {
		side = p.Ones
	}
	if side.Count() == 0 {
		return b.majorityLeaf(s, "empty branch", depth)
	}
	switch {
	case b.Branching == UnsplitZero && path == 0, b.Branching == UnsplitOne && path == 1:
		return b.induce(s, features, depth)
	}
	return b.induce(side, features, depth)
}

func (b *Builder) majorityLeaf(s dataset.Set, reason string, depth int) (*tree.Node, error) {
	c, err := s.Majority(b.Classes)
	if err != nil {
		return nil, err
	}
	return b.leaf(c, reason, s, depth), nil
}

func (b *Builder) leaf(class int, reason string, s dataset.Set, depth int) *tree.Node {
	b.observe(Event{Kind: LeafResolved, Depth: depth, Samples: s.Count(), Feature: -1, Class: class, Reason: reason})
	return tree.NewLeaf(class)
}

func (b *Builder) observe(e Event) {
	if b.Observer != nil {
		b.Observer.Observe(e)
	}
}
