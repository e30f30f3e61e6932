package classification

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/tree"
)

func workedExample() dataset.Set {
	return dataset.Set{
		dataset.NewSample([]int{0, 0}, 1),
		dataset.NewSample([]int{0, 1}, 1),
		dataset.NewSample([]int{1, 0}, 2),
		dataset.NewSample([]int{1, 1}, 2),
	}
}

func randomSet(r *rand.Rand, n, features, classes int) dataset.Set {
	s := make(dataset.Set, 0, n)
	for i := 0; i < n; i++ {
		values := make([]int, features)
		for f := range values {
			values[f] = r.Intn(2)
		}
		s = append(s, dataset.NewSample(values, 1+r.Intn(classes)))
	}
	return s
}

func TestBuildTreeWorkedExample(t *testing.T) {
	root, err := BuildTree(workedExample(), 2, 2)
	require.NoError(t, err)
	require.False(t, root.IsLeaf())
	assert.Equal(t, 0, root.Feature())
	assert.Nil(t, root.Parent())
	assert.Equal(t, tree.NoPath, root.PathLabel())

	children := root.Children()
	require.Len(t, children, 2)
	for path, c := range children {
		assert.True(t, c.IsLeaf())
		assert.Equal(t, path, c.PathLabel())
		assert.Same(t, root, c.Parent())
		assert.Equal(t, path+1, c.Class())
	}
	require.NoError(t, root.Complete())
}

func TestBuildTreeWorkedExampleTrace(t *testing.T) {
	var events []Event
	b := &Builder{Classes: 2, Features: 2, Observer: ObserverFunc(func(e Event) {
		events = append(events, e)
	})}
	_, err := b.Build(workedExample())
	require.NoError(t, err)

	gains := map[int]float64{}
	var selected []int
	for _, e := range events {
		switch e.Kind {
		case GainComputed:
			gains[e.Feature] = e.Gain
		case FeatureSelected:
			selected = append(selected, e.Feature)
		}
	}
	assert.InDelta(t, 1.0, gains[0], 1e-12)
	assert.InDelta(t, 0.0, gains[1], 1e-12)
	assert.Equal(t, []int{0}, selected)
}

func TestBuildTreeSingleClass(t *testing.T) {
	s := dataset.Set{
		dataset.NewSample([]int{0, 1, 1}, 3),
		dataset.NewSample([]int{1, 0, 1}, 3),
		dataset.NewSample([]int{1, 1, 0}, 3),
	}
	root, err := BuildTree(s, 3, 3)
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, 3, root.Class())
	assert.Empty(t, root.Children())
}

func TestBuildTreeAbsentClassShortCircuits(t *testing.T) {
	// Classes 1 and 2 are mixed but class 3 never occurs, so the set counts
	// as having no entropy and the first sample's class is used.
	s := dataset.Set{
		dataset.NewSample([]int{0, 1}, 2),
		dataset.NewSample([]int{1, 0}, 1),
		dataset.NewSample([]int{1, 1}, 1),
	}
	root, err := BuildTree(s, 3, 2)
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, 2, root.Class())
}

func TestBuildTreeExhaustedFeaturesResolveToMajority(t *testing.T) {
	s := dataset.Set{
		dataset.NewSample([]int{1}, 2),
		dataset.NewSample([]int{0}, 1),
		dataset.NewSample([]int{1}, 1),
		dataset.NewSample([]int{0}, 1),
	}
	root, err := BuildTree(s, 2, 1)
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, 1, root.Class())
}

func TestBuildTreeTiedGainSelectsLowerFeature(t *testing.T) {
	s := dataset.Set{
		dataset.NewSample([]int{0, 0, 1}, 1),
		dataset.NewSample([]int{1, 1, 1}, 2),
		dataset.NewSample([]int{0, 0, 0}, 1),
		dataset.NewSample([]int{1, 1, 0}, 2),
	}
	root, err := BuildTree(s, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Feature())
}

func TestBuildTreeNoPositiveGainSelectsFirstFeature(t *testing.T) {
	s := dataset.Set{
		dataset.NewSample([]int{0, 0}, 1),
		dataset.NewSample([]int{0, 0}, 2),
		dataset.NewSample([]int{1, 1}, 1),
		dataset.NewSample([]int{1, 1}, 2),
	}
	root, err := BuildTree(s, 2, 2)
	require.NoError(t, err)
	require.False(t, root.IsLeaf())
	assert.Equal(t, 0, root.Feature())
	require.NoError(t, root.Complete())
}

func TestBuildTreeEmptyBranchUsesWholeSetMajority(t *testing.T) {
	// No feature separates the classes, so feature 0 is selected and its
	// zero side is left without samples.
	s := dataset.Set{
		dataset.NewSample([]int{1, 1}, 1),
		dataset.NewSample([]int{1, 1}, 2),
		dataset.NewSample([]int{1, 1}, 2),
	}
	var reasons []string
	b := &Builder{Classes: 2, Features: 2, Branching: SplitBoth, Observer: ObserverFunc(func(e Event) {
		if e.Kind == LeafResolved {
			reasons = append(reasons, e.Reason)
		}
	})}
	root, err := b.Build(s)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Feature())
	zero := root.Child(0)
	require.NotNil(t, zero)
	assert.True(t, zero.IsLeaf())
	assert.Equal(t, 2, zero.Class())
	assert.Equal(t, []string{"empty branch", "exhausted"}, reasons)
}

func TestBuildTreeBranchingModes(t *testing.T) {
	tests := []struct {
		branching Branching
		zero, one int
	}{
		{UnsplitZero, 1, 2},
		{UnsplitOne, 1, 1},
		{SplitBoth, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.branching.String(), func(t *testing.T) {
			b := &Builder{Classes: 2, Features: 2, Branching: tt.branching}
			root, err := b.Build(workedExample())
			require.NoError(t, err)
			assert.Equal(t, 0, root.Feature())
			assert.Equal(t, tt.zero, root.Child(0).Class())
			assert.Equal(t, tt.one, root.Child(1).Class())
		})
	}
}

func TestParseBranching(t *testing.T) {
	for _, br := range []Branching{UnsplitZero, UnsplitOne, SplitBoth} {
		got, err := ParseBranching(br.String())
		require.NoError(t, err)
		assert.Equal(t, br, got)
	}
	_, err := ParseBranching("sideways")
	assert.Error(t, err)
}

func TestBuildTreeConfigurationErrors(t *testing.T) {
	_, err := BuildTree(workedExample(), 0, 2)
	assert.Equal(t, ErrNoClasses, err)
	_, err = BuildTree(workedExample(), 2, 0)
	assert.Equal(t, ErrNoFeatures, err)
	_, err = BuildTree(nil, 2, 2)
	assert.Equal(t, ErrEmptySampleSet, err)
	_, err = BuildTree(dataset.Set{}, 2, 2)
	assert.Equal(t, ErrEmptySampleSet, err)
}

func TestBuildTreeInvariantViolations(t *testing.T) {
	tests := []struct {
		name   string
		sample dataset.Sample
	}{
		{"class too high", dataset.NewSample([]int{0, 1}, 3)},
		{"class zero", dataset.NewSample([]int{0, 1}, 0)},
		{"short vector", dataset.NewSample([]int{0}, 1)},
		{"long vector", dataset.NewSample([]int{0, 1, 1}, 1)},
		{"non-binary value", dataset.NewSample([]int{0, 2}, 1)},
		{"nil sample", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := append(workedExample(), tt.sample)
			root, err := BuildTree(s, 2, 2)
			assert.Nil(t, root)
			var iv *InvariantViolation
			require.True(t, errors.As(err, &iv), "got %v", err)
			assert.Equal(t, 4, iv.Sample)
		})
	}
}

func TestBuildTreeDoesNotReuseFeaturesOnAPath(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := randomSet(r, 200, 8, 2)
	root, err := (&Builder{Classes: 2, Features: 8, Branching: SplitBoth}).Build(s)
	require.NoError(t, err)
	require.NoError(t, root.Complete())
	err = root.Traverse(false, func(n *tree.Node, _ int) error {
		if n.IsLeaf() {
			return nil
		}
		for p := n.Parent(); p != nil; p = p.Parent() {
			if p.Feature() == n.Feature() {
				return errors.New("feature tested twice on a path")
			}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.LessOrEqual(t, root.Depth(), 8)
}

func TestParallelBuildMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := randomSet(r, 300, 10, 3)
	for _, br := range []Branching{UnsplitZero, UnsplitOne, SplitBoth} {
		sequential, err := (&Builder{Classes: 3, Features: 10, Branching: br}).Build(s)
		require.NoError(t, err)

		var mu sync.Mutex
		var count int
		parallel, err := (&Builder{Classes: 3, Features: 10, Branching: br, Parallel: true, Observer: ObserverFunc(func(Event) {
			mu.Lock()
			count++
			mu.Unlock()
		})}).Build(s)
		require.NoError(t, err)
		assert.Equal(t, sequential.String(), parallel.String(), br.String())
		assert.Positive(t, count)
	}
}

func TestBuildDoesNotModifySamples(t *testing.T) {
	s := workedExample()
	before := make([][]int, len(s))
	for i, sample := range s {
		before[i] = dataset.Values(sample)
	}
	_, err := BuildTree(s, 2, 2)
	require.NoError(t, err)
	for i, sample := range s {
		assert.Equal(t, before[i], dataset.Values(sample))
	}
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := &Builder{Classes: 2, Features: 2, Observer: LogObserver(zap.New(core))}
	_, err := b.Build(workedExample())
	require.NoError(t, err)

	selected := logs.FilterMessage(FeatureSelected.String()).All()
	require.Len(t, selected, 1)
	fields := selected[0].ContextMap()
	assert.Equal(t, int64(0), fields["feature"])
	assert.Equal(t, 1.0, fields["gain"])
	assert.Equal(t, "induction", selected[0].LoggerName)
	assert.Len(t, logs.FilterMessage(LeafResolved.String()).All(), 2)
}

func TestLogObserverRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b := &Builder{Classes: 2, Features: 2, Observer: LogObserver(zap.New(core))}
	_, err := b.Build(workedExample())
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestNewPartition(t *testing.T) {
	s := workedExample()
	p, err := NewPartition(s, 1, 2, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Feature)
	assert.Equal(t, 2, p.Zeros.Count())
	assert.Equal(t, 2, p.Ones.Count())
	assert.InDelta(t, 0.0, p.InformationGain, 1e-12)

	_, err = NewPartition(s, 5, 2, 1.0)
	assert.Error(t, err)
}
