package crossval

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tosinoni/classification"
	"github.com/tosinoni/classification/dataset"
)

func separable(n int) dataset.Set {
	s := make(dataset.Set, 0, n)
	for i := 0; i < n; i++ {
		f0 := i % 2
		s = append(s, dataset.NewSample([]int{f0, (i / 2) % 2}, f0+1))
	}
	return s
}

func TestFolds(t *testing.T) {
	s := separable(10)
	folds, err := Folds(s, 3)
	require.NoError(t, err)
	require.Len(t, folds, 3)
	var tested int
	for j, f := range folds {
		assert.Equal(t, j, f.Index)
		assert.Equal(t, s.Count(), f.Train.Count()+f.Test.Count())
		tested += f.Test.Count()
	}
	assert.Equal(t, 10, tested)
	assert.Equal(t, dataset.Set(s[0:3]), folds[0].Test)
	assert.Equal(t, dataset.Set(s[6:10]), folds[2].Test)
	assert.Equal(t, dataset.Set(s[3:]), folds[0].Train)

	folds[0].Train[0] = nil
	assert.NotNil(t, s[3])
}

func TestFoldsErrors(t *testing.T) {
	_, err := Folds(separable(4), 1)
	assert.Error(t, err)
	_, err = Folds(separable(4), 5)
	assert.Error(t, err)
}

func TestShuffle(t *testing.T) {
	s := separable(20)
	shuffled := Shuffle(s, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, s, shuffled)
	for i, sample := range s {
		assert.Equal(t, i%2+1, sample.Class())
	}
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	b := &classification.Builder{Classes: 2, Features: 2, Branching: classification.SplitBoth}
	report, err := Run(separable(12), 4, b, &buf)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	for i, r := range report.Results {
		assert.Equal(t, i+1, r.Fold)
		assert.Equal(t, 9, r.Trained)
		assert.Equal(t, 3, r.Tested)
		assert.Equal(t, 1.0, r.Accuracy)
		assert.NotNil(t, r.Tree)
	}
	assert.InDelta(t, 1.0, report.MeanAccuracy, 1e-12)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "fold 1: trained on 9 samples, tested on 3 samples, accuracy 1.000000, 0 unpredicted\n|____ feature 0\n"), out)
	assert.True(t, strings.HasSuffix(out, "mean accuracy 1.000000 over 4 folds\n"), out)
}

func TestRunWithoutWriter(t *testing.T) {
	b := &classification.Builder{Classes: 2, Features: 2}
	report, err := Run(separable(6), 2, b, nil)
	require.NoError(t, err)
	assert.Len(t, report.Results, 2)
}

func TestRunBuildError(t *testing.T) {
	b := &classification.Builder{Classes: 1, Features: 2}
	_, err := Run(separable(6), 2, b, nil)
	assert.Error(t, err)
}
