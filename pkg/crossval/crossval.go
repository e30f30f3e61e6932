/*
Package crossval evaluates tree induction with k-fold cross-validation: the
samples are split into k folds and, for each fold, a tree grown from the
other folds is tested against it.
*/
package crossval

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/tosinoni/classification"
	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/tree"
)

// Fold is a split of a set into training and testing samples.
type Fold struct {
	Index int
	Train dataset.Set
	Test  dataset.Set
}

/*
Folds takes a set and a number of folds k and returns k folds where the
testing samples of fold j are the j-th contiguous block of the set and the
training samples are all the others, both in set order. It returns an error
if k is below 2 or above the number of samples.
*/
func Folds(s dataset.Set, k int) ([]Fold, error) {
	n := s.Count()
	if k < 2 || k > n {
		return nil, fmt.Errorf("cannot split %d samples into %d folds", n, k)
	}
	folds := make([]Fold, 0, k)
	for j := 0; j < k; j++ {
		start, end := j*n/k, (j+1)*n/k
		train := make(dataset.Set, 0, n-(end-start))
		train = append(train, s[:start]...)
		train = append(train, s[end:]...)
		folds = append(folds, Fold{Index: j, Train: train, Test: s[start:end:end]})
	}
	return folds, nil
}

/*
Shuffle takes a set and a source of randomness and returns a new set with
the same samples in random order.
*/
func Shuffle(s dataset.Set, r *rand.Rand) dataset.Set {
	shuffled := append(dataset.Set(nil), s...)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Result holds the outcome of a fold.
type Result struct {
	Fold        int
	Trained     int
	Tested      int
	Accuracy    float64
	Unpredicted int
	Tree        *tree.Node
}

// Report holds the outcome of a cross-validation.
type Report struct {
	Results      []Result
	MeanAccuracy float64
}

/*
Run takes a set, a number of folds k, a builder and an io.Writer, and for
each of the k folds of the set grows a tree with the builder from the
training samples and tests it against the testing samples. For every fold a
line with its counts and accuracy followed by the rendered tree is written
onto the writer, and a final line with the mean accuracy. A nil writer
skips the textual report.
It returns the report or the first error found.
*/
func Run(s dataset.Set, k int, b *classification.Builder, w io.Writer) (*Report, error) {
	folds, err := Folds(s, k)
	if err != nil {
		return nil, err
	}
	report := &Report{Results: make([]Result, 0, k)}
	for _, f := range folds {
		root, err := b.Build(f.Train)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %v", f.Index+1, err)
		}
		accuracy, unpredicted, err := root.Test(f.Test)
		if err != nil {
			return nil, fmt.Errorf("fold %d: testing tree: %v", f.Index+1, err)
		}
		r := Result{
			Fold:        f.Index + 1,
			Trained:     f.Train.Count(),
			Tested:      f.Test.Count(),
			Accuracy:    accuracy,
			Unpredicted: unpredicted,
			Tree:        root,
		}
		report.Results = append(report.Results, r)
		report.MeanAccuracy += accuracy / float64(k)
		if w != nil {
			if err = writeResult(w, r); err != nil {
				return nil, err
			}
		}
	}
	if w != nil {
		if _, err = fmt.Fprintf(w, "mean accuracy %f over %d folds\n", report.MeanAccuracy, k); err != nil {
			return nil, fmt.Errorf("writing report: %v", err)
		}
	}
	return report, nil
}

func writeResult(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w, "fold %d: trained on %d samples, tested on %d samples, accuracy %f, %d unpredicted\n",
		r.Fold, r.Trained, r.Tested, r.Accuracy, r.Unpredicted)
	if err != nil {
		return fmt.Errorf("writing report: %v", err)
	}
	return r.Tree.Render(w)
}
