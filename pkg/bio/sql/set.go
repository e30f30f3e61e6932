package sql

import (
	"context"
	"fmt"

	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/pkg/bio"
)

/*
OpenSet takes a context, an Adapter to a db backend and metadata and returns
the set of samples stored through the adapter, in insertion order, or an
error if the samples cannot be read or do not fit the metadata.
*/
func OpenSet(ctx context.Context, dbAdapter Adapter, md *bio.Metadata) (dataset.Set, error) {
	var samples []dataset.Sample
	err := dbAdapter.IterateOnSamples(ctx, md.Features, md.ClassColumn(), func(i int, values []int, class int) (bool, error) {
		s, err := bio.NewSample(md, values, class)
		if err != nil {
			return false, fmt.Errorf("reading sample %d: %v", i, err)
		}
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

/*
WriteSet takes a context, an Adapter, metadata and a set and stores the set
samples through the adapter, creating the sample table if needed. It returns
the number of samples written or an error.
*/
func WriteSet(ctx context.Context, dbAdapter Adapter, md *bio.Metadata, s dataset.Set) (int, error) {
	err := dbAdapter.CreateSampleTable(ctx, md.Features, md.ClassColumn())
	if err != nil {
		return 0, err
	}
	rows := make([][]int, 0, s.Count())
	for _, sample := range s {
		rows = append(rows, append(dataset.Values(sample), sample.Class()))
	}
	return dbAdapter.AddSamples(ctx, rows, md.Features, md.ClassColumn())
}
