package bio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tosinoni/classification/dataset"
)

/*
ReadCSVSetBySample takes an io.Reader for a CSV stream, metadata and a
function that takes an int and a dataset.Sample and returns a bool and an
error. The function will be called with every sample parsed from the
stream and its 0-based position. Reading stops when the function returns
false or an error, in the later case the error is returned.

The header or first row of the CSV content is expected to contain the names
of the features in the metadata and the class column, in any order. Other
columns are ignored. The rest of the rows should consist of 0 or 1 values
for the features and an integer class label.
*/
func ReadCSVSetBySample(reader io.Reader, md *Metadata, lambda func(int, dataset.Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	featureColumns, classColumn, err := parseCSVHeader(header, md)
	if err != nil {
		return err
	}
	for l, i := 2, 0; ; l, i = l+1, i+1 {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseCSVRow(row, featureColumns, classColumn, md)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(i, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadCSVSet takes an io.Reader for a CSV stream and metadata and returns the
set of samples parsed from the reader as described for ReadCSVSetBySample,
or an error.
*/
func ReadCSVSet(reader io.Reader, md *Metadata) (dataset.Set, error) {
	var samples []dataset.Sample
	err := ReadCSVSetBySample(reader, md, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

/*
ReadCSVSetFromFilePath takes a filepath string and metadata, opens the file
to which the filepath points to and uses ReadCSVSet to return the set read
from it or an error. An empty filepath reads from STDIN.
*/
func ReadCSVSetFromFilePath(filepath string, md *Metadata) (dataset.Set, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading set: %v", err)
		}
		defer f.Close()
	}
	set, err := ReadCSVSet(f, md)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return set, err
}

func parseCSVHeader(header []string, md *Metadata) ([]int, int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := columns[name]; ok {
			return nil, 0, fmt.Errorf("parsing header: repeated column %s", name)
		}
		columns[name] = i
	}
	featureColumns := make([]int, len(md.Features))
	for i, name := range md.Features {
		c, ok := columns[name]
		if !ok {
			return nil, 0, fmt.Errorf("parsing header: missing feature column %s", name)
		}
		featureColumns[i] = c
	}
	classColumn, ok := columns[md.ClassColumn()]
	if !ok {
		return nil, 0, fmt.Errorf("parsing header: missing class column %s", md.ClassColumn())
	}
	return featureColumns, classColumn, nil
}

func parseCSVRow(row []string, featureColumns []int, classColumn int, md *Metadata) (dataset.Sample, error) {
	values := make([]int, len(featureColumns))
	for i, c := range featureColumns {
		v, err := strconv.Atoi(row[c])
		if err != nil {
			return nil, fmt.Errorf("converting %q to int for feature %s: %v", row[c], md.Features[i], err)
		}
		values[i] = v
	}
	class, err := strconv.Atoi(row[classColumn])
	if err != nil {
		return nil, fmt.Errorf("converting %q to int for class: %v", row[classColumn], err)
	}
	return NewSample(md, values, class)
}

/*
CSVWriter writes samples as CSV rows with the columns described by some
metadata: the features in index order followed by the class column.
*/
type CSVWriter struct {
	w     *csv.Writer
	md    *Metadata
	count int
}

/*
NewCSVWriter takes an io.Writer and metadata, writes the CSV header onto the
writer and returns a CSVWriter to write samples onto it, or an error if the
header cannot be written.
*/
func NewCSVWriter(w io.Writer, md *Metadata) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w), md: md}
	header := append(append([]string{}, md.Features...), md.ClassColumn())
	if err := cw.w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return cw, nil
}

// Write writes the given sample as a CSV row.
func (cw *CSVWriter) Write(s dataset.Sample) error {
	row := make([]string, 0, len(cw.md.Features)+1)
	for i := range cw.md.Features {
		v, err := s.ValueFor(i)
		if err != nil {
			return fmt.Errorf("writing sample %d: %v", cw.count, err)
		}
		row = append(row, strconv.Itoa(v))
	}
	row = append(row, strconv.Itoa(s.Class()))
	if err := cw.w.Write(row); err != nil {
		return fmt.Errorf("writing sample %d: %v", cw.count, err)
	}
	cw.count++
	return nil
}

// Flush writes any buffered rows onto the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// Count returns the number of samples written.
func (cw *CSVWriter) Count() int {
	return cw.count
}
