package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/pkg/bio"
)

type splitCmdConfig struct {
	*rootCmdConfig
	setInput         string
	metadataInput    string
	setOutput        string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a CSV set into an output set and a split set, for instance to keep a test set apart from a training set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				rootConfig.fail(1, err)
			}
			md, err := readMetadata(rootConfig, config.metadataInput)
			if err != nil {
				rootConfig.fail(2, err)
			}

			outputFile := os.Stdout
			if config.setOutput != "" {
				rootConfig.Logf("Creating %s to dump output set...", config.setOutput)
				outputFile, err = os.Create(config.setOutput)
				if err != nil {
					rootConfig.fail(3, err)
				}
				defer outputFile.Close()
			}
			output, err := bio.NewCSVWriter(outputFile, md)
			if err != nil {
				rootConfig.fail(4, err)
			}

			rootConfig.Logf("Creating %s to dump split set...", config.splitOutput)
			splitOutputFile, err := os.Create(config.splitOutput)
			if err != nil {
				rootConfig.fail(5, err)
			}
			defer splitOutputFile.Close()
			splitOutput, err := bio.NewCSVWriter(splitOutputFile, md)
			if err != nil {
				rootConfig.fail(6, err)
			}

			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			randomizer := rand.New(rand.NewSource(seed))
			splitter := func(i int, s dataset.Sample) (bool, error) {
				var err error
				if (100 * randomizer.Float32()) >= float32(config.splitProbability) {
					err = output.Write(s)
				} else {
					err = splitOutput.Write(s)
				}
				if err != nil {
					return false, err
				}
				return true, nil
			}

			inputFile := os.Stdin
			if config.setInput != "" && config.setInput != stdLocation {
				rootConfig.Logf("Opening %s to read input set...", config.setInput)
				inputFile, err = os.Open(config.setInput)
				if err != nil {
					rootConfig.fail(7, fmt.Errorf("reading input set from %s: %v", config.setInput, err))
				}
				defer inputFile.Close()
			}
			rootConfig.Logf("Splitting input set into output and split output sets...")
			err = bio.ReadCSVSetBySample(inputFile, md, splitter)
			if err != nil {
				rootConfig.fail(8, err)
			}
			if err = output.Flush(); err != nil {
				rootConfig.fail(9, err)
			}
			if err = splitOutput.Flush(); err != nil {
				rootConfig.fail(10, err)
			}
			rootConfig.Logf("Input set with %d samples was split into sets with %d and %d samples", output.Count()+splitOutput.Count(), output.Count(), splitOutput.Count())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV file with the set to split (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the set (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a file to dump the output set (defaults to STDOUT)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a file to dump the split set (required)")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (0 for a time based seed)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}
