package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tosinoni/classification/pkg/crossval"
)

type crossvalCmdConfig struct {
	*rootCmdConfig
	builderFlags
	setInput      string
	metadataInput string
	reportOutput  string
	folds         int
	seed          int64
}

func crossvalCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossvalCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "crossval",
		Short: "Cross-validate tree growing on a set",
		Long:  `Split a set into folds and, for each fold, grow a tree on the rest of the set and test it on the fold`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				rootConfig.fail(1, err)
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			md, err := readMetadata(rootConfig, config.metadataInput)
			if err != nil {
				rootConfig.fail(2, err)
			}
			rootConfig.Logf("Reading set...")
			set, err := readSet(ctx, config.setInput, md)
			if err != nil {
				rootConfig.fail(3, err)
			}
			if config.seed != 0 {
				rootConfig.Logf("Shuffling %d samples with seed %d...", set.Count(), config.seed)
				set = crossval.Shuffle(set, rand.New(rand.NewSource(config.seed)))
			}
			builder, err := config.builderFlags.builder(rootConfig, len(md.Features), md.Classes)
			if err != nil {
				rootConfig.fail(4, err)
			}
			var w io.Writer = os.Stdout
			if config.reportOutput != "" {
				f, err := os.Create(config.reportOutput)
				if err != nil {
					rootConfig.fail(5, err)
				}
				defer f.Close()
				w = f
			}
			rootConfig.Logf("Cross-validating over %d folds...", config.folds)
			report, err := crossval.Run(set, config.folds, builder, w)
			if err != nil {
				rootConfig.fail(6, err)
			}
			rootConfig.Logf("Mean accuracy %f", report.MeanAccuracy)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "location of the set: a CSV file, an SQLite3 .db file, a postgresql:// or mongodb:// URL (defaults to a CSV set on STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the set (required)")
	cmd.PersistentFlags().StringVarP(&(config.reportOutput), "output", "o", "", "path to a file to write the report (defaults to STDOUT)")
	cmd.PersistentFlags().IntVarP(&(config.folds), "folds", "k", 10, "number of folds")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed to shuffle the set before splitting it into folds (0 keeps the set order)")
	config.builderFlags.register(cmd)
	return cmd
}

func (ccc *crossvalCmdConfig) Validate() error {
	if ccc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if ccc.folds < 2 {
		return fmt.Errorf("folds flag must be at least 2, got %d", ccc.folds)
	}
	return nil
}
