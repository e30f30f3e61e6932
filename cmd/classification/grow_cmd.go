package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tosinoni/classification"
)

type builderFlags struct {
	branching string
	parallel  bool
}

type growCmdConfig struct {
	*rootCmdConfig
	builderFlags
	setInput      string
	metadataInput string
	treeOutput    string
	redisAddr     string
	quiet         bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict the class of new samples from their binary features`,
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
			rootConfig.Logf("Reading training set...")
			set, err := readSet(ctx, config.setInput, md)
			if err != nil {
				rootConfig.fail(3, err)
			}
			rootConfig.Logf("Training set read: %d samples", set.Count())
			builder, err := config.builderFlags.builder(rootConfig, len(md.Features), md.Classes)
			if err != nil {
				rootConfig.fail(4, err)
			}
			rootConfig.Logf("Growing tree with %s branching...", builder.Branching)
			root, err := builder.Build(set)
			if err != nil {
				rootConfig.fail(5, err)
			}
			rootConfig.Logf("Tree grown: %d nodes and depth %d", root.Size(), root.Depth())
			if config.treeOutput != "" {
				err = saveTree(ctx, config.redisAddr, config.treeOutput, root)
				if err != nil {
					rootConfig.fail(6, err)
				}
				rootConfig.Logf("Tree saved to %s", config.treeOutput)
			}
			if !config.quiet && config.treeOutput != stdLocation {
				if err = root.Render(os.Stdout); err != nil {
					rootConfig.fail(7, err)
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "location of the training set: a CSV file, an SQLite3 .db file, a postgresql:// or mongodb:// URL (defaults to a CSV set on STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the set (required)")
	cmd.PersistentFlags().StringVarP(&(config.treeOutput), "output", "o", "", "path to a JSON file to save the tree (- for STDOUT), or its name when --redis is set")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to save the tree on")
	cmd.PersistentFlags().BoolVarP(&(config.quiet), "quiet", "q", false, "do not print the rendered tree")
	config.builderFlags.register(cmd)
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.redisAddr != "" && (gcc.treeOutput == "" || gcc.treeOutput == stdLocation) {
		return fmt.Errorf("output flag must name the tree when redis flag is set")
	}
	_, err := classification.ParseBranching(gcc.branching)
	return err
}

func (bf *builderFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(bf.branching), "branching", "b", classification.UnsplitZero.String(), "samples each branch recurses on: unsplit-zero, unsplit-one or split-both")
	cmd.PersistentFlags().BoolVarP(&(bf.parallel), "parallel", "p", false, "grow sibling branches concurrently")
}

func (bf *builderFlags) builder(rootConfig *rootCmdConfig, features, classes int) (*classification.Builder, error) {
	branching, err := classification.ParseBranching(bf.branching)
	if err != nil {
		return nil, err
	}
	return &classification.Builder{
		Classes:   classes,
		Features:  features,
		Observer:  classification.LogObserver(rootConfig.logger),
		Branching: branching,
		Parallel:  bf.parallel,
	}, nil
}
