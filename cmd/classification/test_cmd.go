package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	redisAddr     string
	testSetInput  string
	metadataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test set of samples of known class`,
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
			rootConfig.Logf("Loading tree from %s...", config.treeInput)
			root, err := loadTree(ctx, config.redisAddr, config.treeInput)
			if err != nil {
				rootConfig.fail(3, err)
			}
			rootConfig.Logf("Reading test set...")
			set, err := readSet(ctx, config.testSetInput, md)
			if err != nil {
				rootConfig.fail(4, err)
			}
			rootConfig.Logf("Testing tree against %d samples...", set.Count())
			successRate, errorCount, err := root.Test(set)
			if err != nil {
				rootConfig.fail(5, err)
			}
			fmt.Printf("%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with the tree (- for STDIN), or its name when --redis is set (required)")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to load the tree from")
	cmd.PersistentFlags().StringVarP(&(config.testSetInput), "input", "i", "", "location of the test set: a CSV file, an SQLite3 .db file, a postgresql:// or mongodb:// URL (defaults to a CSV set on STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the set (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.treeInput == stdLocation && (tcc.testSetInput == "" || tcc.testSetInput == stdLocation) {
		return fmt.Errorf("tree and test set cannot be both read from STDIN")
	}
	return nil
}
