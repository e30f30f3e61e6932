package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	setOutput     string
	metadataInput string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy a set between backends",
		Long:  `Read a set from a CSV file, an SQLite3 database, a PostgreSQL database or a MongoDB database and write it to another`,
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
			rootConfig.Logf("Reading input set...")
			set, err := readSet(ctx, config.setInput, md)
			if err != nil {
				rootConfig.fail(3, err)
			}
			rootConfig.Logf("Writing %d samples...", set.Count())
			n, err := writeSet(ctx, config.setOutput, md, set)
			if err != nil {
				rootConfig.fail(4, err)
			}
			rootConfig.Logf("Done: %d samples written", n)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "location of the input set: a CSV file, an SQLite3 .db file, a postgresql:// or mongodb:// URL (defaults to a CSV set on STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "location of the output set, in the same formats as input (defaults to a CSV set on STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the set (required)")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.setInput != "" && scc.setInput == scc.setOutput {
		return fmt.Errorf("input and output flags cannot point to the same set")
	}
	return nil
}
