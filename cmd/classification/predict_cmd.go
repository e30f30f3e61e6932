package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tosinoni/classification/pkg/bio"
	"github.com/tosinoni/classification/tree"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	redisAddr     string
	metadataInput string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict feature=value...",
		Short: "Predict the class of a sample",
		Long:  `Predict the class of a sample given as feature=value arguments, where every feature of the metadata takes value 0 or 1`,
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
			class, err := predict(root, md, args)
			if err != nil {
				rootConfig.fail(4, err)
			}
			fmt.Printf("class %d\n", class)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with the tree (- for STDIN), or its name when --redis is set (required)")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to load the tree from")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the classes and features of the sample (required)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

/*
predict takes a tree, metadata and feature=value arguments and returns the
class the tree predicts for the sample they describe. Every feature of the
metadata must be given a value.
*/
func predict(root *tree.Node, md *bio.Metadata, args []string) (int, error) {
	index := make(map[string]int, len(md.Features))
	for i, name := range md.Features {
		index[name] = i
	}
	values := make([]int, len(md.Features))
	given := make([]bool, len(md.Features))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return 0, fmt.Errorf("argument %q does not follow the feature=value format", arg)
		}
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("unknown feature %q", name)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parsing value for feature %s: %v", name, err)
		}
		values[i] = v
		given[i] = true
	}
	for i, ok := range given {
		if !ok {
			return 0, fmt.Errorf("missing value for feature %s", md.Features[i])
		}
	}
	s, err := bio.NewSample(md, values, 1)
	if err != nil {
		return 0, err
	}
	return root.Predict(s)
}
