package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tosinoni/classification/tree"
	"github.com/tosinoni/classification/tree/redisstore"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
	redisAddr string
	describe  bool
	list      bool
	remove    bool
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show a previously grown tree, read from a JSON file or a redis server`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				rootConfig.fail(1, err)
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			if config.list || config.remove {
				if err = config.manageStore(ctx); err != nil {
					rootConfig.fail(2, err)
				}
				return
			}
			rootConfig.Logf("Loading tree from %s...", config.treeInput)
			root, err := loadTree(ctx, config.redisAddr, config.treeInput)
			if err != nil {
				rootConfig.fail(3, err)
			}
			rootConfig.Logf("Tree loaded: %d nodes and depth %d", root.Size(), root.Depth())
			if config.describe {
				err = describeTree(root)
			} else {
				err = root.Render(os.Stdout)
			}
			if err != nil {
				rootConfig.fail(4, err)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file with the tree (- for STDIN), or its name when --redis is set")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "address of a redis server to load the tree from")
	cmd.PersistentFlags().BoolVarP(&(config.describe), "describe", "d", false, "print a description of every node instead of rendering the tree")
	cmd.PersistentFlags().BoolVarP(&(config.list), "list", "l", false, "list the names of the trees on the redis server")
	cmd.PersistentFlags().BoolVar(&(config.remove), "delete", false, "delete the tree from the redis server")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if (tcc.list || tcc.remove) && tcc.redisAddr == "" {
		return fmt.Errorf("list and delete flags require the redis flag")
	}
	if tcc.list && tcc.remove {
		return fmt.Errorf("list and delete flags cannot be set together")
	}
	if !tcc.list && tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (tcc *treeCmdConfig) manageStore(ctx context.Context) error {
	store, err := redisstore.Dial(ctx, tcc.redisAddr, redisKeyPrefix)
	if err != nil {
		return err
	}
	defer store.Close()
	if tcc.remove {
		tcc.Logf("Deleting tree %s...", tcc.treeInput)
		return store.Delete(ctx, tcc.treeInput)
	}
	names, err := store.Names(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func describeTree(root *tree.Node) error {
	w := bufio.NewWriter(os.Stdout)
	err := root.Traverse(false, func(n *tree.Node, depth int) error {
		_, err := fmt.Fprintf(w, "%d: %s\n", depth, n.Describe())
		return err
	})
	if err != nil {
		return err
	}
	return w.Flush()
}
