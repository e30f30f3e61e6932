package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose  bool
	logLevel string
	logFile  string
	logger   *zap.Logger
}

func main() {
	config := &rootCmdConfig{}
	err := cliParser(config).Execute()
	if config.logger != nil {
		config.logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func cliParser(config *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classification",
		Short: "classification is a tool to grow binary decision trees",
		Long:  `A tool to grow decision trees over binary features from labeled samples, test them, cross-validate them and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(config.logLevel, config.logFile, config.verbose)
			if err != nil {
				return err
			}
			config.logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug messages, including the trace of tree induction")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "warn", "minimum level of logged messages: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to which logs are written as JSON and rotated (defaults to STDERR)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		treeCmd(config),
		testCmd(config),
		predictCmd(config),
		crossvalCmd(config),
		setCmd(config),
		splitCmd(config),
	)
	return rootCmd
}
