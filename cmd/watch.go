package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/templang/tvin/analyze"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-analyze templates whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(1)
		}

		engine, err := analyze.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize analysis engine", zap.Error(err))
		}
		engine.SetLogger(logger)

		for _, dir := range args {
			engine.AddWatchDir(dir)
		}

		if err := engine.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer func() { _ = engine.StopWatching() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	},
}
