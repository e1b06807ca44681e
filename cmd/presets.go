package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/templang/tvin/lookup"
)

var presetName string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the effective lookup tables of a context preset",
	Long: `Dumps the global accessors, field/collection methods, inference rules and
known types of a preset as YAML, ready to copy into a configuration overlay.
Example) tvin presets --preset page`,
	Run: func(cmd *cobra.Command, args []string) {
		config := lookup.Config{Preset: presetName}
		ctx, err := config.Context()
		if err != nil {
			logger.Error("Unknown preset", zap.String("preset", presetName), zap.Error(err))
			os.Exit(1)
		}

		d, err := yaml.Marshal(ctx.Snapshot(presetName))
		if err != nil {
			logger.Error("Error marshalling preset", zap.Error(err))
			os.Exit(1)
		}
		fmt.Print(string(d))
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetName, "preset", "base", "Preset to dump (base, page, message)")
}
