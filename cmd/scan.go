package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/templang/tvin/analyze"
	"github.com/templang/tvin/formatter"
	"github.com/templang/tvin/internal"
)

var (
	scanJsonOutput bool
	outPath        string
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Analyze templates and report their variables and blocks",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := analyze.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize analysis engine", zap.Error(err))
		}
		engine.SetLogger(logger)

		runScan(ctx, logger, engine, args, scanJsonOutput, outPath)
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJsonOutput, "json", false, "Output reports in JSON format")
	scanCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runScan(ctx context.Context, logger *zap.Logger, engine analyze.Engine, paths []string, isJson bool, jsonOutput string) {
	results, err := analyze.ProcessFiles(ctx, logger, engine, paths, analyze.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printResults(logger, results, isJson, jsonOutput)
}

func printResults(logger *zap.Logger, results []analyze.Result, isJson bool, jsonOutput string) {
	if !isJson {
		// text output
		blocks, variables := 0, 0
		for _, result := range results {
			fmt.Println(formatter.Format(result.Report))
			blocks += countBlocks(result.Report.Blocks)
			variables += countVariables(result.Report)
		}
		fmt.Println(formatter.Summary(len(results), blocks, variables))
		return
	}

	// JSON output
	reportsByFile := make(map[string]*internal.Report, len(results))
	for _, result := range results {
		reportsByFile[result.Path] = result.Report
	}
	d, err := json.Marshal(reportsByFile)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}

func countBlocks(blocks []internal.BlockReport) int {
	n := len(blocks)
	for _, block := range blocks {
		n += countBlocks(block.Blocks)
	}
	return n
}

func countVariables(report *internal.Report) int {
	n := len(report.Variables)
	var walk func([]internal.BlockReport)
	walk = func(blocks []internal.BlockReport) {
		for _, block := range blocks {
			n += len(block.Variables)
			walk(block.Blocks)
		}
	}
	walk(report.Blocks)
	return n
}
