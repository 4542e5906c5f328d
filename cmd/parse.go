package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Turn a pdf, txt or docx resume into structured json",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", "", "write the structured resume to this file")
}

func parse(cmd *cobra.Command, path string) {
	ctx := context.Background()
	d := prepare(ctx)
	logger := d.logger

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading resume file", zap.Error(err))
	}

	result := d.parser().Parse(ctx, data, filepath.Base(path))
	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}

	if !result.Success {
		os.Exit(1)
	}

	output := cmd.Flag("output").Value.String()
	if output == "" {
		return
	}

	file, err := os.Create(output)
	if err != nil {
		logger.Fatal("creating output file", zap.Error(err))
	}
	defer file.Close()

	if err := printJSON(file, result.Data); err != nil {
		logger.Fatal("writing output file", zap.Error(err))
	}

	logger.Info("structured resume written", zap.String("filename", output))
}
