package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/career"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the career path of the resume",
	Run: func(cmd *cobra.Command, _ []string) {
		classify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func classify(cmd *cobra.Command) {
	ctx := context.Background()
	d := prepare(ctx)

	r, err := d.loadResume(ctx)
	if err != nil {
		d.logger.Fatal("loading resume", zap.Error(err))
	}

	path := career.NewClassifier(d.gen, d.logger).Classify(ctx, career.ContextFromResume(r))
	g := path.Guidance()

	if err := printJSON(cmd.OutOrStdout(), map[string]string{
		"careerPath": path.String(),
		"name":       g.Name,
		"focus":      g.Focus,
	}); err != nil {
		d.logger.Fatal("printing result", zap.Error(err))
	}
}
