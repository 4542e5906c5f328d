package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/suggest"
)

const (
	kindSummaries = "summaries"
	kindBullets   = "bullets"
	kindSkills    = "skills"
	kindGeneral   = "general"
	kindAll       = "all"
)

var suggestCmd = &cobra.Command{
	Use:       "suggest [summaries|bullets|skills|general|all]",
	Short:     "Generate resume improvement suggestions",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{kindSummaries, kindBullets, kindSkills, kindGeneral, kindAll},
	Run: func(cmd *cobra.Command, args []string) {
		kind := kindAll
		if len(args) == 1 {
			kind = args[0]
		}
		runSuggest(cmd, kind)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("job-title", "", "job title the suggestions should target")
	suggestCmd.Flags().String("career-path", "", fmt.Sprintf("career path for general suggestions, classified from the resume when unset (%s)", strings.Join(pathNames(), ", ")))
}

func runSuggest(cmd *cobra.Command, kind string) {
	ctx := context.Background()
	d := prepare(ctx)

	r, err := d.loadResume(ctx)
	if err != nil {
		d.logger.Fatal("loading resume", zap.Error(err))
	}

	jobTitle := cmd.Flag("job-title").Value.String()

	var path career.Path
	if raw := cmd.Flag("career-path").Value.String(); raw != "" {
		parsed, ok := career.Parse(raw)
		if !ok {
			d.logger.Fatal("unknown career path", zap.String("career_path", raw), zap.Strings("known", pathNames()))
		}
		path = parsed
	}

	engine := suggest.New(d.gen, d.logger)
	result := map[string][]string{}

	if kind == kindSummaries || kind == kindAll {
		result[kindSummaries] = engine.GenerateSummaries(ctx, r, jobTitle)
	}
	if kind == kindBullets || kind == kindAll {
		result[kindBullets] = engine.GenerateExperienceBulletPoints(ctx, r, jobTitle)
	}
	if kind == kindSkills || kind == kindAll {
		result[kindSkills] = engine.GenerateSkillSuggestions(ctx, r, jobTitle)
	}
	if kind == kindGeneral || kind == kindAll {
		result[kindGeneral] = engine.GenerateGeneralSuggestions(ctx, r, path)
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		d.logger.Fatal("printing result", zap.Error(err))
	}
}

func pathNames() []string {
	paths := career.Paths()
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, p.String())
	}
	return names
}
