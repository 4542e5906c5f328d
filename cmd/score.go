package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/filtering"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/matching"
	"github.com/spigell/jobfit/internal/resume"
)

const (
	PromptExit               = "Exit"
	PromptReportByCompanies  = "Report by companies"
	PromptJobsToFile         = "Dump jobs to file"
	PromptAppendToExclude    = "Append all jobs to exclude file"
	PromptTailorForJob       = "Tailor the resume for a job"
	PromptBack               = "back"
	minimumMatchFilterName   = "minimum_match"
	noMinimumMatchFlag       = "no-minimum"
	autoApproveFlag          = "auto-approve"
	excludeFileFlag          = "exclude-file"
	enhancedFlag             = "enhanced"
	defaultTailoredResumeOut = "tailored-resume.json"
)

var errExit = errors.New("exit requested")

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Search jobs and rank them by how well they fit the resume",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindSearchFlags(cmd)
		viper.BindPFlag("exclude-file", cmd.Flags().Lookup(excludeFileFlag))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	addSearchFlags(scoreCmd)
	scoreCmd.Flags().BoolP(autoApproveFlag, "y", false, "print the report and exit without prompting")
	scoreCmd.Flags().Bool(noMinimumMatchFlag, false, "keep jobs under match.minimum-score")
	scoreCmd.Flags().StringP(excludeFileFlag, "e", "", "special file with jobs to exclude. Default is unset.")
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "job title to search for")
	cmd.Flags().String("location", "", "job location, remote or anywhere skip the location filter")
	cmd.Flags().String("type", "", "job type: full-time, part-time or contract")
	cmd.Flags().String("experience", "", "experience level: entry, junior, mid or senior")
}

// bindSearchFlags binds the running command's flags. score and tailor share
// the search keys, so binding happens per run rather than in init.
func bindSearchFlags(cmd *cobra.Command) {
	viper.BindPFlag("search.title", cmd.Flags().Lookup("title"))
	viper.BindPFlag("search.location", cmd.Flags().Lookup("location"))
	viper.BindPFlag("search.type", cmd.Flags().Lookup("type"))
	viper.BindPFlag("search.experience", cmd.Flags().Lookup("experience"))
}

func score(cmd *cobra.Command) {
	ctx := context.Background()
	d := prepare(ctx)
	logger := d.logger

	r, err := d.loadResume(ctx)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	scored, err := searchAndScore(ctx, d, r)
	if err != nil {
		logger.Fatal("scoring jobs", zap.Error(err))
	}

	steps := filtering.Default()
	if cmd.Flag(noMinimumMatchFlag).Value.String() == "true" {
		filtering.DisableByName(steps, minimumMatchFilterName, "--"+noMinimumMatchFlag+" flag is set")
	}

	filtered, err := filtering.Run(ctx, &filtering.Config{
		Companies:    d.config.Match.ExcludeCompanies,
		ExcludeFile:  d.config.ExcludeFile,
		MinimumMatch: d.config.Match.MinimumScore,
	}, filtering.Deps{Logger: logger}, steps, scored)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if filtered.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	if cmd.Flag(autoApproveFlag).Value.String() == "true" {
		if err := handleAction(ctx, PromptReportByCompanies, d, r, filtered); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	items := []string{PromptReportByCompanies, PromptTailorForJob, PromptJobsToFile}
	if d.config.ExcludeFile != "" {
		items = append(items, PromptAppendToExclude)
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptExit),
	}

	for {
		logger.Info("current list of jobs", zap.Int("count", filtered.Len()))

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, d, r, filtered); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// searchAndScore runs the configured search and ranks the results.
func searchAndScore(ctx context.Context, d *deps, r resume.Resume) (*jobs.Jobs, error) {
	client, err := d.jobsClient()
	if err != nil {
		return nil, fmt.Errorf("building jobs client: %w", err)
	}

	d.logger.Info("starting the search", zap.String("title", d.config.Search.Title), zap.String("location", d.config.Search.Location))

	found := client.Search(ctx, *d.config.Search)
	if found.Len() == 0 {
		return found, nil
	}

	scorer := matching.NewScorer(d.gen, d.ai.MaxConcurrency, d.logger)
	scored := &jobs.Jobs{Items: scorer.ScoreAll(ctx, found.Items, r)}

	d.logger.Info("jobs scored", zap.Int("count", scored.Len()), zap.Bool("llm", d.gen != nil))
	return scored, nil
}

func handleAction(ctx context.Context, action string, d *deps, r resume.Resume, list *jobs.Jobs) error {
	logger := d.logger

	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(list.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", list.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExclude:
		return appendToExcludeFile(d, list)
	case PromptTailorForJob:
		job, err := selectJob(list)
		if err != nil || job == nil {
			return err
		}
		return tailorAndSave(ctx, d, r, *job, useEnhanced(r), defaultTailoredResumeOut)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(d *deps, list *jobs.Jobs) error {
	path := d.config.ExcludeFile

	excluded, err := jobs.GetExcludedFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &jobs.ExcludedJobs{}, nil
	}
	if err != nil {
		return err
	}

	excluded.Append(list.ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		return err
	}

	d.logger.Info("appended to exclude file", zap.String("filename", path))

	list.Exclude(jobs.JobIDField, excluded.IDs())
	return nil
}

// selectJob asks the user to pick a job. A nil job means the user went back.
func selectJob(list *jobs.Jobs) (*jobs.Job, error) {
	items := make([]string, 0, list.Len()+1)
	for _, job := range list.Items {
		items = append(items, fmt.Sprintf("%s %d%% %s / %s / %s", job.ID, job.Match, job.Title, job.Company, job.Location))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	idx, _, err := jobPrompt.Run()
	if err != nil {
		return nil, err
	}
	if idx >= list.Len() {
		return nil, nil
	}

	return &list.Items[idx], nil
}
