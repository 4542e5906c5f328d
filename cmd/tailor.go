package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/resume"
	"github.com/spigell/jobfit/internal/tailor"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Rewrite the resume for one job posting",
	Long: `Search and score jobs, then rewrite the resume summary, the most recent
experience descriptions and the skill list for the selected job. Without --job
the job is picked interactively. Resumes with an id use the structured variant
unless --enhanced is given explicitly.`,
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindSearchFlags(cmd)
		viper.BindPFlag(enhancedFlag, cmd.Flags().Lookup(enhancedFlag))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		runTailor(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tailorCmd)

	addSearchFlags(tailorCmd)
	tailorCmd.Flags().String("job", "", "id of the job to tailor for")
	tailorCmd.Flags().Bool(enhancedFlag, false, "use a single structured call that also reports keyword coverage")
	tailorCmd.Flags().StringP("output", "o", defaultTailoredResumeOut, "where to write the tailored resume")
}

func runTailor(cmd *cobra.Command) {
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
	if scored.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	var job *jobs.Job
	if id := cmd.Flag("job").Value.String(); id != "" {
		job = scored.FindByID(id)
		if job == nil {
			logger.Fatal("there is no such job id", zap.String("job_id", id))
		}
	} else {
		job, err = selectJob(scored)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if job == nil {
			return
		}
	}

	output := cmd.Flag("output").Value.String()
	if err := tailorAndSave(ctx, d, r, *job, useEnhanced(r), output); err != nil {
		logger.Fatal("tailoring resume", zap.Error(err))
	}
}

// useEnhanced defaults to the structured variant for persisted resumes.
func useEnhanced(r resume.Resume) bool {
	if viper.IsSet(enhancedFlag) {
		return viper.GetBool(enhancedFlag)
	}
	return r.HasID()
}

// tailorAndSave prints the tailored content and writes the resulting resume to output.
func tailorAndSave(ctx context.Context, d *deps, r resume.Resume, job jobs.Job, enhanced bool, output string) error {
	t := tailor.New(d.gen, d.logger)

	var content tailor.Content
	if enhanced {
		content = t.TailorToJobEnhanced(ctx, r, job)
	} else {
		content = t.TailorToJob(ctx, r, job)
	}

	if err := printJSON(os.Stdout, content); err != nil {
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer file.Close()

	if err := printJSON(file, content.Apply(r)); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	d.logger.Info("tailored resume written",
		zap.String("filename", output),
		zap.String("job_id", job.ID),
		zap.String("job_title", job.Title),
		zap.Bool("enhanced", enhanced),
	)
	return nil
}
