package examinator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kamilpajak/examinator/internal/build"
	"github.com/kamilpajak/examinator/internal/config"
	"github.com/kamilpajak/examinator/internal/database"
	"github.com/kamilpajak/examinator/internal/diagnose"
	"github.com/kamilpajak/examinator/internal/judge"
	"github.com/kamilpajak/examinator/internal/littool"
	"github.com/kamilpajak/examinator/internal/report"
	"github.com/kamilpajak/examinator/pkg/models"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	gradeConfig    string
	gradeEvalDir   string
	gradeBuildDir  string
	gradeFormat    string
	gradeSkipBuild bool
	gradeStore     bool
)

var gradeCmd = &cobra.Command{
	Use:   "grade [submission]",
	Short: "Build and grade a submission against the evaluation tree",
	Long: `Build the submission, then walk the evaluation tree and run every
fixture through lit. When the build fails, the classified build diagnostic
is reported and no tests run.

Examples:
  examinator grade
  examinator grade alice --format json
  examinator grade alice --store`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().StringVarP(&gradeConfig, "config", "c", config.DefaultPath, "Config file path")
	gradeCmd.Flags().StringVar(&gradeEvalDir, "evaluation-dir", "", "Override the evaluation tree root")
	gradeCmd.Flags().StringVar(&gradeBuildDir, "build-dir", "", "Override the build output tree")
	gradeCmd.Flags().StringVarP(&gradeFormat, "format", "f", "text", "Report format (text, json)")
	gradeCmd.Flags().BoolVar(&gradeSkipBuild, "skip-build", false, "Assume the submission is already built")
	gradeCmd.Flags().BoolVar(&gradeStore, "store", false, "Persist the run to the configured database")
}

func runGrade(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(gradeConfig)
	if err != nil {
		return err
	}
	cfg.LoadEnv()
	if gradeEvalDir != "" {
		cfg.EvaluationDir = gradeEvalDir
	}
	if gradeBuildDir != "" {
		cfg.BuildDir = gradeBuildDir
	}

	submission := "submission"
	if len(args) == 1 {
		submission = args[0]
	}

	sink, err := newSink(gradeFormat)
	if err != nil {
		return err
	}

	start := time.Now()
	summary := &models.Summary{Submission: submission}

	if !gradeSkipBuild {
		res, berr := build.Run(ctx, build.Params{
			Dir:      cfg.BuildDir,
			Command:  cfg.BuildCommand,
			Progress: gradeFormat == "text",
		})
		if berr != nil {
			return berr
		}
		if !res.OK {
			// Build failure short-circuits the whole run: classify, report,
			// and skip every test.
			d := diagnose.Classify(res.Stderr, &res.ExitCode)
			judge.ReportBuildFailure(sink, d)
			summary.Diagnostic = &d
			return finishRun(ctx, cfg, summary, start)
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	j, err := judge.New(judge.Params{
		EvaluationDir: cfg.EvaluationDir,
		BuildDir:      cfg.BuildDir,
		Tool:          &littool.Lit{Binary: cfg.LitBinary},
		Sink:          sink,
		Limiter:       limiter,
		BarWidth:      cfg.BarWidth,
	})
	if err != nil {
		return err
	}

	score, err := j.Run(ctx)
	if err != nil {
		return fmt.Errorf("grading failed: %w", err)
	}
	summary.Score = score
	summary.Tabs = j.TabScores()

	return finishRun(ctx, cfg, summary, start)
}

// newSink picks the report sink for the requested format.
func newSink(format string) (report.Sink, error) {
	switch format {
	case "json":
		return report.NewJSONSink(os.Stdout), nil
	case "text":
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
		return report.NewTerminalSink(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

// finishRun prints the score summary, optionally persists the run, and
// never fails the grading because persistence failed.
func finishRun(ctx context.Context, cfg config.Config, summary *models.Summary, start time.Time) error {
	summary.Duration = time.Since(start)
	summary.DurationMS = summary.Duration.Milliseconds()

	printSummary(summary)

	if gradeFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	}

	if !gradeStore {
		return nil
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--store requires database_url in config or DATABASE_URL")
	}
	if err := storeRun(ctx, cfg.DatabaseURL, summary); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to store run: %v\n", err)
	}
	return nil
}

func printSummary(summary *models.Summary) {
	if summary.Diagnostic != nil {
		red := color.New(color.FgRed)
		_, _ = red.Fprintln(os.Stderr, "Build failed; no tests were run.")
		return
	}

	fmt.Fprintf(os.Stderr, "Graded %s: %d/%d correct (%.1fs)\n",
		summary.Submission, summary.Score.Correct, summary.Score.Total,
		summary.Duration.Seconds())
}

func storeRun(ctx context.Context, databaseURL string, summary *models.Summary) error {
	if err := database.Migrate(databaseURL); err != nil {
		return err
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.CreateRun(ctx, database.CreateRunParams{
		Submission: summary.Submission,
		Correct:    summary.Score.Correct,
		Total:      summary.Score.Total,
		Tabs:       summary.Tabs,
		Diagnostic: summary.Diagnostic,
		DurationMS: summary.DurationMS,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Stored run %s\n", run.ID)
	return nil
}
