package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/diagnostics"
	"github.com/apiprobe/apiprobe/packages/output"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run diagnostic checks against a request",
	Long: `Run the fixed battery of checks (functional, error-handling,
performance, security) against the described request, or a category
subset with --category.

The performance check sends the request once per iteration, sequentially.
The security check sends the live request twice: once as configured and
once with the Authorization header removed.

Examples:
  apiprobe check -u https://api.example.com/health
  apiprobe check -f request.yaml --expected-status 201
  apiprobe check -f request.yaml --category security
  apiprobe check -f request.yaml --category load --iterations 10 --rate 2
  apiprobe check -f request.yaml --watch`,
	RunE: runCheck,
}

var (
	checkFlags         requestFlags
	categoryFlag       string
	expectedStatusFlag int
	iterationsFlag     int
	rateFlag           float64
	watchFlag          bool
	verboseFlag        bool
)

func init() {
	addRequestFlags(checkCmd, &checkFlags)
	checkCmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "Run one category: manual, automated, load or security (default: all checks)")
	checkCmd.Flags().IntVar(&expectedStatusFlag, "expected-status", getEnvInt("APIPROBE_EXPECTED_STATUS", 0), "Status the functional check expects (env: APIPROBE_EXPECTED_STATUS)")
	checkCmd.Flags().IntVarP(&iterationsFlag, "iterations", "n", getEnvInt("APIPROBE_ITERATIONS", 0), "Performance check call count (env: APIPROBE_ITERATIONS)")
	checkCmd.Flags().Float64VarP(&rateFlag, "rate", "r", 0, "Pace the performance check at this many requests per second (0 = unpaced)")
	checkCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the request file and re-run checks on change (requires --file)")
	checkCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if watchFlag && checkFlags.file == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "--watch requires --file")
		os.Exit(ExitUsageError)
	}

	transport, cfg, err := checkFlags.newTransport()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(ExitConfigError)
	}

	expected := cfg.ExpectedStatus
	if expectedStatusFlag > 0 {
		expected = expectedStatusFlag
	}
	iterations := cfg.Iterations
	if iterationsFlag > 0 {
		iterations = iterationsFlag
	}
	rate := cfg.Rate
	if rateFlag > 0 {
		rate = rateFlag
	}

	runner := diagnostics.NewRunner(
		diagnostics.WithTransport(transport),
		diagnostics.WithExpectedStatus(expected),
		diagnostics.WithIterations(iterations),
		diagnostics.WithRate(rate),
	)

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag),
		output.WithNoColor(checkFlags.noColor),
	)

	runOnce := func() (bool, error) {
		in, err := checkFlags.buildInput()
		if err != nil {
			return false, err
		}
		report := runChecks(runner, in)
		formatter.FormatReport(report)
		if categoryFlag != "" {
			formatter.FormatTools(diagnostics.Category(categoryFlag))
		}
		return report.Passed(), nil
	}

	passed, err := runOnce()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(ExitConfigError)
	}

	if !watchFlag {
		if !passed {
			os.Exit(ExitCheckFailure)
		}
		return nil
	}

	return watchAndRerun(cmd, checkFlags.file, runOnce)
}

func runChecks(runner *diagnostics.Runner, in request.Input) *diagnostics.Report {
	if categoryFlag != "" {
		return runner.RunCategory(in, diagnostics.Category(categoryFlag))
	}
	return runner.RunAll(in)
}

// watchAndRerun re-runs the checks whenever the request file changes,
// debouncing rapid write events.
func watchAndRerun(cmd *cobra.Command, file string, runOnce func() (bool, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", file)

	var debounceTimer *time.Timer

	target, _ := filepath.Abs(file)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			changed, _ := filepath.Abs(event.Name)
			if event.Has(fsnotify.Write) && changed == target {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running checks...\n\n", event.Name)
					if _, err := runOnce(); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", file)
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
