// Command zipback extracts Windows backup ZIP archives into a destination
// tree, normalizing drive-letter paths and processing archives in natural
// order so incremental backups overlay correctly.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/zipback/internal/config"
	"github.com/bamsammich/zipback/internal/engine"
	"github.com/bamsammich/zipback/internal/event"
	"github.com/bamsammich/zipback/internal/stats"
	"github.com/bamsammich/zipback/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates flag parsing and mode selection
func run() int {
	var (
		source      string
		dest        string
		analyzeOnly bool
		yes         bool
		digest      bool
		sample      int
		verbose     bool
		quiet       bool
		noProgress  bool
		logFile     string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "zipback [flags]",
		Short:         "Extract Windows backup ZIP files and restore folder structure",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "zipback %s\n", version)
				return nil
			}

			if source == "" {
				return errors.New("--source is required")
			}
			if !analyzeOnly && dest == "" {
				return errors.New("--dest is required unless --analyze-only is set")
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &digest, &sample, &quiet, &yes)

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()

			// Analysis always runs first: it validates the source, reports
			// what was found, and primes the progress totals for extraction.
			analysis := engine.Run(ctx, engine.Config{
				Source:      source,
				AnalyzeOnly: true,
				Sample:      sample,
				Stats:       collector,
			})
			if analysis.Err != nil {
				slog.Error("analysis failed", "error", analysis.Err)
				return &exitError{code: 2}
			}
			if !quiet {
				fmt.Fprint(os.Stdout, ui.RenderReport(source, analysis.Report))
			}
			if analyzeOnly || len(analysis.Archives) == 0 {
				if len(analysis.Archives) == 0 {
					slog.Warn("no ZIP files found", "source", source)
				}
				return nil
			}

			if !yes {
				ok, err := confirmExtraction(os.Stdin, os.Stdout, source, dest)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stdout, "Cancelled.")
					return nil
				}
			}

			// Events flow from the engine to the presenter goroutine.
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine
			// that writes structured records before forwarding.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("archive", ev.Archive),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
						}
						if ev.Digest != "" {
							attrs = append(attrs, slog.String("blake3", ev.Digest))
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "zipback.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
			})

			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(ctx, engine.Config{
				Source: source,
				Dst:    dest,
				Sample: sample,
				Digest: digest,
				Events: events,
				Stats:  collector,
			})
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if result.Err != nil {
				slog.Error("extraction failed", "error", result.Err)
				return &exitError{code: 2}
			}

			// Quiet mode yields an empty summary on clean runs and a
			// failure line otherwise, so this prints errors regardless.
			if summary := presenter.Summary(); summary != "" {
				fmt.Fprintln(os.Stderr, summary)
			}
			printErrorDetails(os.Stderr, result)

			snap := result.Stats
			if snap.EntryErrors > 0 || snap.ArchivesFailed > 0 {
				if snap.FilesExtracted > 0 {
					return &exitError{code: 1} // partial failure
				}
				return &exitError{code: 2} // total failure
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&source, "source", "s", "", "path to the backup folder")
	rootCmd.Flags().StringVarP(&dest, "dest", "d", "", "destination path for restored files")
	rootCmd.Flags().BoolVarP(&analyzeOnly, "analyze-only", "a", false, "analyze only, do not extract")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&digest, "digest", false, "record a BLAKE3 digest for every extracted file")
	rootCmd.Flags().
		IntVar(&sample, "sample", engine.DefaultSample, "number of entries sampled for the extension histogram")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable periodic progress lines")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// confirmExtraction prompts before writing anything to the destination.
func confirmExtraction(in io.Reader, out io.Writer, source, dest string) (bool, error) {
	if f, ok := in.(*os.File); ok && !ui.IsTTY(f.Fd()) {
		return false, errors.New("stdin is not a terminal; use --yes to confirm extraction")
	}

	fmt.Fprintf(out, "\n  Source: %s\n  Dest:   %s\n\nProceed? (y/n): ", source, dest)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return confirmed(line), nil
}

// confirmed accepts y/yes and the German j/ja.
func confirmed(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(s, "y") || strings.HasPrefix(s, "j")
}

// maxErrorDetails caps how many failure lines the final report prints.
const maxErrorDetails = 20

func printErrorDetails(w io.Writer, result engine.Result) {
	details := make([]string, 0, len(result.ArchiveErrs)+len(result.EntryErrs))
	for _, e := range result.ArchiveErrs {
		details = append(details, e.String())
	}
	for _, e := range result.EntryErrs {
		details = append(details, e.String())
	}
	if len(details) == 0 {
		return
	}

	fmt.Fprintln(w, "\nError details:")
	for i, d := range details {
		if i == maxErrorDetails {
			fmt.Fprintf(w, "  ... and %d more errors\n", len(details)-maxErrorDetails)
			break
		}
		fmt.Fprintf(w, "  %s\n", d)
	}
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	digest *bool,
	sample *int,
	quiet *bool,
	yes *bool,
) {
	if !cmd.Flags().Changed("digest") && defaults.Digest != nil {
		*digest = *defaults.Digest
	}
	if !cmd.Flags().Changed("sample") && defaults.Sample != nil {
		*sample = *defaults.Sample
	}
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		*quiet = *defaults.Quiet
	}
	if !cmd.Flags().Changed("yes") && defaults.Yes != nil {
		*yes = *defaults.Yes
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
